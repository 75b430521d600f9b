package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

// LoginHandler shows the sign in form and authenticates the session
type LoginHandler struct {
	template *template.Template
	store    *Store
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(tmpl *template.Template, store *Store) *LoginHandler {
	return &LoginHandler{template: tmpl, store: store}
}

// LoginData represents the data passed to the login template
type LoginData struct {
	Page
	Email string
	Error string
}

// ServeHTTP handles GET and POST /login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sid := h.store.SessionID(w, r)

	switch r.Method {
	case http.MethodGet:
		render(w, h.template, "login.html", LoginData{Page: h.store.page(sid, "Login")})
	case http.MethodPost:
		email := r.FormValue("Email")
		if err := h.store.Login(sid, email, r.FormValue("Password")); err != nil {
			slog.Info("Login rejected", "email", email)
			render(w, h.template, "login.html", LoginData{
				Page:  h.store.page(sid, "Login"),
				Email: email,
				Error: err.Error(),
			})
			return
		}
		slog.Info("Customer logged in", "email", email)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// LogoutHandler clears the session's customer and returns to the home page
type LogoutHandler struct {
	store *Store
}

// NewLogoutHandler creates a new LogoutHandler
func NewLogoutHandler(store *Store) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// ServeHTTP ends the session and redirects to the home page
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.store.Logout(h.store.SessionID(w, r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
