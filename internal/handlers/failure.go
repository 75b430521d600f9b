package handlers

import (
	"html/template"
	"net/http"
	"net/url"
)

// Checkout failure reasons
const (
	ReasonEmptyCart      = "EmptyCart"
	ReasonInvalidAddress = "InvalidAddress"
)

// FailureHandler handles checkout failure page
type FailureHandler struct {
	template *template.Template
	store    *Store
}

// NewFailureHandler creates a new failure handler
func NewFailureHandler(tmpl *template.Template, store *Store) *FailureHandler {
	return &FailureHandler{template: tmpl, store: store}
}

// FailureData represents the data for the failure template
type FailureData struct {
	Page
	Reason  string
	Message string
}

// ServeHTTP handles the failure page request
func (h *FailureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reason := r.URL.Query().Get("reason")
	sid := h.store.SessionID(w, r)
	render(w, h.template, "failure.html", FailureData{
		Page:    h.store.page(sid, "Checkout failed"),
		Reason:  reason,
		Message: getFailureMessage(reason),
	})
}

func failCheckout(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, "/checkout/failed?reason="+url.QueryEscape(reason), http.StatusSeeOther)
}

// getFailureMessage returns a user-friendly message based on the failure reason
func getFailureMessage(reason string) string {
	switch reason {
	case ReasonEmptyCart:
		return "Your shopping cart is empty. Add a product before checking out."
	case ReasonInvalidAddress:
		return "The billing address is incomplete. Please fill in all required fields and try again."
	default:
		return "We couldn't place your order. Please try again or contact support."
	}
}
