package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

// ConfirmationHandler handles the order completed page
type ConfirmationHandler struct {
	template *template.Template
	store    *Store
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(tmpl *template.Template, store *Store) *ConfirmationHandler {
	return &ConfirmationHandler{template: tmpl, store: store}
}

// ConfirmationData represents the data for the completed and order details templates
type ConfirmationData struct {
	Page
	Order Order
}

// ServeHTTP handles GET /checkout/completed/{number}
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serveOrder(w, r, "completed.html", "Checkout completed")
}

// OrderDetailsHandler shows a placed order to the customer who placed it
type OrderDetailsHandler struct {
	*ConfirmationHandler
}

// NewOrderDetailsHandler creates a new OrderDetailsHandler
func NewOrderDetailsHandler(tmpl *template.Template, store *Store) *OrderDetailsHandler {
	return &OrderDetailsHandler{NewConfirmationHandler(tmpl, store)}
}

// ServeHTTP handles GET /orderdetails/{number}
func (h *OrderDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serveOrder(w, r, "orderdetails.html", "Order information")
}

func (h *ConfirmationHandler) serveOrder(w http.ResponseWriter, r *http.Request, name, title string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	number := r.PathValue("number")
	sid := h.store.SessionID(w, r)
	order, ok := h.store.Order(number)
	if !ok || order.Email != h.store.CurrentUser(sid) {
		slog.Info("Order not found", "order_number", number)
		http.NotFound(w, r)
		return
	}

	render(w, h.template, name, ConfirmationData{
		Page:  h.store.page(sid, title),
		Order: order,
	})
}
