package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// CheckoutHandler handles the one page checkout
type CheckoutHandler struct {
	template *template.Template
	store    *Store
}

// CheckoutData represents the data passed to the checkout template
type CheckoutData struct {
	Page
	Lines        []CartLine
	SavedAddress *BillingAddress
	Countries    []string
	States       []string
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(tmpl *template.Template, store *Store) *CheckoutHandler {
	return &CheckoutHandler{template: tmpl, store: store}
}

// ServeHTTP renders the checkout steps on GET and places the order on POST
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sid := h.store.SessionID(w, r)
	if h.store.CurrentUser(sid) == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.show(w, r, sid)
	case http.MethodPost:
		h.confirm(w, r, sid)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CheckoutHandler) show(w http.ResponseWriter, r *http.Request, sid string) {
	lines := h.store.Cart(sid)
	if len(lines) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	data := CheckoutData{
		Page:      h.store.page(sid, "Checkout"),
		Lines:     lines,
		Countries: Countries,
		States:    States,
	}
	if saved, ok := h.store.SavedAddress(sid); ok {
		data.SavedAddress = &saved
	}
	render(w, h.template, "checkout.html", data)
}

func (h *CheckoutHandler) confirm(w http.ResponseWriter, r *http.Request, sid string) {
	billing, ok := h.billingAddress(r, sid)
	if !ok {
		failCheckout(w, r, ReasonInvalidAddress)
		return
	}

	order, err := h.store.PlaceOrder(sid, billing)
	switch {
	case errors.Is(err, ErrCartEmpty):
		failCheckout(w, r, ReasonEmptyCart)
		return
	case err != nil:
		slog.Error("Error placing order", "error", err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	slog.Info("Order placed",
		"order_number", order.Number,
		"email", order.Email,
		"subtotal", order.Subtotal.String(),
		"lines", len(order.Lines),
	)
	http.Redirect(w, r, "/checkout/completed/"+url.PathEscape(order.Number), http.StatusSeeOther)
}

// billingAddress reads the address book choice or the new address form
func (h *CheckoutHandler) billingAddress(r *http.Request, sid string) (BillingAddress, bool) {
	if r.FormValue("billing_address_id") == "saved" {
		return h.store.SavedAddress(sid)
	}

	field := func(name string) string {
		return strings.TrimSpace(r.FormValue("BillingNewAddress." + name))
	}
	addr := BillingAddress{
		FirstName:   field("FirstName"),
		LastName:    field("LastName"),
		Email:       field("Email"),
		Company:     field("Company"),
		Country:     field("CountryId"),
		State:       field("StateProvinceId"),
		City:        field("City"),
		Address1:    field("Address1"),
		Address2:    field("Address2"),
		ZipCode:     field("ZipPostalCode"),
		PhoneNumber: field("PhoneNumber"),
		FaxNumber:   field("FaxNumber"),
	}
	return addr, addr.complete()
}

func (a BillingAddress) complete() bool {
	for _, v := range []string{a.FirstName, a.LastName, a.Email, a.Country, a.City, a.Address1, a.ZipCode, a.PhoneNumber} {
		if v == "" {
			return false
		}
	}
	return strings.Contains(a.Email, "@")
}
