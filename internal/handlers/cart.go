package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// AddToCartHandler adds a product to the session's cart and answers with JSON
// the product page uses to show the notification bar.
type AddToCartHandler struct {
	store *Store
}

// NewAddToCartHandler creates a new AddToCartHandler
func NewAddToCartHandler(store *Store) *AddToCartHandler {
	return &AddToCartHandler{store: store}
}

// AddToCartResponse represents the response sent to the client
type AddToCartResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	CartQuantity int    `json:"cartQuantity"`
}

// AddedMessage is shown in the notification bar after a successful add
const AddedMessage = "The product has been added to your shopping cart"

// ServeHTTP handles the POST /addproducttocart/{id} request
func (h *AddToCartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		sendJSON(w, http.StatusBadRequest, AddToCartResponse{Message: "invalid product id"})
		return
	}

	quantity := 1
	if raw := strings.TrimSpace(r.FormValue(fmt.Sprintf("addtocart_%d.EnteredQuantity", id))); raw != "" {
		if quantity, err = strconv.Atoi(raw); err != nil {
			sendJSON(w, http.StatusOK, AddToCartResponse{Message: ErrInvalidQuantity.Error()})
			return
		}
	}

	sid := h.store.SessionID(w, r)
	cartQty, err := h.store.AddToCart(sid, id, quantity,
		r.FormValue(fmt.Sprintf("giftcard_%d.RecipientName", id)),
		r.FormValue(fmt.Sprintf("giftcard_%d.RecipientEmail", id)),
	)
	switch {
	case errors.Is(err, ErrUnknownProduct):
		sendJSON(w, http.StatusNotFound, AddToCartResponse{Message: err.Error()})
		return
	case err != nil:
		slog.Info("Add to cart rejected", "product_id", id, "error", err)
		sendJSON(w, http.StatusOK, AddToCartResponse{Message: err.Error()})
		return
	}

	slog.Info("Product added to cart", "product_id", id, "quantity", quantity, "cart_quantity", cartQty)
	sendJSON(w, http.StatusOK, AddToCartResponse{
		Success:      true,
		Message:      AddedMessage,
		CartQuantity: cartQty,
	})
}

func sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// CartHandler shows the shopping cart and starts the checkout
type CartHandler struct {
	template *template.Template
	store    *Store
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(tmpl *template.Template, store *Store) *CartHandler {
	return &CartHandler{template: tmpl, store: store}
}

// CartData represents the data passed to the cart template
type CartData struct {
	Page
	Lines        []CartLine
	Subtotal     models.Money
	TermsWarning bool
}

// ServeHTTP handles GET and POST /cart. Posting the cart form with the terms
// accepted moves on to the one page checkout.
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sid := h.store.SessionID(w, r)

	switch r.Method {
	case http.MethodGet:
		h.render(w, sid, false)
	case http.MethodPost:
		if len(h.store.Cart(sid)) == 0 {
			failCheckout(w, r, ReasonEmptyCart)
			return
		}
		if r.FormValue("termsofservice") == "" {
			h.render(w, sid, true)
			return
		}
		http.Redirect(w, r, "/onepagecheckout", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CartHandler) render(w http.ResponseWriter, sid string, termsWarning bool) {
	lines := h.store.Cart(sid)
	render(w, h.template, "cart.html", CartData{
		Page:         h.store.page(sid, "Shopping Cart"),
		Lines:        lines,
		Subtotal:     h.store.DisplayedSubtotal(lines),
		TermsWarning: termsWarning,
	})
}
