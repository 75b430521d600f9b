package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopqa/checkout-e2e/internal/models"
)

// SessionCookie carries the shopper's session ID
const SessionCookie = "Nop.customer"

// Store errors
var (
	ErrInvalidCredentials = errors.New("the credentials provided are incorrect")
	ErrNotLoggedIn        = errors.New("customer is not logged in")
	ErrUnknownProduct     = errors.New("product not found")
	ErrInvalidQuantity    = errors.New("quantity should be positive")
	ErrMissingRecipient   = errors.New("enter valid recipient name and email")
	ErrCartEmpty          = errors.New("your shopping cart is empty")
)

// Product represents a catalog item
type Product struct {
	ID       int
	Name     string
	Slug     string
	Price    models.Money
	GiftCard bool
}

// CartLine is one product in a shopper's cart
type CartLine struct {
	Product        Product
	Quantity       int
	RecipientName  string
	RecipientEmail string
}

// LineTotal returns the unit price times the quantity
func (l CartLine) LineTotal() models.Money {
	return l.Product.Price * models.Money(l.Quantity)
}

// BillingAddress is the address entered on the checkout page
type BillingAddress struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Country     string
	State       string
	City        string
	Address1    string
	Address2    string
	ZipCode     string
	PhoneNumber string
	FaxNumber   string
}

// Order is a placed order
type Order struct {
	Number   string
	Email    string
	Lines    []CartLine
	Subtotal models.Money
	Billing  BillingAddress
	PlacedAt time.Time
}

// DefaultCatalog mirrors a few products of the demo web shop. The gift card
// comes first so it is the first "Add to cart" button on the home page.
var DefaultCatalog = []Product{
	{ID: 2, Name: "$5 Virtual Gift Card", Slug: "5-virtual-gift-card", Price: 500, GiftCard: true},
	{ID: 31, Name: "14.1-inch Laptop", Slug: "141-inch-laptop", Price: 159000},
	{ID: 13, Name: "Computing and Internet", Slug: "computing-and-internet", Price: 1000},
	{ID: 45, Name: "Fiction", Slug: "fiction", Price: 2400},
	{ID: 36, Name: "Blue Jeans", Slug: "blue-jeans", Price: 100},
}

// StoreOptions configures a Store
type StoreOptions struct {
	Catalog  []Product
	Accounts map[string]string
	// SubtotalOffset is added to the displayed cart subtotal
	SubtotalOffset   models.Money
	FirstOrderNumber int
}

type session struct {
	email string
	cart  []CartLine
}

// Store holds the fake shop's catalog, sessions and orders in memory
type Store struct {
	mu             sync.Mutex
	catalog        []Product
	accounts       map[string]string
	sessions       map[string]*session
	orders         map[string]Order
	lastBilling    map[string]BillingAddress
	subtotalOffset models.Money
	nextOrder      int
}

// NewStore creates a store with the built-in catalog
func NewStore(opts StoreOptions) *Store {
	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = DefaultCatalog
	}
	accounts := make(map[string]string, len(opts.Accounts))
	for email, password := range opts.Accounts {
		accounts[strings.ToLower(email)] = password
	}
	next := opts.FirstOrderNumber
	if next <= 0 {
		next = 1000
	}
	return &Store{
		catalog:        catalog,
		accounts:       accounts,
		sessions:       make(map[string]*session),
		orders:         make(map[string]Order),
		lastBilling:    make(map[string]BillingAddress),
		subtotalOffset: opts.SubtotalOffset,
		nextOrder:      next,
	}
}

// SessionID returns the request's session, issuing a cookie for new visitors
func (s *Store) SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		_, ok := s.sessions[c.Value]
		s.mu.Unlock()
		if ok {
			return c.Value
		}
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{}
	s.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true})
	return id
}

func (s *Store) session(id string) *session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	return sess
}

// Login attaches the account to the session when the password matches
func (s *Store) Login(sessionID, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	expected, ok := s.accounts[email]
	if !ok || expected != password {
		return ErrInvalidCredentials
	}
	s.session(sessionID).email = email
	return nil
}

// Logout detaches the account from the session
func (s *Store) Logout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).email = ""
}

// CurrentUser returns the logged in email, or "" for guests
func (s *Store) CurrentUser(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionID).email
}

// Products returns the catalog in display order
func (s *Store) Products() []Product {
	return s.catalog
}

// ProductByID looks up a product by its numeric id
func (s *Store) ProductByID(id int) (Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductBySlug looks up a product by its URL slug
func (s *Store) ProductBySlug(slug string) (Product, bool) {
	for _, p := range s.catalog {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

// Search returns the products whose name contains query, ignoring case
func (s *Store) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var found []Product
	for _, p := range s.catalog {
		if strings.Contains(strings.ToLower(p.Name), query) {
			found = append(found, p)
		}
	}
	return found
}

// AddToCart adds quantity of a product. Adding a product already in the cart
// raises its quantity.
func (s *Store) AddToCart(sessionID string, productID, quantity int, recipientName, recipientEmail string) (int, error) {
	product, ok := s.ProductByID(productID)
	if !ok {
		return 0, ErrUnknownProduct
	}
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if product.GiftCard && (strings.TrimSpace(recipientName) == "" || !strings.Contains(recipientEmail, "@")) {
		return 0, ErrMissingRecipient
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	merged := false
	for i := range sess.cart {
		if sess.cart[i].Product.ID == productID {
			sess.cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		sess.cart = append(sess.cart, CartLine{
			Product:        product,
			Quantity:       quantity,
			RecipientName:  recipientName,
			RecipientEmail: recipientEmail,
		})
	}
	return cartQuantity(sess.cart), nil
}

// Cart returns a copy of the session's cart lines
func (s *Store) Cart(sessionID string) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.session(sessionID).cart...)
}

// CartQuantity returns the number of units in the session's cart
func (s *Store) CartQuantity(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartQuantity(s.session(sessionID).cart)
}

// DisplayedSubtotal is the subtotal the cart page shows, including any configured offset
func (s *Store) DisplayedSubtotal(lines []CartLine) models.Money {
	var total models.Money
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total + s.subtotalOffset
}

// SavedAddress returns the billing address of the customer's previous order
func (s *Store) SavedAddress(sessionID string) (BillingAddress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	addr, ok := s.lastBilling[s.session(sessionID).email]
	return addr, ok
}

// PlaceOrder turns the session's cart into an order and empties the cart
func (s *Store) PlaceOrder(sessionID string, billing BillingAddress) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.email == "" {
		return Order{}, ErrNotLoggedIn
	}
	if len(sess.cart) == 0 {
		return Order{}, ErrCartEmpty
	}

	var subtotal models.Money
	for _, l := range sess.cart {
		subtotal += l.LineTotal()
	}
	order := Order{
		Number:   strconv.Itoa(s.nextOrder),
		Email:    sess.email,
		Lines:    sess.cart,
		Subtotal: subtotal,
		Billing:  billing,
		PlacedAt: time.Now(),
	}
	s.nextOrder++
	s.orders[order.Number] = order
	s.lastBilling[sess.email] = billing
	sess.cart = nil
	return order, nil
}

// Order looks up a placed order by number
func (s *Store) Order(number string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[number]
	return order, ok
}

func cartQuantity(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
