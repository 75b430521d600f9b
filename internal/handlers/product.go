package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

// HomeHandler renders the featured products
type HomeHandler struct {
	template *template.Template
	store    *Store
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(tmpl *template.Template, store *Store) *HomeHandler {
	return &HomeHandler{template: tmpl, store: store}
}

// HomeData represents the data passed to the home template
type HomeData struct {
	Page
	Products []Product
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sid := h.store.SessionID(w, r)
	render(w, h.template, "home.html", HomeData{
		Page:     h.store.page(sid, "Home"),
		Products: h.store.Products(),
	})
}

// ProductHandler renders a product details page looked up by its slug
type ProductHandler struct {
	template *template.Template
	store    *Store
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(tmpl *template.Template, store *Store) *ProductHandler {
	return &ProductHandler{template: tmpl, store: store}
}

// ProductData represents the data passed to the product template
type ProductData struct {
	Page
	Product Product
}

// ServeHTTP handles the GET /{slug} request
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	product, ok := h.store.ProductBySlug(r.PathValue("slug"))
	if !ok {
		slog.Debug("Unknown product page requested", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	sid := h.store.SessionID(w, r)
	render(w, h.template, "product.html", ProductData{
		Page:    h.store.page(sid, product.Name),
		Product: product,
	})
}

// SearchHandler lists the products matching the q query parameter
type SearchHandler struct {
	template *template.Template
	store    *Store
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(tmpl *template.Template, store *Store) *SearchHandler {
	return &SearchHandler{template: tmpl, store: store}
}

// SearchData represents the data passed to the search template
type SearchData struct {
	Page
	Query   string
	Results []Product
}

// ServeHTTP lists the products whose name contains the q query parameter
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	results := h.store.Search(query)
	slog.Info("Search", "query", query, "results", len(results))

	sid := h.store.SessionID(w, r)
	render(w, h.template, "search.html", SearchData{
		Page:    h.store.page(sid, "Search"),
		Query:   query,
		Results: results,
	})
}
