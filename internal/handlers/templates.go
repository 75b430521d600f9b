package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopqa/checkout-e2e/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Countries and states offered by the billing form
var (
	Countries = []string{"United States", "Canada", "Germany", "India", "United Kingdom"}
	States    = []string{"California", "Florida", "New York", "Texas", "Washington"}
)

var templateFuncs = template.FuncMap{
	// amount renders money the way the shop's tables do, without the currency symbol
	"amount": func(m models.Money) string {
		return strings.TrimPrefix(m.String(), "$")
	},
}

// ParseTemplates parses the embedded shop pages
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("shop").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Page carries the header state every template renders
type Page struct {
	Title   string
	User    string
	CartQty int
}

func (s *Store) page(sessionID, title string) Page {
	return Page{
		Title:   title,
		User:    s.CurrentUser(sessionID),
		CartQty: s.CartQuantity(sessionID),
	}
}

func render(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Error rendering template", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, buf.String())
}
