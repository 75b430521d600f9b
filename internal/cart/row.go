// Package cart extracts line items from the shopping cart page and checks
// that they add up to the subtotal the shop displays.
package cart

// Field is one sub-element of a cart row
type Field interface {
	Text() (string, error)
	Attribute(name string) (string, error)
}

// Row is one cart line as rendered by the page. Implementations are supplied
// by the browser layer or built from saved HTML.
type Row interface {
	Field(selector string) (Field, error)
}

// Selectors locates the parts of the cart page
type Selectors struct {
	Row           string
	ProductName   string
	Quantity      string
	QuantityAttr  string
	UnitPrice     string
	LineTotal     string
	Subtotal      string
	CartContainer string
}

// DefaultSelectors matches the demo web shop's cart page
var DefaultSelectors = Selectors{
	Row:           "tr.cart-item-row",
	ProductName:   ".product-name",
	Quantity:      ".qty-input",
	QuantityAttr:  "value",
	UnitPrice:     ".product-unit-price",
	LineTotal:     ".product-subtotal",
	Subtotal:      "#subtotal",
	CartContainer: "#cart-table",
}
