package pages

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopqa/checkout-e2e/internal/cart"
	"github.com/shopqa/checkout-e2e/internal/models"
)

var errBoom = errors.New("boom")

// fakeDriver records every action as "<op> <selector>" and serves canned page state
type fakeDriver struct {
	url     string
	visible map[string]bool
	texts   map[string]string
	rows    map[string][]cart.Row
	failOn  map[string]error
	actions []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		visible: map[string]bool{},
		texts:   map[string]string{},
		rows:    map[string][]cart.Row{},
		failOn:  map[string]error{},
	}
}

func (d *fakeDriver) record(op, selector string) error {
	action := op + " " + selector
	d.actions = append(d.actions, action)
	if err, ok := d.failOn[action]; ok {
		return err
	}
	return nil
}

func (d *fakeDriver) Goto(url string) error {
	if err := d.record("goto", url); err != nil {
		return err
	}
	d.url = url
	return nil
}

func (d *fakeDriver) URL() string { return d.url }

func (d *fakeDriver) WaitVisible(selector string, timeout time.Duration) error {
	return d.record("wait", selector)
}

func (d *fakeDriver) IsVisible(selector string) bool { return d.visible[selector] }

func (d *fakeDriver) Click(selector string) error { return d.record("click", selector) }

func (d *fakeDriver) Fill(selector, value string) error {
	return d.record("fill", selector+"="+value)
}

func (d *fakeDriver) Press(selector, key string) error {
	return d.record("press", selector+"="+key)
}

func (d *fakeDriver) Check(selector string) error { return d.record("check", selector) }

func (d *fakeDriver) SelectOption(selector, label string) error {
	return d.record("select", selector+"="+label)
}

func (d *fakeDriver) Text(selector string) (string, error) {
	if err := d.record("text", selector); err != nil {
		return "", err
	}
	text, ok := d.texts[selector]
	if !ok {
		return "", &models.TimeoutError{Selector: selector, Timeout: time.Second}
	}
	return text, nil
}

func (d *fakeDriver) ScrollIntoView(selector string) error { return d.record("scroll", selector) }

func (d *fakeDriver) ScrollToTop() error { return d.record("scroll", "top") }

func (d *fakeDriver) ScrollToBottom() error { return d.record("scroll", "bottom") }

func (d *fakeDriver) FindAll(selector string) ([]cart.Row, error) {
	if err := d.record("find", selector); err != nil {
		return nil, err
	}
	rows, ok := d.rows[selector]
	if !ok {
		return nil, &models.TimeoutError{Selector: selector, Timeout: time.Second}
	}
	return rows, nil
}

type fakeField struct {
	text  string
	value string
}

func (f fakeField) Text() (string, error) { return f.text, nil }

func (f fakeField) Attribute(name string) (string, error) {
	if name != "value" || f.value == "" {
		return "", fmt.Errorf("%w: %s", cart.ErrFieldNotFound, name)
	}
	return f.value, nil
}

type fakeRow map[string]fakeField

func (r fakeRow) Field(selector string) (cart.Field, error) {
	f, ok := r[selector]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cart.ErrFieldNotFound, selector)
	}
	return f, nil
}

func cartRow(name, qty, price, total string) fakeRow {
	s := cart.DefaultSelectors
	return fakeRow{
		s.ProductName: {text: name},
		s.Quantity:    {value: qty},
		s.UnitPrice:   {text: price},
		s.LineTotal:   {text: total},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
