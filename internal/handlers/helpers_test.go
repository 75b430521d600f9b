package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const (
	testEmail    = "shopper@example.com"
	testPassword = "secret"
)

func newTestStore(opts StoreOptions) *Store {
	if opts.Accounts == nil {
		opts.Accounts = map[string]string{testEmail: testPassword}
	}
	return NewStore(opts)
}

func mustTemplates(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return tmpl
}

// newSession issues a session cookie the way a first visit does
func newSession(t *testing.T, store *Store) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	store.SessionID(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected a %s cookie, got %v", SessionCookie, cookies)
	}
	return cookies[0]
}

func loggedIn(t *testing.T, store *Store) *http.Cookie {
	t.Helper()
	cookie := newSession(t, store)
	if err := store.Login(cookie.Value, testEmail, testPassword); err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	return cookie
}

func newRequest(method, target string, form string, cookie *http.Cookie) *http.Request {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
	return doc
}
