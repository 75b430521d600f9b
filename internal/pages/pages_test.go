package pages

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopqa/checkout-e2e/internal/cart"
	"github.com/shopqa/checkout-e2e/internal/models"
	"github.com/shopqa/checkout-e2e/internal/testdata"
)

func TestLoginPage_Login(t *testing.T) {
	d := newFakeDriver()
	page := NewLoginPage(d, discardLogger())

	require.NoError(t, page.Open("https://shop.test/"))
	require.NoError(t, page.Login("qa@example.com", "secret"))

	want := []string{
		"goto https://shop.test/login",
		"fill #Email=qa@example.com",
		"fill #Password=secret",
		"click input.login-button",
		"wait a.ico-logout",
	}
	if diff := cmp.Diff(want, d.actions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, page.IsLoggedIn())
	d.visible[logoutLink] = true
	assert.True(t, page.IsLoggedIn())
}

func TestLoginPage_LoginFailsWithoutLogoutLink(t *testing.T) {
	d := newFakeDriver()
	d.failOn["wait "+logoutLink] = &models.TimeoutError{Selector: logoutLink}

	err := NewLoginPage(d, discardLogger()).Login("qa@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTimeout)
	assert.Contains(t, err.Error(), "login failed")
}

func TestHomePage_GiftCardFlow(t *testing.T) {
	d := newFakeDriver()
	home := NewHomePage(d, discardLogger())

	require.NoError(t, home.ScrollToItem())
	require.NoError(t, home.ChooseItem())
	require.NoError(t, home.EnterRecipientInformation("Jane", "jane@example.com"))
	require.NoError(t, home.AddToCart())
	require.NoError(t, home.ItemAddedToCart())

	want := []string{
		"wait input[value='Add to cart']",
		"scroll input[value='Add to cart']",
		"click input[value='Add to cart']",
		"fill #giftcard_2_RecipientName=Jane",
		"fill #giftcard_2_RecipientEmail=jane@example.com",
		"click #add-to-cart-button-2",
		"wait p.content",
	}
	if diff := cmp.Diff(want, d.actions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPage_AutocompleteAndFallback(t *testing.T) {
	laptop := testdata.Product{Name: "Laptop", URL: "https://shop.test/laptop", AddToCartSelector: "#add-31"}

	t.Run("autocomplete", func(t *testing.T) {
		d := newFakeDriver()
		d.url = "https://shop.test/"

		require.NoError(t, NewSearchPage(d, "https://shop.test", discardLogger()).SearchAndSelectProduct(laptop))

		want := []string{
			"fill #small-searchterms=Laptop",
			"wait .ui-autocomplete",
			"press #small-searchterms=ArrowDown",
			"press #small-searchterms=Enter",
		}
		if diff := cmp.Diff(want, d.actions); diff != "" {
			t.Errorf("actions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("search button", func(t *testing.T) {
		d := newFakeDriver()
		d.url = "https://shop.test/cart"
		d.failOn["wait .ui-autocomplete"] = &models.TimeoutError{Selector: ".ui-autocomplete"}

		require.NoError(t, NewSearchPage(d, "https://shop.test/", discardLogger()).SearchAndSelectProduct(laptop))

		want := []string{
			"goto https://shop.test",
			"wait .header-logo",
			"fill #small-searchterms=Laptop",
			"wait .ui-autocomplete",
			"click input[value='Search']",
			"click .search-results .product-title a",
		}
		if diff := cmp.Diff(want, d.actions); diff != "" {
			t.Errorf("actions mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSearchPage_AddProductsContinuesPastFailures(t *testing.T) {
	products := []testdata.Product{
		{Name: "Laptop", AddToCartSelector: "#add-31"},
		{Name: "Fiction", AddToCartSelector: "#add-45"},
		{Name: "Jeans", AddToCartSelector: "#add-36"},
	}

	d := newFakeDriver()
	d.url = "https://shop.test"
	d.failOn["click #add-45"] = errBoom
	d.failOn["fill #small-searchterms=Jeans"] = errBoom

	failed := NewSearchPage(d, "https://shop.test", discardLogger()).AddProducts(products)

	assert.Equal(t, []string{"Fiction", "Jeans"}, failed)
	assert.Contains(t, d.actions, "click #add-31")
	assert.Contains(t, d.actions, "wait .bar-notification.success")
}

func TestCartSummaryPage_Validate(t *testing.T) {
	s := cart.DefaultSelectors

	t.Run("reconciled", func(t *testing.T) {
		d := newFakeDriver()
		d.rows[s.Row] = []cart.Row{
			cartRow("Item A", "2", "10.00", "20.00"),
			cartRow("Item B", "1", "15.50", "15.50"),
		}
		d.texts[s.Subtotal] = "35.50"

		snapshot, err := NewCartSummaryPage(d, discardLogger()).Validate(2)
		require.NoError(t, err)
		assert.Equal(t, 2, snapshot.Len())
		assert.Equal(t, models.Money(3550), snapshot.Subtotal())
	})

	t.Run("mismatch", func(t *testing.T) {
		d := newFakeDriver()
		d.rows[s.Row] = []cart.Row{cartRow("Item A", "1", "10.00", "10.00")}
		d.texts[s.Subtotal] = "$12.00"

		_, err := NewCartSummaryPage(d, discardLogger()).Validate(cart.AnyCount)
		assert.ErrorIs(t, err, models.ErrReconciliationMismatch)
	})

	t.Run("empty cart", func(t *testing.T) {
		d := newFakeDriver()

		_, err := NewCartSummaryPage(d, discardLogger()).Validate(cart.AnyCount)
		assert.ErrorIs(t, err, models.ErrEmptyCart)
		assert.NotContains(t, d.actions, "text "+s.Subtotal)
	})

	t.Run("rows never render when items are expected", func(t *testing.T) {
		d := newFakeDriver()

		_, err := NewCartSummaryPage(d, discardLogger()).Validate(2)
		var timeoutErr *models.TimeoutError
		require.True(t, errors.As(err, &timeoutErr))
		assert.Equal(t, s.Row, timeoutErr.Selector)
	})

	t.Run("unexpected count", func(t *testing.T) {
		d := newFakeDriver()
		d.rows[s.Row] = []cart.Row{cartRow("Item A", "1", "10.00", "10.00")}
		d.texts[s.Subtotal] = "10.00"

		_, err := NewCartSummaryPage(d, discardLogger()).Validate(3)
		var countErr *models.UnexpectedItemCountError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, 3, countErr.Expected)
		assert.Equal(t, 1, countErr.Actual)
	})
}

func TestCartSummaryPage_NavigateAndTotals(t *testing.T) {
	s := cart.DefaultSelectors
	d := newFakeDriver()
	d.rows[s.Row] = []cart.Row{
		cartRow("Item A", "2", "10.00", "20.00"),
		cartRow("Broken", "x", "1.00", "1.00"),
		cartRow("Item B", "1", "1,590.00", "1,590.00"),
	}
	page := NewCartSummaryPage(d, discardLogger())

	require.NoError(t, page.NavigateToCart())
	assert.Equal(t, []string{"scroll top", "click a.ico-cart", "wait #cart-table"}, d.actions)

	count, err := page.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	total, err := page.TotalPrice()
	require.NoError(t, err)
	assert.Equal(t, models.Money(161000), total)
}

func TestCheckoutPage(t *testing.T) {
	d := newFakeDriver()
	page := NewCheckoutPage(d, discardLogger())

	require.NoError(t, page.AgreeToTerms())
	require.NoError(t, page.ProceedToCheckout())
	assert.Equal(t, []string{"check #termsofservice", "click #checkout"}, d.actions)
}

func TestBillingPage_EnterBillingAddress(t *testing.T) {
	d := newFakeDriver()
	d.visible[billingAddressSelect] = true

	addr := testdata.Address{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Country:     "United States",
		City:        "Austin",
		Address1:    "1 Main St",
		ZipCode:     "73301",
		PhoneNumber: "5550100",
	}
	require.NoError(t, NewBillingPage(d, discardLogger()).EnterBillingAddress(addr))

	want := []string{
		"wait " + billingContinue,
		"select #billing-address-select=New Address",
		"select #BillingNewAddress_CountryId=United States",
		"fill #BillingNewAddress_FirstName=Jane",
		"fill #BillingNewAddress_LastName=Doe",
		"fill #BillingNewAddress_Email=jane@example.com",
		"fill #BillingNewAddress_City=Austin",
		"fill #BillingNewAddress_Address1=1 Main St",
		"fill #BillingNewAddress_ZipPostalCode=73301",
		"fill #BillingNewAddress_PhoneNumber=5550100",
		"click " + billingContinue,
		"click " + shippingContinue,
		"click " + shippingMethodNext,
		"click " + paymentMethodNext,
		"click " + paymentInfoNext,
	}
	if diff := cmp.Diff(want, d.actions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestBillingPage_StopsAtFailingStep(t *testing.T) {
	d := newFakeDriver()
	d.failOn["click "+shippingMethodNext] = errBoom

	err := NewBillingPage(d, discardLogger()).EnterBillingAddress(testdata.Address{})
	require.ErrorIs(t, err, errBoom)
	assert.NotContains(t, d.actions, "click "+paymentMethodNext)
}

func TestSubmitAndConfirmOrder(t *testing.T) {
	d := newFakeDriver()
	d.texts[successMessage] = "Your order has been successfully processed!"
	d.texts[orderNumberLine] = "Order number: 1234567"

	completion, err := NewSubmitOrderPage(d, discardLogger()).SubmitOrder()
	require.NoError(t, err)

	confirmation, err := completion.ConfirmAndValidateOrder()
	require.NoError(t, err)
	assert.Equal(t, "1234567", confirmation.OrderNumber)
	assert.Equal(t, models.SuccessMessage, confirmation.Message)
	assert.Equal(t, "click input[value='Confirm']", d.actions[0])
	assert.Equal(t, "click "+orderDetailsLink, d.actions[len(d.actions)-1])
}

func TestOrderCompletionPage_Failures(t *testing.T) {
	tests := []struct {
		name    string
		texts   map[string]string
		wantErr error
	}{
		{
			name:    "missing message",
			texts:   map[string]string{},
			wantErr: models.ErrTimeout,
		},
		{
			name: "no order number",
			texts: map[string]string{
				successMessage:  models.SuccessMessage,
				orderNumberLine: "Order number: pending",
			},
			wantErr: models.ErrNoOrderNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			d.texts = tt.texts

			_, err := NewOrderCompletionPage(d, discardLogger()).ConfirmAndValidateOrder()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("wrong message", func(t *testing.T) {
		d := newFakeDriver()
		d.texts[successMessage] = "Something went wrong"

		_, err := NewOrderCompletionPage(d, discardLogger()).ConfirmAndValidateOrder()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "success message not found")
	})
}
