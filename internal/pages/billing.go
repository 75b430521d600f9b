package pages

import (
	"log/slog"

	"github.com/shopqa/checkout-e2e/internal/testdata"
)

const (
	billingAddressSelect = "#billing-address-select"
	newAddressOption     = "New Address"
	billingFirstName     = "#BillingNewAddress_FirstName"
	billingLastName      = "#BillingNewAddress_LastName"
	billingEmail         = "#BillingNewAddress_Email"
	billingCompany       = "#BillingNewAddress_Company"
	billingCountry       = "#BillingNewAddress_CountryId"
	billingState         = "#BillingNewAddress_StateProvinceId"
	billingCity          = "#BillingNewAddress_City"
	billingAddress1      = "#BillingNewAddress_Address1"
	billingAddress2      = "#BillingNewAddress_Address2"
	billingZip           = "#BillingNewAddress_ZipPostalCode"
	billingPhone         = "#BillingNewAddress_PhoneNumber"
	billingFax           = "#BillingNewAddress_FaxNumber"
	billingContinue      = "#billing-buttons-container input.new-address-next-step-button"
	shippingContinue     = "#shipping-buttons-container input.new-address-next-step-button"
	shippingMethodNext   = "#shipping-method-buttons-container input.shipping-method-next-step-button"
	paymentMethodNext    = "#payment-method-buttons-container input.payment-method-next-step-button"
	paymentInfoNext      = "#payment-info-buttons-container input.payment-info-next-step-button"
)

// BillingPage walks the one-page checkout from the billing address up to the
// order confirmation step.
type BillingPage struct {
	driver Driver
	logger *slog.Logger
}

// NewBillingPage creates a new BillingPage
func NewBillingPage(d Driver, logger *slog.Logger) *BillingPage {
	return &BillingPage{driver: d, logger: orDefault(logger)}
}

// EnterBillingAddress fills in a new billing address and continues through
// the shipping, shipping method, payment method and payment info steps
func (p *BillingPage) EnterBillingAddress(addr testdata.Address) error {
	if err := p.driver.WaitVisible(billingContinue, 0); err != nil {
		return err
	}

	// returning customers get an address book dropdown in front of the form
	if p.driver.IsVisible(billingAddressSelect) {
		if err := p.driver.SelectOption(billingAddressSelect, newAddressOption); err != nil {
			return err
		}
	}

	if addr.Country != "" {
		if err := p.driver.SelectOption(billingCountry, addr.Country); err != nil {
			return err
		}
	}
	if addr.State != "" {
		if err := p.driver.SelectOption(billingState, addr.State); err != nil {
			return err
		}
	}

	fields := []struct {
		selector string
		value    string
	}{
		{billingFirstName, addr.FirstName},
		{billingLastName, addr.LastName},
		{billingEmail, addr.Email},
		{billingCompany, addr.Company},
		{billingCity, addr.City},
		{billingAddress1, addr.Address1},
		{billingAddress2, addr.Address2},
		{billingZip, addr.ZipCode},
		{billingPhone, addr.PhoneNumber},
		{billingFax, addr.FaxNumber},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.driver.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	p.logger.Info("Billing address entered")

	for _, step := range []string{billingContinue, shippingContinue, shippingMethodNext, paymentMethodNext, paymentInfoNext} {
		if err := p.driver.Click(step); err != nil {
			return err
		}
	}
	p.logger.Info("Advanced to order confirmation")
	return nil
}
