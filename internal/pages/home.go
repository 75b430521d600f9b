package pages

import (
	"fmt"
	"log/slog"
)

const (
	firstAddToCart      = "input[value='Add to cart']"
	recipientNameField  = "#giftcard_2_RecipientName"
	recipientEmailField = "#giftcard_2_RecipientEmail"
	giftCardAddToCart   = "#add-to-cart-button-2"
	cartSuccessBanner   = "p.content"
)

// HomePage adds the first featured product (a virtual gift card) to the cart
type HomePage struct {
	driver Driver
	logger *slog.Logger
}

// NewHomePage creates a new HomePage
func NewHomePage(d Driver, logger *slog.Logger) *HomePage {
	return &HomePage{driver: d, logger: orDefault(logger)}
}

// ScrollToItem waits for the first "Add to cart" button and scrolls it into view
func (p *HomePage) ScrollToItem() error {
	if err := p.driver.WaitVisible(firstAddToCart, 0); err != nil {
		return err
	}
	return p.driver.ScrollIntoView(firstAddToCart)
}

// ChooseItem clicks the first "Add to cart" button on the home page
func (p *HomePage) ChooseItem() error {
	if err := p.driver.Click(firstAddToCart); err != nil {
		return err
	}
	p.logger.Info("Item selected from homepage")
	return nil
}

// EnterRecipientInformation fills the gift card recipient fields
func (p *HomePage) EnterRecipientInformation(name, email string) error {
	if err := p.driver.Fill(recipientNameField, name); err != nil {
		return err
	}
	if err := p.driver.Fill(recipientEmailField, email); err != nil {
		return err
	}
	p.logger.Info("Recipient information entered")
	return nil
}

// AddToCart clicks the gift card's add to cart button
func (p *HomePage) AddToCart() error {
	return p.driver.Click(giftCardAddToCart)
}

// ItemAddedToCart waits for the notification bar confirming the add
func (p *HomePage) ItemAddedToCart() error {
	if err := p.driver.WaitVisible(cartSuccessBanner, 0); err != nil {
		return fmt.Errorf("item not added to cart: %w", err)
	}
	p.logger.Info("Item added to cart successfully")
	return nil
}
