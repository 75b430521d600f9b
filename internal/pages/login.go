package pages

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	emailField    = "#Email"
	passwordField = "#Password"
	loginButton   = "input.login-button"
	logoutLink    = "a.ico-logout"
)

// LoginPage is the shop's login form
type LoginPage struct {
	driver Driver
	logger *slog.Logger
}

// NewLoginPage creates a new LoginPage
func NewLoginPage(d Driver, logger *slog.Logger) *LoginPage {
	return &LoginPage{driver: d, logger: orDefault(logger)}
}

// Open navigates to the login form of the shop at baseURL
func (p *LoginPage) Open(baseURL string) error {
	p.logger.Info("Navigating to login page")
	return p.driver.Goto(strings.TrimRight(baseURL, "/") + "/login")
}

// Login submits the credentials and waits for the "Log out" link
func (p *LoginPage) Login(email, password string) error {
	p.logger.Info("Entering email", "email", email)
	if err := p.driver.Fill(emailField, email); err != nil {
		return err
	}
	p.logger.Info("Entering password")
	if err := p.driver.Fill(passwordField, password); err != nil {
		return err
	}
	p.logger.Info("Clicking login button")
	if err := p.driver.Click(loginButton); err != nil {
		return err
	}
	if err := p.driver.WaitVisible(logoutLink, 0); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	p.logger.Info("Login successful")
	return nil
}

// IsLoggedIn reports whether the "Log out" link is shown
func (p *LoginPage) IsLoggedIn() bool {
	return p.driver.IsVisible(logoutLink)
}
