package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopqa/checkout-e2e/internal/config"
	"github.com/shopqa/checkout-e2e/internal/handlers"
)

// ServerDependencies holds all dependencies needed for the fake shop server
type ServerDependencies struct {
	ServerConfig        config.ServerConfig
	Store               *handlers.Store
	HomeHandler         http.Handler
	ProductHandler      http.Handler
	SearchHandler       http.Handler
	LoginHandler        http.Handler
	LogoutHandler       http.Handler
	AddToCartHandler    http.Handler
	CartHandler         http.Handler
	CheckoutHandler     http.Handler
	ConfirmationHandler http.Handler
	OrderDetailsHandler http.Handler
	FailureHandler      http.Handler
}

// BuildShop wires the shop handlers around store
func BuildShop(serverConfig config.ServerConfig, store *handlers.Store) (ServerDependencies, error) {
	tmpl, err := handlers.ParseTemplates()
	if err != nil {
		return ServerDependencies{}, err
	}

	return ServerDependencies{
		ServerConfig:        serverConfig,
		Store:               store,
		HomeHandler:         handlers.NewHomeHandler(tmpl, store),
		ProductHandler:      handlers.NewProductHandler(tmpl, store),
		SearchHandler:       handlers.NewSearchHandler(tmpl, store),
		LoginHandler:        handlers.NewLoginHandler(tmpl, store),
		LogoutHandler:       handlers.NewLogoutHandler(store),
		AddToCartHandler:    handlers.NewAddToCartHandler(store),
		CartHandler:         handlers.NewCartHandler(tmpl, store),
		CheckoutHandler:     handlers.NewCheckoutHandler(tmpl, store),
		ConfirmationHandler: handlers.NewConfirmationHandler(tmpl, store),
		OrderDetailsHandler: handlers.NewOrderDetailsHandler(tmpl, store),
		FailureHandler:      handlers.NewFailureHandler(tmpl, store),
	}, nil
}

// NewMux routes the shop's pages to their handlers
func NewMux(deps ServerDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/{$}", deps.HomeHandler)
	mux.Handle("/{slug}", deps.ProductHandler)
	mux.Handle("/search", deps.SearchHandler)
	mux.Handle("/login", deps.LoginHandler)
	mux.Handle("/logout", deps.LogoutHandler)
	mux.Handle("/addproducttocart/{id}", deps.AddToCartHandler)
	mux.Handle("/cart", deps.CartHandler)
	mux.Handle("/onepagecheckout", deps.CheckoutHandler)
	mux.Handle("/checkout/completed/{number}", deps.ConfirmationHandler)
	mux.Handle("/orderdetails/{number}", deps.OrderDetailsHandler)
	mux.Handle("/checkout/failed", deps.FailureHandler)
	return mux
}

// RunServe starts the fake shop and blocks until it is signalled to stop
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewMux(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel registered with signal.Notify is used.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	slog.Info("Shutting down server", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	slog.Info("Server stopped")
	return nil
}
