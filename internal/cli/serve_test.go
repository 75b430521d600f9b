package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/shopqa/checkout-e2e/internal/config"
)

// mockHandler creates a simple test handler
func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

// Helper functions for test setup

// createTestDeps creates ServerDependencies with default mock handlers for testing
func createTestDeps(port string) ServerDependencies {
	return ServerDependencies{
		ServerConfig:        config.ServerConfig{Port: port},
		HomeHandler:         mockHandler("home"),
		ProductHandler:      mockHandler("product"),
		SearchHandler:       mockHandler("search"),
		LoginHandler:        mockHandler("login"),
		LogoutHandler:       mockHandler("logout"),
		AddToCartHandler:    mockHandler("addtocart"),
		CartHandler:         mockHandler("cart"),
		CheckoutHandler:     mockHandler("checkout"),
		ConfirmationHandler: mockHandler("confirmation"),
		OrderDetailsHandler: mockHandler("orderdetails"),
		FailureHandler:      mockHandler("failure"),
	}
}

// startTestServer starts a server with the given dependencies and returns listener, server, and port
func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

// httpGet makes an HTTP GET request and returns response body and status
func httpGet(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestStartServer_SuccessfulStartup(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	// Verify we got a valid port
	if port == 0 {
		t.Error("Expected non-zero port")
	}

	// Verify server is responding
	time.Sleep(50 * time.Millisecond)
	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))

	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body != "home" {
		t.Errorf("Expected 'home', got '%s'", body)
	}
}

func TestStartServer_InvalidPort(t *testing.T) {
	// GIVEN
	deps := createTestDeps("99999") // Invalid port

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestStartServer_PortAlreadyInUse(t *testing.T) {
	// GIVEN
	// Start a listener on a specific port
	existingListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	defer existingListener.Close()

	// Get the port that was assigned
	port := existingListener.Addr().(*net.TCPAddr).Port

	deps := createTestDeps(fmt.Sprintf("%d", port))

	// WHEN
	listener, server, err := StartServer(deps)

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for port already in use, got nil")
	}
}

func TestStartServer_AllRoutesWork(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	baseURL := fmt.Sprintf("http://localhost:%d", port)

	// Give server time to start
	time.Sleep(50 * time.Millisecond)

	// THEN
	testCases := []struct {
		path     string
		expected string
	}{
		{"/", "home"},
		{"/141-inch-laptop", "product"},
		{"/search?q=laptop", "search"},
		{"/login", "login"},
		{"/logout", "logout"},
		{"/addproducttocart/31", "addtocart"},
		{"/cart", "cart"},
		{"/onepagecheckout", "checkout"},
		{"/checkout/completed/1000", "confirmation"},
		{"/orderdetails/1000", "orderdetails"},
		{"/checkout/failed?reason=EmptyCart", "failure"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			body, status := httpGet(t, baseURL+tc.path)
			if status != http.StatusOK {
				t.Errorf("Expected status 200, got %d", status)
			}
			if body != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	// Verify server is running
	time.Sleep(50 * time.Millisecond)
	_, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))
	if status != http.StatusOK {
		t.Fatal("Server not responding")
	}

	// THEN
	// Test graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Failed to shutdown server gracefully: %v", err)
	}

	// Verify server is no longer responding
	time.Sleep(100 * time.Millisecond)
	_, getErr := http.Get(fmt.Sprintf("http://localhost:%d/", port))
	if getErr == nil {
		t.Error("Expected error after shutdown, server still responding")
	}
}

func TestWaitForShutdown_SIGTERM(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	listener, server, _ := startTestServer(t, deps)
	defer listener.Close()

	shutdown := make(chan os.Signal, 1)

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdown(server, shutdown)
	}()

	time.Sleep(50 * time.Millisecond)
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestWaitForShutdown_WithActiveRequests(t *testing.T) {
	// GIVEN
	slowHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte("done"))
	})

	deps := createTestDeps("0")
	deps.HomeHandler = slowHandler

	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	// Start an active request
	time.Sleep(50 * time.Millisecond)
	requestComplete := make(chan bool, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", port))
		if err == nil {
			resp.Body.Close()
		}
		requestComplete <- true
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdown(server, shutdown)
	}()

	shutdown <- syscall.SIGTERM

	// THEN
	// Should wait for active request to complete
	select {
	case <-requestComplete:
		t.Log("Request completed successfully")
	case <-time.After(2 * time.Second):
		t.Error("Request did not complete in time")
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestRunServe_FullIntegration(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunServe(deps)
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	// Send shutdown signal to the process
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to get process: %v", err)
	}

	if err := p.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send signal: %v", err)
	}

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not shut down within timeout")
	}
}

func TestRunServe_StartupFailure(t *testing.T) {
	// GIVEN
	deps := createTestDeps("99999") // Invalid port

	// WHEN
	err := RunServe(deps)

	// THEN
	if err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestWaitForShutdownWithTimeout_ForcesClose(t *testing.T) {
	// GIVEN a request that outlives the shutdown timeout
	release := make(chan struct{})
	defer close(release)

	deps := createTestDeps("0")
	deps.HomeHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	})

	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	go http.Get(fmt.Sprintf("http://localhost:%d/", port))
	time.Sleep(50 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)
	shutdown <- syscall.SIGTERM

	// WHEN
	err := WaitForShutdownWithTimeout(server, shutdown, time.Nanosecond)

	// THEN the server is closed instead of drained
	if err != nil {
		t.Errorf("Expected nil error, got: %v", err)
	}
}
