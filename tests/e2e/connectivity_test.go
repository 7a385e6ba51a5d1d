package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/coastpass/web-e2e/tests/e2e/config"
)

// TestConnectivity verifies the target origin serves /map at all before the
// browser scenarios spend their timeouts on it.
func TestConnectivity(t *testing.T) {
	cfg := config.GetConfig()

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Get(cfg.BaseURL + "/map")
	if err != nil {
		t.Fatalf("Failed to connect to %s/map: %v", cfg.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for /map, got %d", resp.StatusCode)
	}

	t.Logf("Connected to %s (/map status %d)", cfg.BaseURL, resp.StatusCode)
}
