// Command healthcheck probes the readtrack health endpoint and exits non-zero
// unless the server reports status "ok". It is used as the container
// HEALTHCHECK.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultAddr = "127.0.0.1:8080"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "healthcheck: load .env:", err)
	}

	addr := normalizeAddr(os.Getenv("READTRACK_LISTEN_ADDR"))
	if err := check(context.Background(), "http://"+addr); err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		os.Exit(1)
	}
}

type healthBody struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// check requests baseURL/api/v1/health and returns an error unless the server
// answers 200 with status "ok".
func check(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/health", nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || body.Status != "ok" {
		return fmt.Errorf("unhealthy: http %d, status %q, storage %q", resp.StatusCode, body.Status, body.Storage)
	}
	return nil
}

// normalizeAddr connects to loopback rather than the bind-all address. The
// healthcheck runs inside the same container as the server.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
