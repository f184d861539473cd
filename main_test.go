package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comercio/internal/config"
	"comercio/internal/models"
	"comercio/internal/services"
)

func testConfig(t *testing.T, secret string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "commerce.db")},
		Export:   config.ExportConfig{Dir: filepath.Join(dir, "exports")},
		HTTP:     config.HTTPConfig{Addr: ":0"},
		Auth:     config.AuthConfig{Secret: secret, TTL: time.Hour},
	}
}

// execute runs the CLI with logs redirected to a temp file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COMMERCE_LOG_FILE", filepath.Join(t.TempDir(), "test.log"))
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestServerHealthAndAuth(t *testing.T) {
	app, err := NewApp(testConfig(t, "test_jwt_secret"))
	require.NoError(t, err)
	defer app.Close()
	server := buildServer(app)

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)

	payload := strings.NewReader(`{"name":"Shirt","price":10,"size":"P"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", payload)
	req.Header.Set("Content-Type", "application/json")
	resp, err = server.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Expected Unauthorized for POST /products without token")

	resp, err = server.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_SharedStore(t *testing.T) {
	cfg := testConfig(t, "")
	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Products.CreateProduct(&models.Product{Name: "Coat", Price: 10, Size: models.SizeG}))

	counts, err := app.Inspector.Stats()
	require.NoError(t, err)
	for _, c := range counts {
		if c.Table == "products" {
			assert.EqualValues(t, 1, c.Rows)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("COMMERCE_AUTH_SECRET", "cli_secret")
	out, err := execute(t, "token", "ops")
	require.NoError(t, err)

	claims, err := services.NewTokenService("cli_secret", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims["sub"])
}

func TestTokenCommand_NoSecret(t *testing.T) {
	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestInspectCommands(t *testing.T) {
	cfg := testConfig(t, "")
	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NoError(t, app.Customers.CreateCustomer(&models.Customer{Name: "Ana", Email: "ana@example.com"}))
	app.Close()

	out, err := execute(t, "inspect", "stats", "--db", cfg.Database.Path)
	require.NoError(t, err)
	assert.Contains(t, out, "DATABASE STATISTICS")
	assert.Contains(t, out, "customers")

	out, err = execute(t, "inspect", "view", "customers", "--db", cfg.Database.Path)
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "Total records: 1")

	_, err = execute(t, "inspect", "view", "nope", "--db", cfg.Database.Path)
	assert.Error(t, err)

	out, err = execute(t, "inspect", "export", "customers", "--db", cfg.Database.Path, "--dir", cfg.Export.Dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Data exported to:")
	entries, err := os.ReadDir(cfg.Export.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWatchCommand_RequiresBroker(t *testing.T) {
	_, err := execute(t, "watch")
	assert.ErrorContains(t, err, "rabbitmq.url")
}

func TestLogRecordEvent(t *testing.T) {
	body, err := json.Marshal(services.RecordEvent{EventID: "e1", Entity: "product", Action: "created", RecordID: 3})
	require.NoError(t, err)
	assert.NoError(t, logRecordEvent(amqp.Delivery{RoutingKey: "product.created", Body: body}))
	assert.NoError(t, logRecordEvent(amqp.Delivery{Body: []byte("not json")}))
}

// syncBuffer is a bytes.Buffer safe for the menu goroutine and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunMenu_InterruptIsCleanExit(t *testing.T) {
	app, err := NewApp(testConfig(t, ""))
	require.NoError(t, err)
	defer app.Close()

	// The reader never yields a line, so only the context can end the session.
	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out syncBuffer
	require.NoError(t, runMenuWith(ctx, app, in, &out))
	assert.Contains(t, out.String(), "Program interrupted by user.")
}

func TestRunMenu_ExitChoice(t *testing.T) {
	app, err := NewApp(testConfig(t, ""))
	require.NoError(t, err)
	defer app.Close()

	var out syncBuffer
	require.NoError(t, runMenuWith(context.Background(), app, strings.NewReader("5\n"), &out))
	assert.Contains(t, out.String(), "Shutting down...")
	assert.NotContains(t, out.String(), "Program interrupted by user.")
}
