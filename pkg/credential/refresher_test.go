package credential

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	content := "POAP_API_KEY=key1\nPOAP_ACCESS_TOKEN=old-token\nEVENTBRITE_API_KEY=eb1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRefresherRun(t *testing.T) {
	source := Static{
		POAPClientID:     "client1",
		POAPClientSecret: "secret1",
	}

	t.Run("rewrites the token line and updates the environment", func(t *testing.T) {
		t.Setenv(POAPAccessToken, "old-token")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" || r.URL.Path != "/oauth/token" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}

			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["grant_type"] != "client_credentials" {
				t.Errorf("unexpected grant_type: %s", body["grant_type"])
			}
			if body["client_id"] != "client1" || body["client_secret"] != "secret1" {
				t.Errorf("unexpected client credentials: %v", body)
			}
			if body["audience"] != "https://api.poap.tech" {
				t.Errorf("unexpected audience: %s", body["audience"])
			}

			w.Write([]byte(`{"access_token": "tok123"}`))
		}))
		defer srv.Close()

		envFile := writeEnvFile(t)
		refresher := NewRefresher(RefresherConfig{
			AuthBaseURL: srv.URL,
			EnvFile:     envFile,
		}, source, testLogger())

		if err := refresher.Run(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := os.ReadFile(envFile)
		want := "POAP_API_KEY=key1\nPOAP_ACCESS_TOKEN=tok123\nEVENTBRITE_API_KEY=eb1\n"
		if string(got) != want {
			t.Errorf("file mismatch:\n got: %q\nwant: %q", got, want)
		}

		if os.Getenv(POAPAccessToken) != "tok123" {
			t.Errorf("environment not updated, got: %s", os.Getenv(POAPAccessToken))
		}
	})

	t.Run("401 leaves file and environment untouched", func(t *testing.T) {
		t.Setenv(POAPAccessToken, "old-token")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "access_denied"}`))
		}))
		defer srv.Close()

		envFile := writeEnvFile(t)
		before, _ := os.ReadFile(envFile)

		refresher := NewRefresher(RefresherConfig{
			AuthBaseURL: srv.URL,
			EnvFile:     envFile,
		}, source, testLogger())

		if err := refresher.Run(context.Background()); err == nil {
			t.Fatal("expected error on 401")
		}

		after, _ := os.ReadFile(envFile)
		if string(before) != string(after) {
			t.Errorf("file was modified:\nbefore: %q\n after: %q", before, after)
		}
		if os.Getenv(POAPAccessToken) != "old-token" {
			t.Errorf("credential was updated, got: %s", os.Getenv(POAPAccessToken))
		}
	})

	t.Run("missing access_token field is an error", func(t *testing.T) {
		t.Setenv(POAPAccessToken, "old-token")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token_type": "Bearer"}`))
		}))
		defer srv.Close()

		envFile := writeEnvFile(t)
		refresher := NewRefresher(RefresherConfig{
			AuthBaseURL: srv.URL,
			EnvFile:     envFile,
		}, source, testLogger())

		if err := refresher.Run(context.Background()); err == nil {
			t.Fatal("expected error when access_token is missing")
		}
		if os.Getenv(POAPAccessToken) != "old-token" {
			t.Error("credential should not change on a malformed response")
		}
	})

	t.Run("missing client credentials skip the exchange", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		refresher := NewRefresher(RefresherConfig{AuthBaseURL: srv.URL}, Static{}, testLogger())

		if err := refresher.Run(context.Background()); err == nil {
			t.Fatal("expected error for missing client credentials")
		}
		if called {
			t.Error("OAuth endpoint should not be called without credentials")
		}
	})
}
