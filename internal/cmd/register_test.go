package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/madfam-org/enclii-oauth-bootstrap/internal/config"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/janua"
)

// newJanuaStub wires a fake Janua admin API with the given registration handler.
// Login always succeeds with a fixed token unless loginStatus is non-zero.
func newJanuaStub(t *testing.T, loginStatus int, loginBody string, register http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if loginStatus != 0 {
			w.WriteHeader(loginStatus)
			_, _ = w.Write([]byte(loginBody))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	})
	if register != nil {
		mux.HandleFunc("/api/v1/oauth/clients", register)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		APIURL:        apiURL,
		AdminEmail:    "admin@madfam.io",
		AdminPassword: "hunter2",
	}
}

func TestDoClientRegistrationSuccess(t *testing.T) {
	server := newJanuaStub(t, 0, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"client_id":"abc","client_secret":"xyz"}`))
	})

	var out bytes.Buffer
	err := DoClientRegistration(context.Background(), testConfig(server.URL), &RegisterOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("DoClientRegistration() error = %v", err)
	}

	for _, want := range []string{
		"Logging in as admin@madfam.io...",
		"Login successful",
		"client_id: abc",
		"client_secret: xyz",
		"won't be shown again",
		"enclii login",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoClientRegistrationPublicClientOmitsSecret(t *testing.T) {
	server := newJanuaStub(t, 0, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"client_id":"abc"}`))
	})

	var out bytes.Buffer
	if err := DoClientRegistration(context.Background(), testConfig(server.URL), &RegisterOptions{Stdout: &out}); err != nil {
		t.Fatalf("DoClientRegistration() error = %v", err)
	}
	if strings.Contains(out.String(), "client_secret") {
		t.Errorf("output should not mention client_secret for a public client:\n%s", out.String())
	}
}

func TestDoClientRegistrationConflict(t *testing.T) {
	server := newJanuaStub(t, 0, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	var out bytes.Buffer
	err := DoClientRegistration(context.Background(), testConfig(server.URL), &RegisterOptions{Stdout: &out})
	if _, ok := errors.AsType[*janua.ClientAlreadyExistsError](err); !ok {
		t.Fatalf("DoClientRegistration() error = %v, want *janua.ClientAlreadyExistsError", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error %q should mention already exists", err.Error())
	}
}

func TestDoClientRegistrationAuthFailure(t *testing.T) {
	server := newJanuaStub(t, http.StatusUnauthorized, `{"error":{"message":"bad creds"}}`, nil)

	var out bytes.Buffer
	err := DoClientRegistration(context.Background(), testConfig(server.URL), &RegisterOptions{Stdout: &out})
	authErr, ok := errors.AsType[*janua.AuthenticationError](err)
	if !ok {
		t.Fatalf("DoClientRegistration() error = %v, want *janua.AuthenticationError", err)
	}
	if authErr.Message != "bad creds" {
		t.Errorf("Message = %q, want %q", authErr.Message, "bad creds")
	}
	if strings.Contains(out.String(), "Login successful") {
		t.Errorf("output should not report a successful login:\n%s", out.String())
	}
}

func TestDoClientRegistrationUnstructuredRegistrationError(t *testing.T) {
	server := newJanuaStub(t, 0, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	err := DoClientRegistration(context.Background(), testConfig(server.URL), &RegisterOptions{Stdout: &bytes.Buffer{}})
	regErr, ok := errors.AsType[*janua.RegistrationError](err)
	if !ok {
		t.Fatalf("DoClientRegistration() error = %v, want *janua.RegistrationError", err)
	}
	if !strings.Contains(regErr.Message, "gateway error") {
		t.Errorf("Message = %q, want raw body text", regErr.Message)
	}
}

func TestDoClientRegistrationPromptsForCredentials(t *testing.T) {
	var seenEmail, seenPassword string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		seenEmail, seenPassword = req["email"], req["password"]
		_, _ = w.Write([]byte(`{"access_token":"tok"}`))
	})
	mux.HandleFunc("/api/v1/oauth/clients", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"client_id":"abc"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := &config.Config{APIURL: server.URL}
	opts := &RegisterOptions{
		Stdout:         &bytes.Buffer{},
		Prompt:         func(string) (string, error) { return " admin@madfam.io \n", nil },
		PasswordPrompt: func(string) (string, error) { return "hunter2", nil },
	}
	if err := DoClientRegistration(context.Background(), cfg, opts); err != nil {
		t.Fatalf("DoClientRegistration() error = %v", err)
	}
	if seenEmail != "admin@madfam.io" || seenPassword != "hunter2" {
		t.Errorf("login received email=%q password=%q, want prompted values", seenEmail, seenPassword)
	}
}

func TestDoClientRegistrationNoInputRequiresEnv(t *testing.T) {
	cfg := &config.Config{APIURL: "http://127.0.0.1:0"}
	err := DoClientRegistration(context.Background(), cfg, &RegisterOptions{NoInput: true, Stdout: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("DoClientRegistration() expected error when prompts are disabled and env is empty")
	}
	if !strings.Contains(err.Error(), config.EnvAdminEmail) {
		t.Errorf("error %q should name %s", err.Error(), config.EnvAdminEmail)
	}
}
