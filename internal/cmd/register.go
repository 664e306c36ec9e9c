// Package cmd contains the orchestration for the one-shot OAuth client
// registration flow: resolve credentials, log in, register the client, print
// the result.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/madfam-org/enclii-oauth-bootstrap/internal/config"
	"github.com/madfam-org/enclii-oauth-bootstrap/internal/janua"
)

// RegisterOptions controls credential prompting and output for the
// registration flow. The zero value uses stdin/stdout.
type RegisterOptions struct {
	// NoInput forbids interactive prompts; missing credentials become an error.
	NoInput bool
	// Prompt reads a plain text value, used for the admin email.
	Prompt func(label string) (string, error)
	// PasswordPrompt reads a masked value, used for the admin password.
	PasswordPrompt func(label string) (string, error)
	// Stdout receives the human readable progress and result output.
	Stdout io.Writer
}

// DoClientRegistration runs the complete bootstrap flow against the Janua
// admin API. The returned error is nil only when the client was created and
// its details printed; callers map any error to a non-zero exit.
func DoClientRegistration(ctx context.Context, cfg *config.Config, options *RegisterOptions) error {
	if options == nil {
		options = &RegisterOptions{}
	}
	out := options.Stdout
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "Enclii CLI OAuth Client Registration")
	fmt.Fprintln(out, strings.Repeat("=", 40))
	fmt.Fprintln(out)

	email, password, err := resolveCredentials(cfg, options)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Logging in as %s...\n", email)

	client := janua.NewClient(cfg)
	token, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Login successful")
	fmt.Fprintln(out)

	clientCfg := janua.CLIClientConfig()
	fmt.Fprintln(out, "Creating OAuth client...")
	fmt.Fprintf(out, "  Name: %s\n", clientCfg.Name)
	fmt.Fprintf(out, "  Public client (PKCE): %t\n", !clientCfg.IsConfidential)
	fmt.Fprintf(out, "  Scopes: %s\n", strings.Join(clientCfg.AllowedScopes, ", "))
	fmt.Fprintln(out)

	record, err := client.RegisterClient(ctx, token, clientCfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "OAuth client created successfully!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Client Details:")
	fmt.Fprintf(out, "  client_id: %s\n", record.ClientID)
	if record.ClientSecret != "" {
		fmt.Fprintf(out, "  client_secret: %s\n", record.ClientSecret)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  NOTE: Save the client_secret now - it won't be shown again!")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "The enclii-cli OAuth client is now registered.")
	fmt.Fprintln(out, "Users can authenticate with: enclii login")
	return nil
}

func resolveCredentials(cfg *config.Config, options *RegisterOptions) (email, password string, err error) {
	email = strings.TrimSpace(cfg.AdminEmail)
	password = cfg.AdminPassword

	if email == "" {
		if options.NoInput {
			return "", "", fmt.Errorf("credentials: %s is required when prompts are disabled", config.EnvAdminEmail)
		}
		promptFn := options.Prompt
		if promptFn == nil {
			promptFn = promptLine
		}
		email, err = promptFn("Janua admin email: ")
		if err != nil {
			return "", "", fmt.Errorf("credentials: read email failed: %w", err)
		}
		email = strings.TrimSpace(email)
	}
	if email == "" {
		return "", "", errors.New("credentials: admin email is empty")
	}

	if password == "" {
		if options.NoInput {
			return "", "", fmt.Errorf("credentials: %s is required when prompts are disabled", config.EnvAdminPassword)
		}
		passwordFn := options.PasswordPrompt
		if passwordFn == nil {
			passwordFn = promptPassword
		}
		password, err = passwordFn("Janua admin password: ")
		if err != nil {
			return "", "", fmt.Errorf("credentials: read password failed: %w", err)
		}
	}
	if password == "" {
		return "", "", errors.New("credentials: admin password is empty")
	}

	return email, password, nil
}
