package janua

// ClientConfig describes an OAuth client as accepted by the Janua admin API.
type ClientConfig struct {
	// Name is the human readable client name shown on consent screens.
	Name string `json:"name"`
	// Description explains what the client is for.
	Description string `json:"description"`
	// RedirectURIs lists the allowed OAuth callback URIs.
	RedirectURIs []string `json:"redirect_uris"`
	// AllowedScopes lists the scopes the client may request.
	AllowedScopes []string `json:"allowed_scopes"`
	// GrantTypes lists the OAuth grant types enabled for the client.
	GrantTypes []string `json:"grant_types"`
	// IsConfidential marks clients able to hold a secret. Public (PKCE) clients set false.
	IsConfidential bool `json:"is_confidential"`
	// WebsiteURL points at the client's homepage.
	WebsiteURL string `json:"website_url"`
}

// ClientRecord is the server-assigned result of a client registration.
type ClientRecord struct {
	// ClientID is the server generated OAuth client identifier.
	ClientID string `json:"client_id"`
	// ClientSecret is only present for confidential clients and is disclosed once.
	ClientSecret string `json:"client_secret,omitempty"`
}

// CLIClientConfig is the fixed registration payload for the Enclii CLI.
// The enclii binary performs the PKCE authorization code flow against this client,
// so it is registered as a public client with a loopback redirect.
func CLIClientConfig() ClientConfig {
	return ClientConfig{
		Name:           "Enclii CLI",
		Description:    "Official Enclii command-line interface for deployment and management",
		RedirectURIs:   []string{"http://127.0.0.1/callback"},
		AllowedScopes:  []string{"openid", "profile", "email", "offline_access"},
		GrantTypes:     []string{"authorization_code", "refresh_token"},
		IsConfidential: false,
		WebsiteURL:     "https://enclii.dev",
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
