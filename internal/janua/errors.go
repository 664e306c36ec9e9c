package janua

// AuthenticationError reports a rejected login. Message carries the server
// provided error message when the response body is structured, otherwise the
// raw body text.
type AuthenticationError struct {
	// Message is a human readable description of the failure.
	Message string
	// HTTPStatus records the status code returned by the login endpoint.
	HTTPStatus int
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e == nil {
		return ""
	}
	return "login failed: " + e.Message
}

// StatusCode returns the HTTP status associated with the failure.
func (e *AuthenticationError) StatusCode() int {
	if e == nil {
		return 0
	}
	return e.HTTPStatus
}

// ClientAlreadyExistsError reports a registration conflict: a client with the
// same identity is already registered.
type ClientAlreadyExistsError struct {
	// Name is the client name from the attempted registration payload.
	Name string
}

// Error implements the error interface.
func (e *ClientAlreadyExistsError) Error() string {
	if e == nil {
		return ""
	}
	if e.Name == "" {
		return "OAuth client already exists"
	}
	return "OAuth client " + e.Name + " already exists"
}

// RegistrationError reports any registration failure other than a conflict.
type RegistrationError struct {
	// Message is a human readable description of the failure.
	Message string
	// HTTPStatus records the status code returned by the registration endpoint.
	HTTPStatus int
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	if e == nil {
		return ""
	}
	return "failed to create client: " + e.Message
}

// StatusCode returns the HTTP status associated with the failure.
func (e *RegistrationError) StatusCode() int {
	if e == nil {
		return 0
	}
	return e.HTTPStatus
}
