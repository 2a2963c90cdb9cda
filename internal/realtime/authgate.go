package realtime

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// Close reasons sent with the policy-violation close code. Clients can tell
// the two apart by reason string for logging, but neither is retryable.
// The reason for an invalid credential deliberately never says whether the
// token was expired or malformed, to avoid an oracle.
const (
	CloseReasonMissingToken = "authentication required"
	CloseReasonInvalidToken = "invalid credential"
)

// Auth gate errors.
var (
	// ErrMissingCredential indicates no token was presented at connect time.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidCredential indicates the presented token failed validation.
	ErrInvalidCredential = errors.New("invalid credential")
)

// AuthGate validates the bearer credential presented at connection time and
// extracts the identity behind it. Token verification itself is delegated
// to the auth service; the gate only decides where the token comes from and
// what a failure means for the connection.
type AuthGate struct {
	jwtService auth.JWTService
}

// NewAuthGate creates an AuthGate over the given JWT service.
func NewAuthGate(jwtService auth.JWTService) *AuthGate {
	return &AuthGate{jwtService: jwtService}
}

// Authenticate extracts the bearer token from the request and validates it.
// The token may arrive as a "token" query parameter (browser WebSocket
// clients cannot set custom headers) or an Authorization header. Returns
// ErrMissingCredential or ErrInvalidCredential on failure; the identity on
// success is used only for routing and logging, never for authorization.
func (g *AuthGate) Authenticate(r *http.Request) (Identity, error) {
	token := bearerToken(r)
	if token == "" {
		return Identity{}, ErrMissingCredential
	}

	claims, err := g.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		// Collapse every validation failure into one public error so the
		// close reason cannot distinguish expired from malformed.
		return Identity{}, ErrInvalidCredential
	}

	return Identity{
		ID:          claims.UserID.String(),
		DisplayName: claims.DisplayName,
	}, nil
}

// bearerToken pulls the credential from the query string or, failing that,
// the Authorization header.
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
