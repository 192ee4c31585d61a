package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextKey is where the JWT middleware stores the parsed provider token.
const ContextKey = "user"

// ProviderClaims are the claims the identity provider mints into its
// tokens. The registered Subject is the external subject id.
type ProviderClaims struct {
	Emails    []string `json:"emails"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Username  string   `json:"username"`
	AvatarURL string   `json:"avatar_url"`
	jwt.RegisteredClaims
}

// Identity is a verified external identity: the provider's stable subject
// id plus the profile claims bundle. It is passed to services explicitly;
// nothing below the handler layer reads request state.
type Identity struct {
	ExternalID string
	Emails     []string
	FirstName  string
	LastName   string
	Username   string
	AvatarURL  string
}

// PrimaryEmail returns the first verified email address in the bundle.
func (i *Identity) PrimaryEmail() (string, error) {
	if len(i.Emails) == 0 {
		return "", errors.New("claims bundle has no email addresses")
	}
	return i.Emails[0], nil
}

// FullName joins first and last name with a single space, keeping absent
// parts empty, matching what the provider's dashboard shows.
func (i *Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

// FromToken converts a validated provider token into an Identity.
func FromToken(token *jwt.Token) (*Identity, error) {
	claims, ok := token.Claims.(*ProviderClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &Identity{
		ExternalID: claims.Subject,
		Emails:     claims.Emails,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Username:   claims.Username,
		AvatarURL:  claims.AvatarURL,
	}, nil
}

// IdentityFromContext extracts the caller's identity from an echo context
// populated by the JWT middleware. Returns nil for anonymous requests.
func IdentityFromContext(c echo.Context) *Identity {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok {
		return nil
	}
	ident, err := FromToken(token)
	if err != nil {
		return nil
	}
	return ident
}
