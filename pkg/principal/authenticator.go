package principal

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Authenticator extracts and verifies the identity behind a request.
// Returning nil, ErrUnauthenticated means the request carried no usable
// credential; any other error means verification failed.
type Authenticator interface {
	Authenticate(r *http.Request) (*Principal, error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(r *http.Request) (*Principal, error)

func (f AuthenticatorFunc) Authenticate(r *http.Request) (*Principal, error) {
	return f(r)
}

// Claims is the JWT claim set the bearer authenticator issues and verifies.
type Claims struct {
	jwt.RegisteredClaims
	Email     string   `json:"email,omitempty"`
	Operator  bool     `json:"operator,omitempty"`
	Superuser bool     `json:"superuser,omitempty"`
	Groups    []string `json:"groups,omitempty"`
}

// JWTAuthenticator verifies HS256 bearer tokens from the Authorization header
// and maps their claims to a Principal.
type JWTAuthenticator struct {
	signingKey []byte
	issuer     string
}

// NewJWTAuthenticator creates a bearer-token authenticator.
// The issuer is optional; when set, tokens from other issuers are rejected.
func NewJWTAuthenticator(signingKey []byte, issuer string) (*JWTAuthenticator, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &JWTAuthenticator{signingKey: signingKey, issuer: issuer}, nil
}

// Authenticate verifies the bearer token and returns the principal it identifies.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (*Principal, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.signingKey, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Join(ErrInvalidSubject, err)
	}

	return &Principal{
		ID:        id,
		Email:     claims.Email,
		Operator:  claims.Operator,
		Superuser: claims.Superuser,
		Groups:    claims.Groups,
	}, nil
}

// Issue signs a token for the given principal. Used by tests and by services
// that own credential issuance; verification is the primary concern here.
func (a *JWTAuthenticator) Issue(p *Principal, claims Claims) (string, error) {
	claims.Subject = p.ID.String()
	claims.Email = p.Email
	claims.Operator = p.Operator
	claims.Superuser = p.Superuser
	claims.Groups = p.Groups
	if a.issuer != "" {
		claims.Issuer = a.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.signingKey)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}
