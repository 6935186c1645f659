package utils // package utils provides helper functions for signing form tokens

import (
    "errors" // sentinel errors for token verification
    "fmt"
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
    "github.com/google/uuid"       // random token identifiers
)

// formPurpose is stored in the "pur" claim so that a form token cannot be
// confused with any other HS256 token signed with the same secret.
const formPurpose = "form"

// ErrInvalidFormToken is returned by Verify for any token that is
// malformed, expired, signed with another key or issued for another purpose.
var ErrInvalidFormToken = errors.New("invalid form token")

// FormToken is a signed token embedded in every HTML form along with its
// expiry.
type FormToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// FormTokens issues and verifies the tokens that protect form submissions.
// Tokens are stateless: anything signed with Secret that has not expired is
// accepted.
type FormTokens struct {
    Secret string
    TTL    time.Duration
    // Now returns the current time.  It defaults to time.Now.
    Now func() time.Time
}

// NewFormTokens returns a FormTokens for secret and ttl.
func NewFormTokens(secret string, ttl time.Duration) *FormTokens {
    return &FormTokens{Secret: secret, TTL: ttl, Now: time.Now}
}

func (f *FormTokens) now() time.Time {
    if f.Now == nil {
        return time.Now().UTC()
    }
    return f.Now().UTC()
}

// Issue builds and signs an HS256 JWT.  The claims carry a random id (jti),
// the purpose (pur), the expiration (exp) and the issued at time (iat).
func (f *FormTokens) Issue() (FormToken, error) {
    now := f.now()
    exp := now.Add(f.TTL)
    claims := jwt.MapClaims{
        "jti": uuid.NewString(),
        "pur": formPurpose,
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(f.Secret))
    if err != nil {
        return FormToken{}, fmt.Errorf("sign form token: %w", err)
    }
    return FormToken{Token: signed, Exp: exp}, nil
}

// Verify checks the signature, expiry and purpose of a token.  Every
// failure is reported as ErrInvalidFormToken.
func (f *FormTokens) Verify(token string) error {
    if token == "" {
        return ErrInvalidFormToken
    }
    claims := jwt.MapClaims{}
    _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(f.Secret), nil
    },
        jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
        jwt.WithExpirationRequired(),
        jwt.WithTimeFunc(f.now),
    )
    if err != nil {
        return fmt.Errorf("%w: %v", ErrInvalidFormToken, err)
    }
    if pur, _ := claims["pur"].(string); pur != formPurpose {
        return ErrInvalidFormToken
    }
    return nil
}
