package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/utils"
)

const (
    // FormTokenField is the hidden form input carrying the token.
    FormTokenField = "csrf_token"
    // FormTokenHeader carries the token for script-issued requests.
    FormTokenHeader = "X-CSRF-Token"
)

// TokenVerifier checks a submitted form token.
type TokenVerifier interface {
    Verify(token string) error
}

var _ TokenVerifier = (*utils.FormTokens)(nil)

// RequireFormToken rejects unsafe requests whose form token is missing or
// invalid with 403.  GET, HEAD and OPTIONS are let through.
func RequireFormToken(v TokenVerifier) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            switch c.Request().Method {
            case http.MethodGet, http.MethodHead, http.MethodOptions:
                return next(c)
            }
            token := c.Request().Header.Get(FormTokenHeader)
            if token == "" {
                token = c.FormValue(FormTokenField)
            }
            if err := v.Verify(token); err != nil {
                return echo.NewHTTPError(http.StatusForbidden, "The form has expired or is invalid, please reload the page and try again.")
            }
            return next(c)
        }
    }
}
