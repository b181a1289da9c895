package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/auth"
)

// claimKey is the context key under which CookieAuth stores the verified
// identity claim.
const claimKey = "claim"

// CookieAuth returns an Echo middleware that verifies the bearer token
// carried in the "token" cookie and injects the decoded claim into the
// request context.  A missing or invalid cookie yields 401; handlers behind
// this middleware can assume ClaimFrom succeeds.  Verification is stateless
// and paid on every request; there is no session cache.
func CookieAuth(codec *auth.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(auth.CookieName)
			if err != nil || ck.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
			}
			claim, err := codec.Verify(ck.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(claimKey, claim)
			return next(c)
		}
	}
}

// ClaimFrom extracts the claim placed in context by CookieAuth.  The bool
// is false when the request went through no auth middleware.
func ClaimFrom(c echo.Context) (auth.Claim, bool) {
	cl, ok := c.Get(claimKey).(auth.Claim)
	return cl, ok
}

// SetClaim stores a claim in context the same way CookieAuth does.
func SetClaim(c echo.Context, cl auth.Claim) { c.Set(claimKey, cl) }
