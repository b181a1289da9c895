package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumichanda/booking-api/internal/auth"
)

func protectedEcho(codec *auth.Codec) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		cl, ok := ClaimFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, cl.AccountID)
	}, CookieAuth(codec))
	return e
}

func TestCookieAuth_MissingCookie(t *testing.T) {
	t.Parallel()

	e := protectedEcho(auth.NewCodec("s"))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieAuth_TamperedToken(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("s")
	tok, err := codec.Sign(auth.Claim{AccountID: 3, Email: "u@x.com"})
	require.NoError(t, err)

	e := protectedEcho(codec)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok + "x"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieAuth_ValidToken(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("s")
	tok, err := codec.Sign(auth.Claim{AccountID: 3, Email: "u@x.com"})
	require.NoError(t, err)

	e := protectedEcho(codec)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3\n", rec.Body.String())
}
