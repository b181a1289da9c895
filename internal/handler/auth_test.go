package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dumichanda/booking-api/internal/auth"
	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/repository"
	"github.com/dumichanda/booking-api/internal/utils"
)

const userColumns = "id,name,email,password_hash,created_at,updated_at"

func testConfig() config.Config {
	return config.Config{
		BcryptCost:    bcrypt.MinCost,
		PublicBaseURL: "http://localhost:4000",
	}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newJSONCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func userRows(t *testing.T, id uint64, name, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows(strings.Split(userColumns, ",")).
		AddRow(id, name, email, hash, time.Now(), time.Now())
}

func TestRegister_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO users (name, email, password_hash) VALUES (?,?,?)").
		WithArgs("Ann", "ann@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodPost, "/register", `{"name":"Ann","email":"Ann@X.com","password":"pw1"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ann@x.com"`)
	assert.NotContains(t, rec.Body.String(), "pw1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO users (name, email, password_hash) VALUES (?,?,?)").
		WithArgs("Ann", "ann@x.com", sqlmock.AnyArg()).
		WillReturnError(&mysqlDuplicateErr{})

	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodPost, "/register", `{"name":"Ann","email":"ann@x.com","password":"pw1"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

// mysqlDuplicateErr mimics the driver's duplicate-key error text.
type mysqlDuplicateErr struct{}

func (*mysqlDuplicateErr) Error() string {
	return "Error 1062 (23000): Duplicate entry 'ann@x.com' for key 'users.email'"
}

func TestLogin_Success_SetsCookie(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT " + userColumns + " FROM users WHERE email=? LIMIT 1").
		WithArgs("ann@x.com").
		WillReturnRows(userRows(t, 1, "Ann", "ann@x.com", "pw1"))

	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodPost, "/login", `{"email":"ann@x.com","password":"pw1"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, auth.CookieName+"=")
	// The login response carries public fields only, never the hash.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT " + userColumns + " FROM users WHERE email=? LIMIT 1").
		WithArgs("ann@x.com").
		WillReturnRows(userRows(t, 1, "Ann", "ann@x.com", "pw1"))

	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodPost, "/login", `{"email":"ann@x.com","password":"wrong"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT " + userColumns + " FROM users WHERE email=? LIMIT 1").
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows(strings.Split(userColumns, ",")))

	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodPost, "/login", `{"email":"ghost@x.com","password":"pw1"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfile_NoCookieReturnsNull(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodGet, "/profile", "")

	require.NoError(t, h.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestProfile_InvalidToken(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodGet, "/profile", "")
	c.Request().AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})

	require.NoError(t, h.Profile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_ValidToken(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT " + userColumns + " FROM users WHERE id=? LIMIT 1").
		WithArgs(uint64(1)).
		WillReturnRows(userRows(t, 1, "Ann", "ann@x.com", "pw1"))

	codec := auth.NewCodec("s")
	tok, err := codec.Sign(auth.Claim{AccountID: 1, Email: "ann@x.com"})
	require.NoError(t, err)

	h := NewAuthHandler(testConfig(), codec, repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodGet, "/profile", "")
	c.Request().AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})

	require.NoError(t, h.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ann@x.com"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout_ClearsCookie(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewAuthHandler(testConfig(), auth.NewCodec("s"), repository.NewUserRepo(db))
	c, rec := newJSONCtx(http.MethodPost, "/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), auth.CookieName+"=")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}
