package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("test-signing-key")

func testConfig() Config {
	return Config{
		Issuer:             "https://accounts.google.com",
		Audience:           "dashboard-client",
		AllowedEmailDomain: "example.org",
		SignInPath:         "/auth/signin",
		SigningKey:         testKey,
	}
}

func signToken(t *testing.T, claims *IDTokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() *IDTokenClaims {
	return &IDTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://accounts.google.com",
			Subject:   "user-123",
			Audience:  jwt.ClaimStrings{"dashboard-client"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:         "clinician@example.org",
		EmailVerified: true,
		Name:          "Test Clinician",
	}
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, *Identity, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *Identity
	handler := mw(func(c echo.Context) error {
		seen = FromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, seen, err
}

func TestRequireSignIn_ValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))

	rec, id, err := invoke(t, RequireSignIn(testConfig()), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if id == nil {
		t.Fatal("expected identity on request context")
	}
	if id.Email != "clinician@example.org" {
		t.Errorf("expected email to be carried, got %s", id.Email)
	}
	if id.Subject != "user-123" {
		t.Errorf("expected subject user-123, got %s", id.Subject)
	}
}

func TestRequireSignIn_SessionCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signToken(t, validClaims())})

	rec, id, err := invoke(t, RequireSignIn(testConfig()), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || id == nil {
		t.Errorf("expected signed-in request via cookie, got code %d", rec.Code)
	}
}

func TestRequireSignIn_MissingToken_API(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)

	_, _, err := invoke(t, RequireSignIn(testConfig()), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for API client, got %v", err)
	}
}

func TestRequireSignIn_MissingToken_BrowserRedirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/patients/42/7", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	rec, _, err := invoke(t, RequireSignIn(testConfig()), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth/signin" {
		t.Errorf("expected redirect to /auth/signin, got %s", loc)
	}
}

func TestRequireSignIn_WrongEmailDomain(t *testing.T) {
	claims := validClaims()
	claims.Email = "stranger@elsewhere.com"
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))

	_, _, err := invoke(t, RequireSignIn(testConfig()), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for foreign domain, got %v", err)
	}
}

func TestRequireSignIn_UnverifiedEmail(t *testing.T) {
	claims := validClaims()
	claims.EmailVerified = false
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))

	_, _, err := invoke(t, RequireSignIn(testConfig()), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for unverified email, got %v", err)
	}
}

func TestRequireSignIn_ExpiredToken(t *testing.T) {
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))

	_, _, err := invoke(t, RequireSignIn(testConfig()), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %v", err)
	}
}

func TestRequireSignIn_WrongAudience(t *testing.T) {
	claims := validClaims()
	claims.Audience = jwt.ClaimStrings{"someone-else"}
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))

	_, _, err := invoke(t, RequireSignIn(testConfig()), req)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong audience, got %v", err)
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)

	rec, id, err := invoke(t, DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if id == nil || id.Subject != "dev-user" {
		t.Errorf("expected synthetic dev identity, got %+v", id)
	}
}

func TestEmailOnDomain(t *testing.T) {
	cases := []struct {
		email  string
		domain string
		want   bool
	}{
		{"a@example.org", "example.org", true},
		{"a@EXAMPLE.ORG", "example.org", true},
		{"a@sub.example.org", "example.org", false},
		{"a@elsewhere.com", "example.org", false},
		{"no-at-sign", "example.org", false},
		{"a@example.org", "", false},
	}
	for _, tc := range cases {
		if got := emailOnDomain(tc.email, tc.domain); got != tc.want {
			t.Errorf("emailOnDomain(%q, %q) = %v, want %v", tc.email, tc.domain, got, tc.want)
		}
	}
}
