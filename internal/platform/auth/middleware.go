package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the cookie the dashboard front end stores the identity
// provider's ID token in after sign-in.
const SessionCookie = "session"

// IDTokenClaims are the Google ID token claims the dashboard cares about.
type IDTokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	HostedDomain  string `json:"hd"`
}

type Config struct {
	Issuer             string
	Audience           string
	JWKSURL            string
	AllowedEmailDomain string
	SignInPath         string
	// SigningKey is used for development/testing only
	SigningKey []byte
}

// RequireSignIn returns middleware that verifies the caller's ID token and
// restricts access to accounts on the organization's email domain.
//
// The token is taken from the Authorization header or, for browser
// navigation, from the session cookie. Unauthenticated browser requests are
// redirected to the sign-in path; API clients get a plain 401. A verified
// account outside the allowed domain gets 403. On success the identity is
// placed on the request context for handlers to read via FromContext.
func RequireSignIn(cfg Config) echo.MiddlewareFunc {
	signInPath := cfg.SignInPath
	if signInPath == "" {
		signInPath = "/auth/signin"
	}

	// One keyfunc per middleware instance so the JWKS cache is shared
	// across requests.
	keyFunc := signingKeyFunc(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := tokenFromRequest(c)
			if tokenStr == "" {
				return denySignIn(c, signInPath, "missing credentials")
			}

			claims, err := verifyIDToken(tokenStr, cfg, keyFunc)
			if err != nil {
				return denySignIn(c, signInPath, "invalid token")
			}

			if !claims.EmailVerified {
				return echo.NewHTTPError(http.StatusForbidden, "email address not verified")
			}
			if !emailOnDomain(claims.Email, cfg.AllowedEmailDomain) {
				return echo.NewHTTPError(http.StatusForbidden, "account is not part of the organization")
			}

			id := &Identity{
				Subject: claims.Subject,
				Email:   claims.Email,
				Name:    claims.Name,
			}
			c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))

			return next(c)
		}
	}
}

// DevAuthMiddleware signs every request in with a synthetic identity. For
// development only; config.Validate refuses this outside ENV=development.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := &Identity{
				Subject: "dev-user",
				Email:   "dev@localhost",
				Name:    "Development User",
			}
			c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))
			return next(c)
		}
	}
}

// signingKeyFunc resolves how tokens are verified: an HMAC key when one is
// configured (tests and local development), otherwise the provider's JWKS.
func signingKeyFunc(cfg Config) jwt.Keyfunc {
	if len(cfg.SigningKey) > 0 {
		return func(t *jwt.Token) (interface{}, error) {
			return cfg.SigningKey, nil
		}
	}
	return jwksKeyFunc(cfg.JWKSURL)
}

func verifyIDToken(tokenStr string, cfg Config, keyFunc jwt.Keyfunc) (*IDTokenClaims, error) {
	claims := &IDTokenClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "HS256"}),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// tokenFromRequest extracts the ID token from the Authorization header or the
// session cookie.
func tokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// denySignIn redirects browser navigation to the sign-in page and returns a
// plain 401 to API clients.
func denySignIn(c echo.Context, signInPath, reason string) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, signInPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, reason)
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}

func emailOnDomain(email, domain string) bool {
	if domain == "" {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.EqualFold(email[at+1:], domain)
}
