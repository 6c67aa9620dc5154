package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	Env                string   `mapstructure:"ENV"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32    `mapstructure:"DB_MIN_CONNS"`
	AuthIssuer         string   `mapstructure:"AUTH_ISSUER"`
	AuthAudience       string   `mapstructure:"AUTH_AUDIENCE"`
	AuthJWKSURL        string   `mapstructure:"AUTH_JWKS_URL"`
	AllowedEmailDomain string   `mapstructure:"ALLOWED_EMAIL_DOMAIN"`
	SignInPath         string   `mapstructure:"SIGNIN_PATH"`
	CORSOrigins        []string `mapstructure:"CORS_ORIGINS"`
	PageSize           int      `mapstructure:"PAGE_SIZE"`
	RequestTimeoutSecs int      `mapstructure:"REQUEST_TIMEOUT_SECS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("AUTH_ISSUER", "https://accounts.google.com")
	v.SetDefault("AUTH_JWKS_URL", "https://www.googleapis.com/oauth2/v3/certs")
	v.SetDefault("SIGNIN_PATH", "/auth/signin")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("PAGE_SIZE", 15)
	v.SetDefault("REQUEST_TIMEOUT_SECS", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("AUTH_JWKS_URL")
	v.BindEnv("ALLOWED_EMAIL_DOMAIN")
	v.BindEnv("SIGNIN_PATH")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("PAGE_SIZE")
	v.BindEnv("REQUEST_TIMEOUT_SECS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active; every request is signed in.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure AUTH_AUDIENCE and")
		log.Println("WARNING: ALLOWED_EMAIL_DOMAIN for production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// mode the identity provider audience and the organization email domain must
// be set so that sign-in is actually enforced.
func (c *Config) Validate() error {
	if c.IsDev() {
		return nil
	}
	if c.AuthAudience == "" {
		return fmt.Errorf(
			"AUTH_AUDIENCE must be set when ENV=%q. "+
				"Refusing to start without authentication configuration", c.Env)
	}
	if c.AllowedEmailDomain == "" {
		return fmt.Errorf("ALLOWED_EMAIL_DOMAIN must be set when ENV=%q", c.Env)
	}
	if strings.HasPrefix(c.AllowedEmailDomain, "@") {
		return fmt.Errorf("ALLOWED_EMAIL_DOMAIN must not include the leading @, got %q", c.AllowedEmailDomain)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	return nil
}
