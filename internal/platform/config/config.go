package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEntryCreateCooldown = 60 * time.Second
	DefaultJournalPageSize     = 20
	DefaultLiveModel           = "models/gemini-2.0-flash-live-001"
	DefaultSessionCookieName   = "__session"
	defaultJWTSecret           = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	SessionCookieName string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string

	// Journals
	EntryCreateCooldown time.Duration
	JournalPageSize     int

	// Analysis engine and live coach
	EngineURL       string
	EngineTimeout   time.Duration
	GeminiAPIKey    string
	GeminiLiveModel string

	// Analytics
	PosthogAPIKey   string
	PosthogEndpoint string

	// Media uploads
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "5-M".
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "120h")
	viper.SetDefault("JWT_ISSUER", "burnout-journal")
	viper.SetDefault("SESSION_COOKIE_NAME", DefaultSessionCookieName)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("ENTRY_CREATE_COOLDOWN", DefaultEntryCreateCooldown.String())
	viper.SetDefault("JOURNAL_PAGE_SIZE", DefaultJournalPageSize)
	viper.SetDefault("ENGINE_URL", "")
	viper.SetDefault("ENGINE_TIMEOUT", "15s")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_LIVE_MODEL", DefaultLiveModel)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_BASE_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = defaultJWTSecret
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 120*time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "burnout-journal"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = DefaultSessionCookieName
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.EntryCreateCooldown = durationOrDefault("ENTRY_CREATE_COOLDOWN", DefaultEntryCreateCooldown)

	cfg.JournalPageSize = viper.GetInt("JOURNAL_PAGE_SIZE")
	if cfg.JournalPageSize <= 0 {
		log.Printf("Warning: Invalid JOURNAL_PAGE_SIZE (%d). Defaulting to %d.\n", cfg.JournalPageSize, DefaultJournalPageSize)
		cfg.JournalPageSize = DefaultJournalPageSize
	}

	cfg.EngineURL = strings.TrimRight(viper.GetString("ENGINE_URL"), "/")
	if cfg.EngineURL == "" {
		log.Println("Warning: ENGINE_URL not set. Falling back to the built-in lexical analyzer.")
	}
	cfg.EngineTimeout = durationOrDefault("ENGINE_TIMEOUT", 15*time.Second)

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	cfg.GeminiLiveModel = viper.GetString("GEMINI_LIVE_MODEL")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Live coach sessions will not function.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3BaseEndpoint = viper.GetString("S3_BASE_ENDPOINT")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	if cfg.S3Bucket == "" {
		log.Println("Warning: S3_BUCKET not set. Media uploads will not function.")
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

// durationOrDefault parses a duration setting, warning and falling back when it is invalid.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
