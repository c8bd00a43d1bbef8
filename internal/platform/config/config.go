package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration. Everything comes from the
// environment so main stays lean and deployment stays twelve-factor.
type Config struct {
	Addr string

	// DevMode replaces the transactional email API with a console mailer and
	// the Kafka audit sink with a log sink.
	DevMode bool

	// Transactional email API credentials (the only three secrets the
	// dispatch call consumes).
	EmailServiceID  string
	EmailTemplateID string
	EmailPublicKey  string
	EmailEndpoint   string

	// PlanBaseURL is the origin serving the static floor-plan PDFs.
	PlanBaseURL string

	// RedisURL selects the shared verification-code store. Empty means the
	// process-local in-memory store.
	RedisURL string

	// KafkaBrokers feed the signature audit trail. Empty disables Kafka.
	KafkaBrokers []string

	JWTSigningKey string

	ShutdownTimeout time.Duration
}

// CodeTTL is how long an emailed verification code stays valid.
var CodeTTL = 10 * time.Minute

// FromEnv builds a Config from environment variables with dev defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("PROPALE_ADDR", ":8080"),
		DevMode:         os.Getenv("PROPALE_DEV_MODE") == "true",
		EmailServiceID:  os.Getenv("EMAIL_SERVICE_ID"),
		EmailTemplateID: os.Getenv("EMAIL_TEMPLATE_ID"),
		EmailPublicKey:  os.Getenv("EMAIL_PUBLIC_KEY"),
		EmailEndpoint:   envOr("EMAIL_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		PlanBaseURL:     envOr("PLAN_BASE_URL", "http://localhost:8080/static"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		ShutdownTimeout: 10 * time.Second,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
