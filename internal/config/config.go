package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGIN" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	MongoURI            string        `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase       string        `envconfig:"MONGODB_DB" required:"true"`
	MongoConnectTimeout time.Duration `envconfig:"MONGODB_CONNECT_TIMEOUT" default:"10s"`

	RazorpayKeyID     string `envconfig:"RAZORPAY_KEY_ID" required:"true"`
	RazorpayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET" required:"true"`

	JWTSecret         string `envconfig:"JWT_SECRET" required:"true"`
	AdminEmail        string `envconfig:"ADMIN_EMAIL" required:"true"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	CheckoutRateLimit float64 `envconfig:"CHECKOUT_RATE_LIMIT" default:"1"`
	CheckoutRateBurst int     `envconfig:"CHECKOUT_RATE_BURST" default:"10"`

	SMTP SMTP
}

// SMTP settings are optional; mail is disabled when Server is empty.
type SMTP struct {
	Server   string `envconfig:"SMTP_SERVER"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASS"`
	FromAddr string `envconfig:"FROM_ADDR"`
	FromName string `envconfig:"FROM_NAME" default:"SunnyDayy"`
}

func (s SMTP) Enabled() bool {
	return s.Server != ""
}

// LoadEnv reads a .env file into the process environment when one exists.
func LoadEnv() error {
	return godotenv.Load()
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
