package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	AdminAPIKey         string `env:"ADMIN_API_KEY,required,notEmpty"`
	FirebaseProjectID   string `env:"FIREBASE_PROJECT_ID"`
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"vercel.app"`

	DefaultGamblingLookup string        `env:"DEFAULT_GAMBLING_LOOKUP" envDefault:"default"`
	WebhookTimeout        time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`

	// Event bus mirror is disabled when NATSURL is empty.
	NATSURL    string `env:"NATS_URL"`
	NATSStream string `env:"NATS_STREAM" envDefault:"PODCAST_EVENTS"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
