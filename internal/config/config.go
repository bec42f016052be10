package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/carousell/ct-go/pkg/logger/log"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Paystack PaystackConfig `envPrefix:"PAYSTACK_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Scraper  ScraperConfig  `envPrefix:"SCRAPER_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"nee_commerce"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type PaystackConfig struct {
	SecretKey   string `env:"SECRET_KEY"`
	BaseURL     string `env:"BASE_URL" envDefault:"https://api.paystack.co"`
	CallbackURL string `env:"CALLBACK_URL"`
}

type KafkaConfig struct {
	// Brokers empty means order events are disabled.
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"nee-commerce.orders"`
}

type ScraperConfig struct {
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
	FallbackImage string        `env:"FALLBACK_IMAGE" envDefault:"https://placehold.co/400x400?text=Product"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
