package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"cloudmart"`
	ServerPort  int    `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// DefaultUser owns every cart and order; there is no login.
	DefaultUser string `envconfig:"DEFAULT_USER" default:"demo"`

	DocStoreEndpoint      string `envconfig:"DOCSTORE_ENDPOINT"`
	DocStoreAccessKey     string `envconfig:"DOCSTORE_ACCESS_KEY"`
	DocStoreSecretKey     string `envconfig:"DOCSTORE_SECRET_KEY"`
	DocStoreRegion        string `envconfig:"DOCSTORE_REGION" default:"us-east-1"`
	DocStoreProductsTable string `envconfig:"DOCSTORE_PRODUCTS_TABLE" default:"products"`
	DocStoreCartTable     string `envconfig:"DOCSTORE_CART_TABLE" default:"cart"`
	DocStoreOrdersTable   string `envconfig:"DOCSTORE_ORDERS_TABLE" default:"orders"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH"`
	SeedCatalog bool   `envconfig:"SEED_CATALOG" default:"true"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	LockTTL   time.Duration `envconfig:"LOCK_TTL" default:"5s"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("notice: .env not loaded: %v, using system environment variables", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DocStoreEnabled reports whether both the endpoint and the access key are set.
func (c Config) DocStoreEnabled() bool {
	return c.DocStoreEndpoint != "" && c.DocStoreAccessKey != ""
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
