package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	CatalogAPIURL string        `envconfig:"CATALOG_API_URL" required:"true"`
	HTTPPort      string        `envconfig:"HTTP_PORT"       default:":8080"`
	ClientTimeout time.Duration `envconfig:"CLIENT_TIMEOUT"  default:"10s"`
	LogLevel      string        `envconfig:"LOG_LEVEL"       default:"info"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, LogLevel=%s", config.HTTPPort, config.LogLevel)
		if config.CatalogAPIURL != "" {
			logger.Info("Configuration loaded: CatalogAPIURL is set")
		} else {
			logger.Fatal("Configuration error: CATALOG_API_URL is not set")
		}
	})
	return &config
}

func GetConfig() *Config {
	if config.CatalogAPIURL == "" {
		log.Fatal("Configuration not loaded. Call LoadConfig first.")
	}
	return &config
}
