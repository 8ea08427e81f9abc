package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	PriceFeed PriceFeedConfig
	Explorer  ExplorerConfig
	Email     EmailConfig
	Monitor   MonitorConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// PriceFeedConfig holds the price API endpoint
type PriceFeedConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ExplorerConfig holds block explorer endpoints and keys
type ExplorerConfig struct {
	BlockCypherURL string
	EtherscanURL   string
	EtherscanKey   string
	TronGridURL    string
	Timeout        time.Duration
}

// EmailConfig holds the transactional email relay settings
type EmailConfig struct {
	RelayURL  string
	ServiceID string
	PublicKey string
	FromName  string
}

// MonitorConfig holds the deposit monitor settings
type MonitorConfig struct {
	Interval   time.Duration
	SweepLimit int
	AutoStart  bool
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "valora"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		PriceFeed: PriceFeedConfig{
			BaseURL: getEnv("PRICE_API_URL", "https://api.coingecko.com/api/v3"),
			Timeout: getEnvAsDuration("PRICE_API_TIMEOUT", 5*time.Second),
		},
		Explorer: ExplorerConfig{
			BlockCypherURL: getEnv("BLOCKCYPHER_API_URL", "https://api.blockcypher.com/v1"),
			EtherscanURL:   getEnv("ETHERSCAN_API_URL", "https://api.etherscan.io/api"),
			EtherscanKey:   getEnv("ETHERSCAN_API_KEY", ""),
			TronGridURL:    getEnv("TRONGRID_API_URL", "https://api.trongrid.io"),
			Timeout:        getEnvAsDuration("EXPLORER_API_TIMEOUT", 10*time.Second),
		},
		Email: EmailConfig{
			RelayURL:  getEnv("EMAIL_RELAY_URL", "https://api.emailjs.com/api/v1.0/email/send"),
			ServiceID: getEnv("EMAIL_SERVICE_ID", ""),
			PublicKey: getEnv("EMAIL_PUBLIC_KEY", ""),
			FromName:  getEnv("EMAIL_FROM_NAME", "Valora Capital"),
		},
		Monitor: MonitorConfig{
			Interval:   getEnvAsDuration("MONITOR_INTERVAL", 5*time.Minute),
			SweepLimit: getEnvAsInt("MONITOR_SWEEP_LIMIT", 50),
			AutoStart:  getEnvAsBool("MONITOR_AUTOSTART", true),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
