package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fjod/swiftrail/internal/publisher"
)

type Config struct {
	HTTPPort           string        `yaml:"http_port"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	StoreTimeout       time.Duration `yaml:"store_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size"`
	LogLevel           string        `yaml:"log_level"`
	AccessLog          bool          `yaml:"access_log"`

	MongoURI    string `yaml:"mongo_uri"`
	MongoDBName string `yaml:"mongo_db_name"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	// Order events are off when no broker is configured.
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`

	// Confirmations are only logged when SMTPHost is empty.
	SMTPHost     string        `yaml:"smtp_host"`
	SMTPPort     int           `yaml:"smtp_port"`
	SMTPUsername string        `yaml:"smtp_username"`
	SMTPPassword string        `yaml:"smtp_password"`
	SMTPFrom     string        `yaml:"smtp_from"`
	SMTPSSL      bool          `yaml:"smtp_ssl"`
	SMTPTimeout  time.Duration `yaml:"smtp_timeout"`
}

func defaultConfig() *Config {
	return &Config{
		HTTPPort:           "8080",
		RequestTimeout:     30 * time.Second,
		StoreTimeout:       5 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		LogLevel:           "info",
		AccessLog:          true,
		MongoURI:           "mongodb://localhost:27017",
		MongoDBName:        "swiftrail",
		RedisAddr:          "localhost:6379",
		KafkaTopic:         publisher.DefaultTopic,
		SMTPPort:           587,
		SMTPFrom:           "SwiftRail <no-reply@swiftrail.local>",
		SMTPTimeout:        15 * time.Second,
	}
}

// loadConfig applies defaults, then the YAML file named by CONFIG_FILE, then
// environment variables.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %s", ext)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.HTTPPort = getEnv("HTTP_PORT", c.HTTPPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDBName = getEnv("MONGO_DB_NAME", c.MongoDBName)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.KafkaTopic = getEnv("KAFKA_TOPIC", c.KafkaTopic)
	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPUsername = getEnv("SMTP_USERNAME", c.SMTPUsername)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)
	c.SMTPFrom = getEnv("SMTP_FROM", c.SMTPFrom)

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		c.KafkaBrokers = splitList(brokers)
	}

	var err error
	if c.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	if c.StoreTimeout, err = getEnvDuration("STORE_TIMEOUT", c.StoreTimeout); err != nil {
		return err
	}
	if c.SMTPTimeout, err = getEnvDuration("SMTP_TIMEOUT", c.SMTPTimeout); err != nil {
		return err
	}
	if v := getEnv("SMTP_PORT", ""); v != "" {
		if c.SMTPPort, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
	}
	if v := getEnv("SMTP_SSL", ""); v != "" {
		if c.SMTPSSL, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid SMTP_SSL %q: %w", v, err)
		}
	}
	if v := getEnv("ACCESS_LOG", ""); v != "" {
		if c.AccessLog, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid ACCESS_LOG %q: %w", v, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
