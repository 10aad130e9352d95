package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type PayPalConfig struct {
	APIURL    string `yaml:"apiUrl"`
	ClientID  string `yaml:"clientId"`
	AppSecret string `yaml:"appSecret"`
}

type SMTPConfig struct {
	Address      string `yaml:"address"`
	Host         string `yaml:"host"`
	From         string `yaml:"from"`
	Password     string `yaml:"password"`
	TemplatesDir string `yaml:"templatesDir"`
}

type Config struct {
	Port           string         `yaml:"port"`
	Env            string         `yaml:"env"`
	LogLevel       string         `yaml:"logLevel"`
	JWTSecret      string         `yaml:"jwtSecret"`
	SessionMaxAge  time.Duration  `yaml:"sessionMaxAge"`
	SecureCookies  bool           `yaml:"secureCookies"`
	AllowedOrigins []string       `yaml:"allowedOrigins"`
	Database       DatabaseConfig `yaml:"database"`
	RedisAddr      string         `yaml:"redisAddr"`
	RabbitMQURL    string         `yaml:"rabbitmqUrl"`
	ImageBucket    string         `yaml:"imageBucket"`
	PayPal         PayPalConfig   `yaml:"paypal"`
	SMTP           SMTPConfig     `yaml:"smtp"`
	ServerURL      string         `yaml:"serverUrl"`
}

func defaultConfig() Config {
	return Config{
		Port:           "8080",
		Env:            "development",
		LogLevel:       "info",
		SessionMaxAge:  24 * time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "prostore.db",
		},
		PayPal: PayPalConfig{
			APIURL: "https://api-m.sandbox.paypal.com",
		},
		SMTP: SMTPConfig{
			TemplatesDir: "templates",
		},
		ServerURL: "http://localhost:3000",
	}
}

// LoadEnv reads .env (if present), then the optional YAML file named by
// CONFIG_FILE, then environment overrides.
func LoadEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := defaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnvOverrides()

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Port, "PORT")
	setString(&c.Env, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.ImageBucket, "IMAGE_BUCKET")
	setString(&c.PayPal.APIURL, "PAYPAL_API_URL")
	setString(&c.PayPal.ClientID, "PAYPAL_CLIENT_ID")
	setString(&c.PayPal.AppSecret, "PAYPAL_APP_SECRET")
	setString(&c.SMTP.Address, "SMTP_ADDRESS")
	setString(&c.SMTP.Host, "FROM_EMAIL_SMTP")
	setString(&c.SMTP.From, "FROM_EMAIL")
	setString(&c.SMTP.Password, "FROM_EMAIL_PASSWORD")
	setString(&c.ServerURL, "SERVER_URL")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SessionMaxAge = d
		}
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SecureCookies = b
		}
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
