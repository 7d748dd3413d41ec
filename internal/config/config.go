package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8000" validate:"required,numeric"`
	Environment string `env:"ENVIRONMENT" env-default:"development" validate:"oneof=development production test"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	StaticDir   string `env:"STATIC_DIR" env-default:"./frontend/build"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-default:"*" validate:"min=1"`

	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s" validate:"gt=0"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s" validate:"gt=0"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s" validate:"gt=0"`
}

type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	User           string        `env:"MONGO_USER"`
	Password       string        `env:"MONGO_PASSWORD"`
	Host           string        `env:"MONGO_HOST" env-default:"localhost:27017"`
	Database       string        `env:"MONGO_DB" env-default:"easyevent" validate:"required"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

type AuthConfig struct {
	Secret          string            `env:"JWT_SECRET" validate:"required,min=16"`
	KeyID           string            `env:"JWT_KEY_ID" env-default:"primary" validate:"required"`
	PreviousSecrets map[string]string `env:"JWT_PREVIOUS_SECRETS"`
	Issuer          string            `env:"JWT_ISSUER" env-default:"easyevent" validate:"required"`
	TokenTTL        time.Duration     `env:"TOKEN_TTL" env-default:"1h" validate:"min=1h"`
	BcryptCost      int               `env:"BCRYPT_COST" env-default:"12" validate:"min=4,max=31"`
	StrongPasswords bool              `env:"STRONG_PASSWORDS" env-default:"false"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Auth.TokenTTL%time.Hour != 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a whole number of hours, got %s", cfg.Auth.TokenTTL)
	}
	for kid, secret := range cfg.Auth.PreviousSecrets {
		if kid == cfg.Auth.KeyID {
			return nil, fmt.Errorf("JWT_PREVIOUS_SECRETS reuses the current key id %q", kid)
		}
		if len(secret) < 16 {
			return nil, fmt.Errorf("JWT_PREVIOUS_SECRETS entry %q is shorter than 16 bytes", kid)
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// ConnectionURI returns MONGODB_URI with its <password> placeholder filled,
// or builds one from the individual MONGO_* settings.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return strings.Replace(m.URI, "<password>", url.QueryEscape(m.Password), 1)
	}

	if m.User == "" {
		return fmt.Sprintf("mongodb://%s/%s", m.Host, m.Database)
	}

	creds := url.UserPassword(m.User, m.Password).String()
	if _, _, err := net.SplitHostPort(m.Host); err == nil {
		return fmt.Sprintf("mongodb://%s@%s/%s", creds, m.Host, m.Database)
	}
	// a bare cluster hostname means an Atlas SRV record
	return fmt.Sprintf("mongodb+srv://%s@%s/%s?retryWrites=true&w=majority", creds, m.Host, m.Database)
}
