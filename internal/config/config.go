package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevJWTSecret signs tokens outside production when no secret is configured
const DevJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port               string   `validate:"required,numeric"`
	Env                string   `validate:"required,oneof=development test staging production"`
	LogLevel           string   `validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `validate:"required,min=1,dive,required"`
}

// DatabaseConfig selects the credential store. An empty URL keeps users
// in memory.
type DatabaseConfig struct {
	URL string
}

// RedisConfig selects the cart store. An empty Addr keeps carts in memory.
type RedisConfig struct {
	Addr     string `validate:"omitempty,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
	CartTTL  int `validate:"gte=0"` // in hours, 0 keeps carts forever
}

type JWTConfig struct {
	Secret       string `validate:"required"`
	AccessExpiry int    // in minutes, <= 0 disables expiry
	DevSecret    bool   // Secret fell back to DevJWTSecret
}

type AuthConfig struct {
	BcryptCost int `validate:"gte=4,lte=31"`
}

// TokenTTL returns the session token lifetime, zero when tokens never expire
func (c JWTConfig) TokenTTL() time.Duration {
	if c.AccessExpiry <= 0 {
		return 0
	}
	return time.Duration(c.AccessExpiry) * time.Minute
}

// TTL returns the cart key expiry
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// IsProduction reports whether the server runs in production mode
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment. Values from envFiles are
// applied first without overriding variables that are already set; with no
// files given an optional .env in the working directory is used.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8001")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CART_TTL", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY", 1440)
	v.SetDefault("BCRYPT_COST", 10)

	// Names used by earlier deployments
	_ = v.BindEnv("DATABASE_URL", "DATABASE_URL", "MONGO_URL")
	_ = v.BindEnv("JWT_SECRET", "JWT_SECRET", "SECRET_KEY")

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			Env:                strings.ToLower(v.GetString("SERVER_ENV")),
			LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CartTTL:  v.GetInt("REDIS_CART_TTL"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: v.GetInt("JWT_ACCESS_EXPIRY"),
		},
		Auth: AuthConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.Server.IsProduction() {
			return nil, errors.New("config: JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = DevJWTSecret
		cfg.JWT.DevSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid values: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func loadEnvFiles(files []string) error {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("config: failed to load env files: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to load .env: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
