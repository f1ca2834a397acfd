package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// ConfigFileEnv points at an optional YAML/JSON config file.
	ConfigFileEnv = "PERFUMERY_CONFIG"
)

type Config struct {
	AppEnv            string        `mapstructure:"app_env"`
	Port              string        `mapstructure:"port"`
	MongoURI          string        `mapstructure:"mongodb_uri"`
	MongoDatabase     string        `mapstructure:"mongodb_database"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	CustomTokenSecret string        `mapstructure:"custom_token_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisPassword     string        `mapstructure:"redis_password"`
	RedisDB           int           `mapstructure:"redis_db"`
	ChatPhone         string        `mapstructure:"chat_phone"`
	CORSOrigins       []string      `mapstructure:"cors_origins"`
	LogLevel          string        `mapstructure:"log_level"`
}

func (c Config) Development() bool {
	return c.AppEnv == EnvDevelopment
}

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file loaded")
	}
}

// New returns a viper instance reading the environment with the service defaults.
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app_env", EnvProduction)
	v.SetDefault("port", "3000")
	v.SetDefault("mongodb_database", "perfumery")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("redis_db", 0)
	v.SetDefault("cors_origins", []string{"*"})

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"mongodb_uri", "jwt_secret", "custom_token_secret", "redis_addr", "redis_password", "chat_phone", "log_level"} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads an optional config file then resolves and checks the settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file == "" {
		file = v.GetString(strings.ToLower(ConfigFileEnv))
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)

	if cfg.Development() {
		applyDevelopmentFallbacks(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDevelopmentFallbacks fills in local-only values. Never used outside development.
func applyDevelopmentFallbacks(cfg *Config) {
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-jwt-secret"
	}
	if cfg.CustomTokenSecret == "" {
		cfg.CustomTokenSecret = "dev-custom-token-secret"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
}

func (c Config) Validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if c.MongoDatabase == "" {
		missing = append(missing, "MONGODB_DATABASE")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}

// splitList accepts both a YAML list and a comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
