package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HIREMATCH"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Notifier NotifierConfig `mapstructure:"notifier"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	AppName     string   `mapstructure:"app-name"`
	CORSOrigins []string `mapstructure:"cors-origins"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max-open-conns"`
	MaxIdleConns    int           `mapstructure:"max-idle-conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn-max-lifetime"`
}

// DSN renders the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Queue    string `mapstructure:"queue"`
	Channel  string `mapstructure:"channel"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver"` // s3 or memory
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	MaxUpload int64  `mapstructure:"max-upload-bytes"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt-secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token-ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type PipelineConfig struct {
	ForwardOnly bool `mapstructure:"forward-only"`
}

type NotifierConfig struct {
	Schedule string `mapstructure:"schedule"`
	// Breaker settings for the delivery channel
	MaxFailures  uint32        `mapstructure:"max-failures"`
	OpenTimeout  time.Duration `mapstructure:"open-timeout"`
	RunOnStartup bool          `mapstructure:"run-on-startup"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.app-name", "HireMatch")
	v.SetDefault("server.cors-origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "hirematch")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max-open-conns", 25)
	v.SetDefault("database.max-idle-conns", 5)
	v.SetDefault("database.conn-max-lifetime", 5*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.queue", "hirematch:notifications")
	v.SetDefault("redis.channel", "hirematch:events")

	v.SetDefault("storage.driver", "s3")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.prefix", "uploads")
	v.SetDefault("storage.max-upload-bytes", 10*1024*1024)

	v.SetDefault("auth.jwt-secret", "")
	v.SetDefault("auth.issuer", "hirematch")
	v.SetDefault("auth.token-ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("pipeline.forward-only", false)

	v.SetDefault("notifier.schedule", "@every 1h")
	v.SetDefault("notifier.max-failures", 5)
	v.SetDefault("notifier.open-timeout", 30*time.Second)
	v.SetDefault("notifier.run-on-startup", true)
}

// legacyEnv keeps the plain variable names used by existing deployments
var legacyEnv = map[string]string{
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASS",
	"database.name":     "DB_NAME",
	"redis.addr":        "REDIS_ADDR",
	"redis.password":    "REDIS_PASSWORD",
	"storage.region":    "AWS_REGION",
	"storage.bucket":    "S3_BUCKET",
	"auth.jwt-secret":   "JWT_SECRET",
}

// Load reads .env, the optional config file and the environment into a Config
func Load(v *viper.Viper, file string) (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.NewReplacer(".", "_", "-", "_").Replace(strings.ToUpper(key)), env); err != nil {
			return nil, errx.Wrap(err, "failed to bind env "+env, errx.TypeInternal)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errx.Wrap(err, "failed to read config file", errx.TypeValidation)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("hirematch")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errx.Wrap(err, "failed to read config file", errx.TypeValidation)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errx.Wrap(err, "failed to decode config", errx.TypeValidation)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	var problems []string
	if c.Database.Host == "" || c.Database.Name == "" {
		problems = append(problems, "database host and name are required")
	}
	if c.Storage.Driver != "s3" && c.Storage.Driver != "memory" {
		problems = append(problems, fmt.Sprintf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Storage.Driver == "s3" && c.Storage.Bucket == "" {
		problems = append(problems, "storage bucket is required for the s3 driver")
	}
	if c.Notifier.Schedule == "" {
		problems = append(problems, "notifier schedule is required")
	}
	if len(problems) > 0 {
		return errx.New("invalid configuration", errx.TypeValidation).
			WithDetail("problems", problems)
	}
	return nil
}

// ValidateServer adds the checks only the HTTP server needs
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return errx.New("invalid configuration", errx.TypeValidation).
			WithDetail("problems", []string{"auth jwt-secret is required"})
	}
	return nil
}
