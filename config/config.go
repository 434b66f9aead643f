package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Session    SessionConfig
	Storage    StorageConfig
	Classifier ClassifierConfig
	Events     EventsConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Driver   string // sqlite or postgres
	Path     string // sqlite database file
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Store      string // leveldb or redis
	Path       string // leveldb directory
	Secret     string
	Expiry     time.Duration
	CookieName string
}

type StorageConfig struct {
	Driver    string // local or s3
	UploadDir string
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
}

type ClassifierConfig struct {
	URL       string
	Timeout   time.Duration
	Threshold float64
}

type EventsConfig struct {
	Driver    string // none, kafka or sqs
	Brokers   []string
	Topic     string
	QueueName string
}

var keys = []string{
	"APP_PORT", "APP_ENV",
	"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"SESSION_STORE", "SESSION_PATH", "SESSION_SECRET", "SESSION_EXPIRY", "SESSION_COOKIE",
	"STORAGE_DRIVER", "UPLOAD_DIR", "S3_BUCKET", "S3_PREFIX", "AWS_REGION", "S3_ENDPOINT",
	"CLASSIFIER_URL", "CLASSIFIER_TIMEOUT", "CLASSIFIER_THRESHOLD",
	"EVENTS_DRIVER", "KAFKA_BROKERS", "EVENTS_TOPIC", "SQS_QUEUE",
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "chest_ray.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_STORE", "leveldb")
	v.SetDefault("SESSION_PATH", "data/sessions")
	v.SetDefault("SESSION_EXPIRY", "12h")
	v.SetDefault("SESSION_COOKIE", "chest_ray_session")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "data/uploads")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("CLASSIFIER_TIMEOUT", "30s")
	v.SetDefault("CLASSIFIER_THRESHOLD", 0.6)
	v.SetDefault("EVENTS_DRIVER", "none")
	v.SetDefault("EVENTS_TOPIC", "chest-ray-events")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// The .env file is optional; the environment alone is enough.
	_ = v.ReadInConfig()

	sessionExpiry, err := time.ParseDuration(v.GetString("SESSION_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRY: %w", err)
	}

	classifierTimeout, err := time.ParseDuration(v.GetString("CLASSIFIER_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLASSIFIER_TIMEOUT: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(v.GetString("SESSION_STORE")),
			Path:       v.GetString("SESSION_PATH"),
			Secret:     v.GetString("SESSION_SECRET"),
			Expiry:     sessionExpiry,
			CookieName: v.GetString("SESSION_COOKIE"),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(v.GetString("STORAGE_DRIVER")),
			UploadDir: v.GetString("UPLOAD_DIR"),
			Bucket:    v.GetString("S3_BUCKET"),
			Prefix:    v.GetString("S3_PREFIX"),
			Region:    v.GetString("AWS_REGION"),
			Endpoint:  v.GetString("S3_ENDPOINT"),
		},
		Classifier: ClassifierConfig{
			URL:       v.GetString("CLASSIFIER_URL"),
			Timeout:   classifierTimeout,
			Threshold: v.GetFloat64("CLASSIFIER_THRESHOLD"),
		},
		Events: EventsConfig{
			Driver:    strings.ToLower(v.GetString("EVENTS_DRIVER")),
			Brokers:   splitList(v.GetString("KAFKA_BROKERS")),
			Topic:     v.GetString("EVENTS_TOPIC"),
			QueueName: v.GetString("SQS_QUEUE"),
		},
	}

	if config.Session.Secret == "" {
		if !config.IsDev() {
			return nil, fmt.Errorf("SESSION_SECRET is required outside development")
		}
		config.Session.Secret = "development-secret"
	}

	return config, nil
}

func (c *Config) IsDev() bool {
	return c.App.Env == "development"
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
