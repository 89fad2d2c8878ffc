package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port          int    `yaml:"port"`
		AllowedOrigin string `yaml:"allowed_origin"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		TokenTTLH int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	S3       S3Config       `yaml:"s3"`
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Seed     struct {
		SuperAdminEmail    string `yaml:"superadmin_email"`
		SuperAdminPassword string `yaml:"superadmin_password"`
	} `yaml:"seed"`
}

// LoadConfig reads config/config.yaml when present, then lets environment
// variables (including a local .env) override the sensitive fields so secrets
// stay out of the file.
func LoadConfig() *Config {
	_ = godotenv.Load()

	var cfg Config
	if f, err := os.Open("config/config.yaml"); err == nil {
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			f.Close()
			panic("Failed to parse config.yaml: " + err.Error())
		}
		f.Close()
	}

	overrideString(&cfg.Database.DSN, "DATABASE_URL")
	overrideString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.S3.Bucket, "AWS_S3_BUCKET")
	overrideString(&cfg.S3.Region, "AWS_REGION")
	overrideString(&cfg.S3.AccessKey, "AWS_ACCESS_KEY_ID")
	overrideString(&cfg.S3.SecretKey, "AWS_SECRET_ACCESS_KEY")
	overrideString(&cfg.Email.SMTPHost, "SMTP_HOST")
	overrideInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	overrideString(&cfg.Email.SMTPUser, "SMTP_USER")
	overrideString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	overrideString(&cfg.Email.FromEmail, "SMTP_FROM")
	overrideString(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	overrideString(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	overrideString(&cfg.Server.AllowedOrigin, "ALLOWED_ORIGIN")
	overrideInt(&cfg.Server.Port, "PORT")
	overrideString(&cfg.Seed.SuperAdminEmail, "SUPERADMIN_EMAIL")
	overrideString(&cfg.Seed.SuperAdminPassword, "SUPERADMIN_PASSWORD")

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.TokenTTLH == 0 {
		cfg.Auth.TokenTTLH = 24
	}
	if cfg.Auth.JWTSecret == "" {
		panic("jwt_secret is required (config.yaml auth.jwt_secret or JWT_SECRET)")
	}
	if cfg.Database.DSN == "" {
		panic("database url is required (config.yaml database.url or DATABASE_URL)")
	}
	return &cfg
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
