package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors Config for PORTAL_* environment variables. Unset
// variables leave the field zero and the layer below wins.
type EnvConfig struct {
	AppName                      string        `env:"PORTAL_APP_NAME"`
	EndpointAddrGRPC             string        `env:"PORTAL_GRPC_ADDR"`
	OpsAddr                      string        `env:"PORTAL_OPS_ADDR"`
	DatabaseDSN                  string        `env:"PORTAL_DATABASE_DSN"`
	LogLevel                     string        `env:"PORTAL_LOG_LEVEL"`
	SecretKey                    string        `env:"PORTAL_SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"PORTAL_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"PORTAL_REFRESH_TOKEN_TTL"`
	AdminEmails                  string        `env:"PORTAL_ADMIN_EMAILS"`
	AccessMode                   string        `env:"PORTAL_ACCESS_MODE"`
	S3RootUser                   string        `env:"PORTAL_S3_USER"`
	S3RootPassword               string        `env:"PORTAL_S3_PASSWORD"`
	S3Bucket                     string        `env:"PORTAL_S3_BUCKET"`
	S3Region                     string        `env:"PORTAL_S3_REGION"`
	S3BaseEndpoint               string        `env:"PORTAL_S3_ENDPOINT"`
	NotificationSender           string        `env:"PORTAL_NOTIFICATION_SENDER"`
	SMTPHost                     string        `env:"PORTAL_SMTP_HOST"`
	SMTPPort                     int           `env:"PORTAL_SMTP_PORT"`
	SMTPUser                     string        `env:"PORTAL_SMTP_USER"`
	SMTPPassword                 string        `env:"PORTAL_SMTP_PASSWORD"`
	SMTPFrom                     string        `env:"PORTAL_SMTP_FROM"`
}

// loadDotenv is a seam over godotenv.Load.
var loadDotenv = godotenv.Load

// parseEnv loads the dotenv file named by -E/-envfile (".env" when absent;
// a missing default file is not an error) and overlays PORTAL_* variables.
// Malformed values panic, like the other layers.
func parseEnv(config *Config) {
	file := flagx.EnvFileFlags()
	explicit := file != ""
	if !explicit {
		file = ".env"
	}
	if err := loadDotenv(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	c := &EnvConfig{}
	if err := envdecode.Decode(c); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}
	c.apply(config)
}

func (c *EnvConfig) apply(config *Config) {
	setString(&config.AppName, c.AppName)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.OpsAddr, c.OpsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	if c.AdminEmails != "" {
		config.AdminEmails = splitList(c.AdminEmails)
	}
	setString(&config.AccessMode, c.AccessMode)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.NotificationSender, c.NotificationSender)
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
