package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/citizenportal/internal/flagx"
	"github.com/dmitrijs2005/citizenportal/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so both "1m" and integer nanoseconds are accepted.
type JsonConfig struct {
	AppName                      string         `json:"app_name"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	OpsAddr                      string         `json:"ops_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	LogLevel                     string         `json:"log_level"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	AdminEmails                  []string       `json:"admin_emails"`
	AccessMode                   string         `json:"access_mode"`
	LoginRatePerSecond           float64        `json:"login_rate_per_second"`
	LoginBurst                   int            `json:"login_burst"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	NotificationSender           string         `json:"notification_sender"`
	NotificationMaxAttempts      int            `json:"notification_max_attempts"`
	SMTPHost                     string         `json:"smtp_host"`
	SMTPPort                     int            `json:"smtp_port"`
	SMTPUser                     string         `json:"smtp_user"`
	SMTPPassword                 string         `json:"smtp_password"`
	SMTPFrom                     string         `json:"smtp_from"`
	CloseVotesSchedule           string         `json:"close_votes_schedule"`
	RetryNotificationsSchedule   string         `json:"retry_notifications_schedule"`
	TokenCleanupSchedule         string         `json:"token_cleanup_schedule"`
	Pages                        []string       `json:"pages"`
	MainPage                     string         `json:"main_page"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current value. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.AppName, c.AppName)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.OpsAddr, c.OpsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration.Duration)
	if c.AdminEmails != nil {
		config.AdminEmails = c.AdminEmails
	}
	setString(&config.AccessMode, c.AccessMode)
	if c.LoginRatePerSecond != 0 {
		config.LoginRatePerSecond = c.LoginRatePerSecond
	}
	if c.LoginBurst != 0 {
		config.LoginBurst = c.LoginBurst
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.NotificationSender, c.NotificationSender)
	if c.NotificationMaxAttempts != 0 {
		config.NotificationMaxAttempts = c.NotificationMaxAttempts
	}
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
	setString(&config.CloseVotesSchedule, c.CloseVotesSchedule)
	setString(&config.RetryNotificationsSchedule, c.RetryNotificationsSchedule)
	setString(&config.TokenCleanupSchedule, c.TokenCleanupSchedule)
	if c.Pages != nil {
		config.Pages = c.Pages
	}
	setString(&config.MainPage, c.MainPage)
}
