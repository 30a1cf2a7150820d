package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/alexkarev/taskboard/internal/flagx"
	"github.com/alexkarev/taskboard/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SessionSecretKey      string         `json:"session_secret_key"`
	VerificationSecretKey string         `json:"verification_secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	TokenRefreshWindow    timex.Duration `json:"token_refresh_window"`
	SMTPHost              string         `json:"smtp_host"`
	SMTPUser              string         `json:"smtp_user"`
	SMTPPassword          string         `json:"smtp_password"`
	MailFromAddress       string         `json:"mail_from_address"`
	BaseURL               string         `json:"base_url"`
	CORSAllowedOrigin     string         `json:"cors_allowed_origin"`
	EmailDisabled         bool           `json:"email_disabled"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults, environment
// variables, and command-line flags as part of the full configuration
// process.
func parseJson(config *Config) {

	// try flags
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

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionSecretKey = c.SessionSecretKey
	config.VerificationSecretKey = c.VerificationSecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.TokenRefreshWindow = time.Duration(c.TokenRefreshWindow.Duration)
	config.SMTPHost = c.SMTPHost
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.MailFromAddress = c.MailFromAddress
	config.BaseURL = c.BaseURL
	config.CORSAllowedOrigin = c.CORSAllowedOrigin
	config.EmailDisabled = c.EmailDisabled
}
