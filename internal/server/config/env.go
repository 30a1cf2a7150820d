package config

import "os"

// parseEnv overlays Config fields from environment variables. Only variables
// that are set and non-empty override the current values, so defaults and
// JSON-provided settings survive an empty environment.
//
// Recognized variables:
//
//	ADDRESS                     HTTP bind address
//	DATABASE_DSN                PostgreSQL DSN
//	JWT_SECRET                  session token signing secret
//	EMAIL_VERIFICATION_SECRET   verification token signing secret
//	SMTP_HOST                   mail server host:port
//	EMAIL_USER / EMAIL_PASSWORD mail credentials
//	EMAIL_FROM                  from address
//	BASE_URL                    public base URL for verification links
//	CORS_ORIGIN                 allowed frontend origin
//	EMAIL_DISABLED              any non-empty value disables outbound email
func parseEnv(config *Config) {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfPresent(&config.EndpointAddr, "ADDRESS")
	setIfPresent(&config.DatabaseDSN, "DATABASE_DSN")
	setIfPresent(&config.SessionSecretKey, "JWT_SECRET")
	setIfPresent(&config.VerificationSecretKey, "EMAIL_VERIFICATION_SECRET")
	setIfPresent(&config.SMTPHost, "SMTP_HOST")
	setIfPresent(&config.SMTPUser, "EMAIL_USER")
	setIfPresent(&config.SMTPPassword, "EMAIL_PASSWORD")
	setIfPresent(&config.MailFromAddress, "EMAIL_FROM")
	setIfPresent(&config.BaseURL, "BASE_URL")
	setIfPresent(&config.CORSAllowedOrigin, "CORS_ORIGIN")

	if os.Getenv("EMAIL_DISABLED") != "" {
		config.EmailDisabled = true
	}
}
