package config

import (
	"flag"
	"os"
	"time"

	"github.com/alexkarev/taskboard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret
//	-v string   email verification token HMAC secret
//	-t int      token validity, minutes
//	-w int      sliding refresh window, minutes
//	-m string   SMTP host:port
//	-f string   mail from address
//	-b string   public base URL for verification links
//	-o string   allowed CORS origin
//	-n          disable outbound email
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other packages' flags.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-v", "-t", "-w", "-m", "-f", "-b", "-o", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionSecretKey, "s", config.SessionSecretKey, "session token secret key")
	fs.StringVar(&config.VerificationSecretKey, "v", config.VerificationSecretKey, "verification token secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")
	tokenRefreshWindow := fs.Int("w", int(config.TokenRefreshWindow.Minutes()), "token_refresh_window (in minutes)")

	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host:port")
	fs.StringVar(&config.MailFromAddress, "f", config.MailFromAddress, "mail from address")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL")
	fs.StringVar(&config.CORSAllowedOrigin, "o", config.CORSAllowedOrigin, "allowed CORS origin")
	fs.BoolVar(&config.EmailDisabled, "n", config.EmailDisabled, "disable outbound email")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
	config.TokenRefreshWindow = time.Duration(*tokenRefreshWindow) * time.Minute
}
