// Package mail provides the outbound SMTP client used for verification
// emails, with a disabled mode for test runs and missing credentials.
package mail

import (
	"crypto/tls"
	"fmt"
	netmail "net/mail"
	"net/url"

	"github.com/dajohi/goemail"
)

// Message is a single outbound email. When HTML is set it is used as the
// body with an HTML content type; otherwise Text is sent as plain text.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends messages from a preset from-address.
type Mailer interface {
	// IsEnabled reports whether outbound email is configured.
	IsEnabled() bool

	// Send delivers the message. Calling Send on a disabled mailer is a
	// no-op returning nil.
	Send(msg *Message) error
}

// Client is an SMTP-backed Mailer.
type Client struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool
}

// NewClient returns a new SMTP client. Email is considered disabled if any
// of the required credentials are missing or the disabled policy flag is
// set; a disabled client is still valid and swallows Send calls.
func NewClient(host, user, password, fromAddress string, disabled bool) (*Client, error) {
	if disabled || host == "" || user == "" || password == "" {
		return &Client{disabled: true}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", user, password, host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	a, err := netmail.ParseAddress(fromAddress)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	smtp, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, err
	}

	return &Client{
		smtp:        smtp,
		mailName:    a.Name,
		mailAddress: a.Address,
	}, nil
}

// IsEnabled reports whether the mail server is configured.
func (c *Client) IsEnabled() bool {
	return !c.disabled
}

// Send delivers msg through the SMTP server.
func (c *Client) Send(m *Message) error {
	if c.disabled {
		return nil
	}

	var msg *goemail.Message
	if m.HTML != "" {
		msg = goemail.NewHTMLMessage(c.mailAddress, m.Subject, m.HTML)
	} else {
		msg = goemail.NewMessage(c.mailAddress, m.Subject, m.Text)
	}
	msg.SetName(c.mailName)
	msg.AddTo(m.To)

	return c.smtp.Send(msg)
}
