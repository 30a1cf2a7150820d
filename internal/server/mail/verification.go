package mail

import (
	"fmt"
	"net/url"
)

const verificationSubject = "Verify your email address"

// VerificationEmail builds the message sent after registration. The link
// embeds the signed verification token as a query parameter.
func VerificationEmail(to, token, baseURL string) *Message {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", baseURL, url.QueryEscape(token))

	html := fmt.Sprintf(`<p>Hi,</p>
<p>Thanks for signing up for Taskboard. Please confirm your email address by
clicking the link below:</p>
<p><a href="%s">Verify email address</a></p>
<p>The link is valid for 24 hours. If you did not create an account, you can
ignore this email.</p>`, link)

	text := fmt.Sprintf(`Hi,

Thanks for signing up for Taskboard. Please confirm your email address by
opening the link below:

%s

The link is valid for 24 hours. If you did not create an account, you can
ignore this email.
`, link)

	return &Message{
		To:      to,
		Subject: verificationSubject,
		HTML:    html,
		Text:    text,
	}
}
