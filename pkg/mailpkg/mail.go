// Package mailpkg provides the verification email sender.
package mailpkg

import (
	"fmt"
	"net/smtp"

	"github.com/finwallet/fintech-api/pkg/configpkg"
)

// Sender sends transactional emails.
type Sender interface {
	SendVerification(email, code string) error
}

// SMTPSender sends emails through a plain SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender returns an SMTPSender configured from the app config.
func NewSMTPSender(config configpkg.Config) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", config.SMTPHost, config.SMTPPort),
		auth: smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, config.SMTPHost),
		from: config.EmailFrom,
	}
}

// SendVerification sends the email verification code to the given address.
func (s *SMTPSender) SendVerification(email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Email Verification\r\n\r\n"+
			"Your verification code is %s.\r\n",
		s.from, email, code,
	)

	return smtp.SendMail(s.addr, s.auth, s.from, []string{email}, []byte(msg))
}
