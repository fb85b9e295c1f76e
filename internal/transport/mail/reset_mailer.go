package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// ResetLinkMailer delivers password-reset links over SMTP. It is the
// out-of-band notifier; the API response never carries the token.
type ResetLinkMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	baseURL  string
}

func NewResetLinkMailer(host, port, username, password, from, baseURL string) *ResetLinkMailer {
	return &ResetLinkMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

func (m *ResetLinkMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	resetURL := link
	if m.baseURL != "" {
		resetURL = m.baseURL + "/" + strings.TrimLeft(link, "/")
	}

	subject := "Reset your Donasi password"
	body := fmt.Sprintf("Open the following link to reset your password: %s\n\nIf you did not request this, ignore this email.", resetURL)

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
