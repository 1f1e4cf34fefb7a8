// Package notify delivers plain-text emails to citizens.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/logging"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

var errHeaderInjection = errors.New("line break in email header")

func (e Email) validate() error {
	if e.To == "" {
		return errors.New("email has no recipient")
	}
	if strings.ContainsAny(e.To, "\r\n") || strings.ContainsAny(e.Subject, "\r\n") {
		return errHeaderInjection
	}
	return nil
}

// LogSender writes emails to the log instead of sending them. It is the
// default in development.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log.With("module", "notify")}
}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	if err := email.validate(); err != nil {
		return err
	}
	s.log.Info(ctx, "email", "to", email.To, "subject", email.Subject, "body", email.Body)
	return nil
}

// sendMail is a seam over smtp.SendMail.
var sendMail = smtp.SendMail

// SMTPSender sends through an SMTP relay with PLAIN auth when a user is set.
type SMTPSender struct {
	addr string
	host string
	from string
	auth smtp.Auth
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	s := &SMTPSender{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		from: from,
	}
	if user != "" {
		s.auth = smtp.PlainAuth("", user, password, host)
	}
	return s
}

func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	if err := email.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := sendMail(s.addr, s.auth, s.from, []string{email.To}, s.message(email)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}
	return nil
}

func (s *SMTPSender) message(email Email) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.from + "\r\n")
	b.WriteString("To: " + email.To + "\r\n")
	b.WriteString("Subject: " + email.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(email.Body, "\n", "\r\n"))
	return []byte(b.String())
}
