package email

import (
	"Petly/config"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Sender delivers HTML mail through an SMTP relay.
type Sender struct {
	conf *config.SmtpConfig
}

func NewSender(conf *config.SmtpConfig) *Sender {
	return &Sender{conf: conf}
}

// BuildMessage renders the RFC 5322 message with an HTML body.
func BuildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if s.conf == nil || s.conf.Host == "" {
		return fmt.Errorf("smtp not configured")
	}
	addr := net.JoinHostPort(s.conf.Host, strconv.Itoa(s.conf.Port))
	tlsConfig := &tls.Config{ServerName: s.conf.Host}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	var (
		conn net.Conn
		err  error
	)
	if s.conf.ImplicitTLS {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.conf.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if !s.conf.ImplicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if s.conf.Username != "" {
		auth := smtp.PlainAuth("", s.conf.Username, s.conf.Password, s.conf.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	from := s.conf.From
	if from == "" {
		from = s.conf.Username
	}
	if err := client.Mail(envelope(from)); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(BuildMessage(from, to, subject, body)); err != nil {
		return err
	}
	return w.Close()
}

// envelope extracts the bare address from "Name <addr>".
func envelope(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return from
}
