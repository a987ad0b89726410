package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"vault_backend/internal/config"

	"go.uber.org/zap"
)

// Mailer - отправка писем с кодами подтверждения
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	FromName string
	To       string
	Subject  string
	HTML     string
}

// SMTPMailer Порт 465 - неявный TLS, остальные порты - STARTTLS если сервер его поддерживает
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host(),
		port:     cfg.Port(),
		user:     cfg.User(),
		password: cfg.Password(),
		from:     cfg.From(),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	body := m.build(msg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.deliver(addr, msg.To, body)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (m *SMTPMailer) deliver(addr, to string, body []byte) error {
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if m.port != 465 {
		return smtp.SendMail(addr, auth, m.from, []string{to}, body)
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (m *SMTPMailer) build(msg Message) []byte {
	from := m.from
	if msg.FromName != "" {
		from = fmt.Sprintf("%q <%s>", msg.FromName, m.from)
	}
	return []byte(strings.Join([]string{
		"From: " + from,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"",
		msg.HTML,
	}, "\r\n"))
}

// LogMailer - используется, когда SMTP не настроен. Письмо только пишется в лог
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Warn("smtp is not configured, message not delivered",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
