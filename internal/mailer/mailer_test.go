package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSMTPMailer_Build(t *testing.T) {
	m := &SMTPMailer{host: "smtp.local", port: 587, from: "noreply@vault.local"}

	raw := string(m.build(RegistrationCode("player@mail.com", "123456")))

	assert.True(t, strings.HasPrefix(raw, `From: "Boss Rummy Support" <noreply@vault.local>`+"\r\n"))
	assert.Contains(t, raw, "To: player@mail.com\r\n")
	assert.Contains(t, raw, "Subject: Boss Rummy - Your Verification Code\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	assert.Contains(t, raw, "OTP: 123456")
}

func TestEmailChangeCode(t *testing.T) {
	msg := EmailChangeCode("new@mail.com", "654321")

	assert.Equal(t, "new@mail.com", msg.To)
	assert.Contains(t, msg.HTML, "654321")
	assert.Contains(t, msg.HTML, "10 minutes")
}

func TestLogMailer_NeverFails(t *testing.T) {
	m := NewLogMailer(zap.NewNop())

	assert.NoError(t, m.Send(context.Background(), RegistrationCode("a@b.c", "000000")))
}
