package email

import (
	"context"
	"strings"
	"testing"

	"Petly/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("Petly <no-reply@petly.dev>", "ana@petly.dev", "Hola", "<p>hi</p>"))

	assert.True(t, strings.HasPrefix(msg, "From: Petly <no-reply@petly.dev>\r\n"))
	assert.Contains(t, msg, "To: ana@petly.dev\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"utf-8\"\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
}

func TestEnvelope(t *testing.T) {
	assert.Equal(t, "no-reply@petly.dev", envelope("Petly <no-reply@petly.dev>"))
	assert.Equal(t, "plain@petly.dev", envelope("plain@petly.dev"))
}

func TestSend_NotConfigured(t *testing.T) {
	s := NewSender(&config.SmtpConfig{})
	assert.Error(t, s.Send(context.Background(), "a@b.c", "s", "b"))
}
