package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveon-app/moveon-server/internal/config"
)

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(config.Email{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "noreply@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", m.from)
}

func TestNewSMTPMailer_ExplicitFrom(t *testing.T) {
	m, err := NewSMTPMailer(config.Email{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "smtp-user",
		From:     "noreply@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", m.from)
}

func TestBuildRecoveryMessage(t *testing.T) {
	msg, err := buildRecoveryMessage("noreply@example.com", "harper@example.com", "654321")
	require.NoError(t, err)

	var sb strings.Builder
	_, err = msg.WriteTo(&sb)
	require.NoError(t, err)
	rendered := sb.String()

	assert.Contains(t, rendered, "654321")
	assert.Contains(t, rendered, "MoveOn recovery code")
	assert.Contains(t, rendered, "harper@example.com")
}

func TestBuildRecoveryMessage_InvalidRecipient(t *testing.T) {
	_, err := buildRecoveryMessage("noreply@example.com", "not-an-address", "654321")
	require.Error(t, err)
}

func TestRecoveryHTML_ContainsCode(t *testing.T) {
	html := recoveryHTML("123456")
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "expires in 15 minutes")
}
