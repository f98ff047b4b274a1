package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/email"
)

func TestNewPostmarkClient_ValidConfig(t *testing.T) {
	t.Parallel()

	client, err := email.NewPostmarkClient(email.Config{
		PostmarkServerToken:  "test-server-token",
		PostmarkAccountToken: "test-account-token",
		SenderEmail:          "sender@example.com",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty server token", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(email.Config{
			PostmarkAccountToken: "test-account-token",
			SenderEmail:          "sender@example.com",
		})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "PostmarkServerToken is required")
	})

	t.Run("empty account token", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(email.Config{
			PostmarkServerToken: "test-server-token",
			SenderEmail:         "sender@example.com",
		})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "PostmarkAccountToken is required")
	})

	t.Run("missing sender email", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(email.Config{
			PostmarkServerToken:  "test-server-token",
			PostmarkAccountToken: "test-account-token",
		})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "SenderEmail is required")
	})

	t.Run("invalid sender email format", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(email.Config{
			PostmarkServerToken:  "test-server-token",
			PostmarkAccountToken: "test-account-token",
			SenderEmail:          "invalid-email",
		})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "SenderEmail must be a valid email address")
	})
}

func TestMustNewPostmarkClient_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		email.MustNewPostmarkClient(email.Config{})
	})
}
