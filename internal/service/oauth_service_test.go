package service

import (
	"testing"
	"time"

	"noter-be/internal/config"
	"noter-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthUpsertUser(t *testing.T) {
	h := newHarness(t)
	svc := NewOAuthService(h.uow, config.OAuthConfig{GoogleClientID: "client"}, "test-secret", time.Hour, logger.NewNopLogger()).(*oauthService)

	profile := &GoogleProfile{ID: "g-123", Email: "Erin@Example.com", Name: "Erin", Picture: "https://example.com/erin.png"}

	first, err := svc.upsertUser(h.ctx, profile)
	require.NoError(t, err)
	require.NotNil(t, first.Email)
	assert.Equal(t, "erin@example.com", *first.Email)
	require.NotNil(t, first.AvatarURL)
	assert.Nil(t, first.PasswordHash)

	again, err := svc.upsertUser(h.ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, first.Id, again.Id)

	assert.EqualValues(t, 1, h.seed.Count("users", ""))
	assert.EqualValues(t, 1, h.seed.Count("user_providers", "provider_user_id = ?", "g-123"))
}

func TestOAuthUpsertUser_LinksExistingAccount(t *testing.T) {
	h := newHarness(t)
	svc := NewOAuthService(h.uow, config.OAuthConfig{}, "test-secret", time.Hour, logger.NewNopLogger()).(*oauthService)
	existing := h.seed.User("Frank")

	user, err := svc.upsertUser(h.ctx, &GoogleProfile{ID: "g-frank", Email: "frank@example.com", Name: "Frank G", Picture: "https://example.com/f.png"})
	require.NoError(t, err)
	assert.Equal(t, existing.Id, user.Id)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "https://example.com/f.png", *user.AvatarURL)
	assert.EqualValues(t, 1, h.seed.Count("user_providers", "user_id = ?", existing.Id))
}

func TestOAuthLoginURL(t *testing.T) {
	h := newHarness(t)
	svc := NewOAuthService(h.uow, config.OAuthConfig{GoogleClientID: "client", GoogleRedirectURL: "http://localhost/cb"}, "s", time.Hour, logger.NewNopLogger())

	url := svc.LoginURL("state-xyz")
	assert.Contains(t, url, "state=state-xyz")
	assert.Contains(t, url, "client_id=client")
}
