package service

import (
	"testing"

	"noter-be/internal/dto"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	h := newHarness(t)

	user, err := h.auth.Register(h.ctx, &dto.RegisterRequest{Name: " Carol ", Email: "Carol@Example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Carol", user.Name)
	require.NotNil(t, user.Email)
	assert.Equal(t, "carol@example.com", *user.Email)

	session, err := h.auth.Login(h.ctx, &dto.LoginRequest{Email: "CAROL@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, user.Id, session.User.Id)
	assert.NotEmpty(t, session.AccessToken)

	subject, err := serverutils.ParseToken("test-secret", session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Id, subject)
}

func TestAuth_Failures(t *testing.T) {
	h := newHarness(t)
	_, err := h.auth.Register(h.ctx, &dto.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: "password1"})
	require.NoError(t, err)
	social := h.seed.User("Social")

	_, err = h.auth.Register(h.ctx, &dto.RegisterRequest{Name: "Dan again", Email: "DAN@example.com", Password: "password2"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.EqualError(t, err, "Email already in use")

	_, err = h.auth.Login(h.ctx, &dto.LoginRequest{Email: "dan@example.com", Password: "wrong-password"})
	assert.EqualError(t, err, "Invalid email or password")

	_, err = h.auth.Login(h.ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.EqualError(t, err, "Invalid email or password")

	_, err = h.auth.Login(h.ctx, &dto.LoginRequest{Email: *social.Email, Password: "anything"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.EqualError(t, err, "This account uses social sign-in")
}
