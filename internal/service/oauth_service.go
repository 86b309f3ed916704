package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"noter-be/internal/config"
	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/repository/specification"
	"noter-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle    = "google"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type IOAuthService interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
}

// GoogleProfile is the subset of the Google userinfo payload we keep.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
	jwtSecret  string
	jwtTTL     time.Duration
	logger     logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, cfg config.OAuthConfig, jwtSecret string, jwtTTL time.Duration, log logger.ILogger) IOAuthService {
	return &oauthService{
		uowFactory: uowFactory,
		googleConf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		logger:    log,
	}
}

func (s *oauthService) LoginURL(state string) string {
	return s.googleConf.AuthCodeURL(state)
}

func (s *oauthService) HandleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Validation("Google sign-in failed")
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, apperror.Validation("Google account has no email")
	}

	user, err := s.upsertUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("OAUTH", "Google sign-in", map[string]interface{}{
		"user_id": user.Id.String(),
	})
	return issueSession(s.jwtSecret, s.jwtTTL, user)
}

func (s *oauthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	resp, err := s.googleConf.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &profile, nil
}

// upsertUser links the Google identity to a user, creating a password-less
// account on first sign-in. User and provider rows are written together.
func (s *oauthService) upsertUser(ctx context.Context, profile *GoogleProfile) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var user *entity.User
	link, err := uow.UserRepository().FindUserProvider(ctx, specification.ByProvider{Name: ProviderGoogle, UserID: profile.ID})
	if err != nil {
		return nil, err
	}
	if link != nil {
		if user, err = uow.UserRepository().FindOne(ctx, specification.ByID{ID: link.UserId}); err != nil {
			return nil, err
		}
	}
	if user == nil {
		if user, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: strings.ToLower(profile.Email)}); err != nil {
			return nil, err
		}
	}

	if user == nil {
		email := strings.ToLower(profile.Email)
		user = &entity.User{
			Id:    uuid.New(),
			Name:  profile.Name,
			Email: &email,
		}
		if profile.Picture != "" {
			user.AvatarURL = &profile.Picture
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	} else if user.AvatarURL == nil && profile.Picture != "" {
		user.AvatarURL = &profile.Picture
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if link == nil {
		if err := uow.UserRepository().SaveUserProvider(ctx, &entity.UserProvider{
			Id:             uuid.New(),
			UserId:         user.Id,
			ProviderName:   ProviderGoogle,
			ProviderUserId: profile.ID,
			AvatarURL:      profile.Picture,
		}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}
