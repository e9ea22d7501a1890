// Package services holds the server-side forum logic. Validation failures
// are returned as field errors next to a nil error; a non-nil error always
// means the request could not be served.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/cryptox"
	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/dmitrijs2005/gophforum/internal/fielderrors"
	"github.com/dmitrijs2005/gophforum/internal/server/auth"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
	"github.com/dmitrijs2005/gophforum/internal/server/models"
	"github.com/dmitrijs2005/gophforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophforum/internal/server/validation"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService registers accounts, signs users in and rotates their tokens.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	forum                        config.Forum
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		forum:                        cfg.Forum,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register validates in and creates the account. The new user is not
// signed in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, []fielderrors.FieldError, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	var errs fielderrors.List
	if !validation.Required(&errs, in.Name, in.Email, in.Password) {
		return nil, errs.Errors(), nil
	}

	nameOK := validation.Username(&errs, "name", in.Name, s.forum.UsernameMinLength, s.forum.UsernameMaxLength)
	emailOK := validation.Email(&errs, "email", in.Email)
	validation.Length(&errs, "password", in.Password, s.forum.PasswordMinLength, s.forum.PasswordMaxLength)

	slug := common.Slugify(in.Name)
	if nameOK || emailOK {
		slugTaken, emailTaken, err := s.repomanager.Users(s.db).Availability(ctx, slug, in.Email)
		if err != nil {
			return nil, nil, fmt.Errorf("error checking availability: %w", err)
		}
		if nameOK && slugTaken {
			errs.AddField("name", validation.CodeUsernameTaken, "username is not available")
		}
		if emailOK && emailTaken {
			errs.AddField("email", validation.CodeEmailTaken, "email is not available")
		}
	}
	if errs.HasErrors() {
		return nil, errs.Errors(), nil
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		Name:         in.Name,
		Slug:         slug,
		Email:        in.Email,
		Salt:         salt,
		PasswordHash: cryptox.HashPassword([]byte(in.Password), salt),
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if errors.Is(err, common.ErrorAlreadyExists) {
		// lost a race with another registration
		errs.AddField("name", validation.CodeUsernameTaken, "username is not available")
		return nil, errs.Errors(), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil, nil
}

// Login checks credentials and issues a token pair. Unknown users and wrong
// passwords produce the same root error.
func (s *UserService) Login(ctx context.Context, login, password string) (*models.User, *TokenPair, []fielderrors.FieldError, error) {
	var errs fielderrors.List
	login = strings.TrimSpace(login)
	if !validation.Required(&errs, login, password) {
		return nil, nil, errs.Errors(), nil
	}

	user, err := s.repomanager.Users(s.db).GetByLogin(ctx, login)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, nil, fmt.Errorf("error searching user: %w", err)
	}
	if user == nil || !cryptox.CheckPassword([]byte(password), user.Salt, user.PasswordHash) {
		errs.AddRoot(validation.CodeInvalidCredentials, "login or password is incorrect")
		return nil, nil, errs.Errors(), nil
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, pair, nil, nil
}

// Logout revokes refreshToken. Unknown tokens are ignored.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// RefreshToken rotates refreshToken inside one transaction and returns a
// fresh pair. Expired tokens yield common.ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %w", err)
		}
		return s.generateTokenPair(ctx, token.UserID, tx)
	})
}

// CurrentUser loads the user an access token was issued to. An empty id
// means anonymous and yields nil without error.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, nil
	}
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// PurgeExpiredTokens drops refresh tokens that expired before now.
func (s *UserService) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, now)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
