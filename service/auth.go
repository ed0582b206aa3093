package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

var _ i.Authenticator = &Auth{}

// Auth registers users and signs them in.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

// NewAuthService creates an Auth service.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer, logger i.Logger) (*Auth, error) {
	if userRepo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("auth service requires a user repo, a tokenizer and a logger")
	}
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
		logger:    logger,
	}, nil
}

// Register creates a new user. Taken usernames yield i.ErrConflict.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	if _, err := a.userRepo.ByUsername(ctx, username); err == nil {
		return i.ErrConflict
	} else if !errors.Is(err, i.ErrNotFound) {
		return err
	}

	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Registered user: ID=%s Username=%s", user.ID, user.Username))
	return nil
}

// SignIn verifies the credentials and returns the user with an access token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(ctx, username)
	if errors.Is(err, i.ErrNotFound) {
		return nil, "", i.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !user.VerifyPassword(password) {
		return nil, "", i.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		i.ClaimUserID:   user.ID.String(),
		i.ClaimUsername: user.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
