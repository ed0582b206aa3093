package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20

	passwordHashCost = bcrypt.DefaultCost
)

var (
	usernameRegex = regexp.MustCompile(usernamePattern)

	ErrUsernameTooShort = errors.New("username too short")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameFormat   = errors.New("invalid username format")
	ErrWeakPassword     = errors.New("weak password")
)

// User is an account allowed to generate and delete mazes.
type User struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// UserConfig holds the parameters for registering a User.
type UserConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
}

// NewUser validates the credentials and returns a User with a hashed password.
func NewUser(config UserConfig) (*User, error) {
	if err := validateUsername(config.Username); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(config.PlainPassword), passwordHashCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           config.ID,
		Username:     config.Username,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func validateUsername(username string) error {
	switch {
	case len(username) < minUsernameLength:
		return ErrUsernameTooShort
	case len(username) > maxUsernameLength:
		return ErrUsernameTooLong
	case !usernameRegex.MatchString(username):
		return ErrUsernameFormat
	}
	return nil
}

func validatePassword(password string) error {
	if zxcvbn.PasswordStrength(password, nil).Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}
