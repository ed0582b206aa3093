package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
)

// Authenticator registers users and issues access tokens.
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*dmn.User, string, error)
}
