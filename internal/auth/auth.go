// Package auth turns bearer tokens into caller identities.
package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller.
type Identity struct {
	Subject string
	Email   string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
