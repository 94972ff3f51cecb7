package ports

import (
	"context"
	"time"
)

// IssuedToken is a signed bearer token and the instant it stops being valid.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*IssuedToken, error)
}
