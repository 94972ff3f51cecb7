package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/productmgmt/product-api/internal/core/domain"
)

// StaticVerifier accepts exactly one configured username/password pair and
// grants it the Admin role. The password is kept only as a bcrypt hash.
type StaticVerifier struct {
	username     []byte
	passwordHash []byte
}

// NewStaticVerifier hashes password with the given bcrypt cost. A cost below
// bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewStaticVerifier(username, password string, cost int) (*StaticVerifier, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &StaticVerifier{username: []byte(username), passwordHash: hash}, nil
}

// Verify always runs the bcrypt comparison, so a wrong username costs the
// same as a wrong password.
func (v *StaticVerifier) Verify(_ context.Context, username, password string) (*domain.Principal, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), v.username) == 1
	passOK := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	if !userOK || !passOK {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Principal{Username: username, Role: domain.RoleAdmin}, nil
}
