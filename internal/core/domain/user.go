package domain

import "errors"

// RoleAdmin is the only role issued by this service.
const RoleAdmin = "Admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is the authenticated identity carried inside a token.
type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
