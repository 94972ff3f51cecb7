package ports

import (
	"context"

	"github.com/productmgmt/product-api/internal/core/domain"
)

// CredentialVerifier checks a username/password pair. Implementations must
// return domain.ErrInvalidCredentials for any mismatch without revealing
// which of the two fields was wrong.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*domain.Principal, error)
}
