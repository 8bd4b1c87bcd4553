package auth

import (
	"context"

	"github.com/mmynk/chitfund/internal/models"
)

// Authenticator defines the interface for login implementations.
// Admins log in with the group password and members with a one-time code
// sent to their registered phone; both resolve to a models.AuthUser that the
// service layer hands to the ledger.
type Authenticator interface {
	// Authenticate verifies the credential for identifier and returns the
	// session user. The identifier is ignored by implementations that have
	// a single principal.
	Authenticate(ctx context.Context, identifier, credential string) (models.AuthUser, error)

	// ValidateCredential checks the credential's shape before any lookup.
	ValidateCredential(credential string) error
}
