package auth

import (
	"context"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the admin password check for another
// method without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the credentials and returns the subject to put
	// in the session token. Returns ErrInvalidCredentials on mismatch.
	Authenticate(ctx context.Context, username, credential string) (string, error)
}
