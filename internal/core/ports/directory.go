package ports

import (
	"context"
	"errors"

	"production/internal/core/domain/model/principal"
)

var (
	// ErrAuthenticationFailed hides whether the username or the secret was wrong.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrPrincipalAlreadyExists is returned by CreatePrincipal for a taken username.
	ErrPrincipalAlreadyExists = errors.New("principal already exists")
)

// Directory stores principals and their hashed secrets.
//
// Secrets are hashed when written and never returned.
type Directory interface {
	// Authenticate checks the secret and returns the stored principal, or
	// ErrAuthenticationFailed.
	Authenticate(ctx context.Context, username, secret string) (principal.Principal, error)

	// Get returns a principal by username, or errs.ErrObjectNotFound.
	Get(ctx context.Context, username string) (principal.Principal, error)

	// ListPrincipals returns every principal ordered by username.
	ListPrincipals(ctx context.Context) ([]principal.Principal, error)

	// CreatePrincipal adds a new principal in one atomic insert, or returns
	// ErrPrincipalAlreadyExists. The secret is required.
	CreatePrincipal(ctx context.Context, p principal.Principal, secret string) error

	// UpsertPrincipal creates or replaces a principal. An empty secret keeps
	// the stored hash of an existing principal and is rejected for a new one.
	UpsertPrincipal(ctx context.Context, p principal.Principal, secret string) error

	// RemovePrincipal deletes a principal, or returns errs.ErrObjectNotFound.
	RemovePrincipal(ctx context.Context, username string) error
}
