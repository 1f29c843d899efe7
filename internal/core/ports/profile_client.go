package ports

import (
	"context"

	"github.com/appshell/session-gateway/internal/core/domain"
)

// ProfileResult is the outcome of a profile service call that may return a
// canonical user record.
type ProfileResult struct {
	Success bool
	Message string
	User    *domain.User
}

// StatusResult is the outcome of a profile service call with no payload,
// only a success/failure signal.
type StatusResult struct {
	Success bool
	Message string
}

// ProfileClient is the contract with the profile service.
type ProfileClient interface {
	FetchProfile(ctx context.Context) (*ProfileResult, error)
	SubmitProfileUpdate(ctx context.Context, in domain.ProfileUpdate) (*ProfileResult, error)
	SubmitPasswordChange(ctx context.Context, currentPassword, newPassword string) (*StatusResult, error)
}
