package ports

import (
	"context"

	"github.com/appshell/session-gateway/internal/core/domain"
)

// AuthResult is the application-level outcome of a login or registration
// call. A transport failure is reported as an error by the client instead;
// a populated result always reflects a response the backend actually sent.
type AuthResult struct {
	Code    int
	Message string
	Token   *domain.TokenPair
	User    *domain.User
}

// Successful reports whether the result is a structurally complete success:
// success code plus both the credential pair and the user snapshot. A success
// code with either sub-field missing is a malformed success and counts as
// failure.
func (r *AuthResult) Successful() bool {
	return r != nil && r.Code == 0 && r.Token != nil && r.Token.AccessToken != "" && r.User != nil
}

// AuthClient is the contract with the authentication service.
type AuthClient interface {
	SubmitLogin(ctx context.Context, in domain.LoginInput) (*AuthResult, error)
	SubmitRegistration(ctx context.Context, in domain.RegisterInput) (*AuthResult, error)
}
