package shelfapi

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/pkg/errors"
)

type LoginWithPasswordParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginWithPasswordParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// LoginWithPassword exchanges credentials for a bearer token. The
// returned token is the Auth Session: keeping it, storing it, and
// tearing it down is the caller's business.
func (c *Client) LoginWithPassword(ctx context.Context, params LoginWithPasswordParams) (*LoginResponse, error) {
	err := params.Validate()
	if err != nil {
		return nil, errors.WithStack(&APIError{
			Code:     CodeInvalidRequest,
			Messages: []string{err.Error()},
		})
	}

	r := &LoginResponse{}
	err = c.PostResponse(ctx, c.MakePath("auth/login"), params, r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return r, nil
}

type RegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p RegisterParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*LoginResponse, error) {
	err := params.Validate()
	if err != nil {
		return nil, errors.WithStack(&APIError{
			Code:     CodeInvalidRequest,
			Messages: []string{err.Error()},
		})
	}

	r := &LoginResponse{}
	err = c.PostResponse(ctx, c.MakePath("auth/register"), params, r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return r, nil
}

// Logout invalidates the current token server-side. Local teardown
// (forgetting the token) still happens even if this call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.PostResponse(ctx, c.MakePath("auth/logout"), nil, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
