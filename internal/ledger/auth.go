package ledger

import (
	"context"

	"contas/internal/log"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token. The whole query cache
// is flushed: cached lists belong to whoever was logged in before.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var tr tokenResponse
	if err := c.post(ctx, "/auth/login", credentials{Email: email, Password: password}, &tr); err != nil {
		return "", err
	}
	c.cache.Flush()
	c.logger.Info("logged in", log.FieldOperation, log.OpLogin)
	return tr.AccessToken, nil
}

// Register creates a user account on the ledger.
func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	var u User
	if err := c.post(ctx, "/auth/register", credentials{Email: email, Password: password}, &u); err != nil {
		return User{}, err
	}
	c.logger.Info("registered", log.FieldOperation, log.OpRegister)
	return u, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
