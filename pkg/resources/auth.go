package resources

import (
	"context"
	"net/http"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Role   string        `json:"role"`
	Tokens models.Tokens `json:"tokens"`
}

// Login exchanges credentials for a session. Satisfies
// session.Authenticator. A business rejection surfaces the server's
// message through the gateway error.
func (c *Client) Login(ctx context.Context, username, password string) (models.Session, error) {
	var resp loginResponse
	err := c.gw.JSON(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{
		Role:   models.Role(resp.Role),
		Tokens: resp.Tokens,
	}, nil
}
