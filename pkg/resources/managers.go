package resources

import (
	"context"
	"net/http"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// NewManager is a manager account creation request. The password is
// write-only; it never appears in any response shape.
type NewManager struct {
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	ThirdName  string `json:"third_name,omitempty"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// ListManagers fetches all manager accounts.
func (c *Client) ListManagers(ctx context.Context) ([]models.Manager, error) {
	var resp gateway.Payload[[]models.Manager]
	if err := c.gw.JSON(ctx, http.MethodGet, "/manager", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateManager creates a manager account. Super admin only.
func (c *Client) CreateManager(ctx context.Context, req NewManager) error {
	return c.gw.JSON(ctx, http.MethodPost, "/manager", req, nil)
}

// DeleteManager deletes a manager account by username.
func (c *Client) DeleteManager(ctx context.Context, username string) error {
	body := map[string]string{"username": username}
	return c.gw.JSON(ctx, http.MethodDelete, "/manager", body, nil)
}
