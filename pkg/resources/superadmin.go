package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// NewAdmin is a super-admin account creation request.
type NewAdmin struct {
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// GetProfile fetches the administrator profile.
func (c *Client) GetProfile(ctx context.Context) (*models.SuperAdmin, error) {
	var resp gateway.Payload[models.SuperAdmin]
	if err := c.gw.JSON(ctx, http.MethodGet, "/super-admin", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateAdmin creates an additional super-admin account.
func (c *Client) CreateAdmin(ctx context.Context, req NewAdmin) error {
	return c.gw.JSON(ctx, http.MethodPost, "/super-admin", req, nil)
}

// UpdateProfile updates the administrator's display names.
func (c *Client) UpdateProfile(ctx context.Context, firstName, secondName string) error {
	body := map[string]string{"first_name": firstName, "second_name": secondName}
	return c.gw.JSON(ctx, http.MethodPatch, "/super-admin/profile", body, nil)
}

// UpdatePassword changes the administrator password. The backend keys
// this endpoint on the access token in the path.
func (c *Client) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	path := "/super-admin/password/" + url.PathEscape(c.tokens.AccessToken())
	return c.gw.JSON(ctx, http.MethodPatch, path, body, nil)
}

// UpdateUsername changes the administrator username.
func (c *Client) UpdateUsername(ctx context.Context, oldUsername, newUsername string) error {
	body := map[string]string{"oldUsername": oldUsername, "newUsername": newUsername}
	path := "/super-admin/username/" + url.PathEscape(c.tokens.AccessToken())
	return c.gw.JSON(ctx, http.MethodPatch, path, body, nil)
}
