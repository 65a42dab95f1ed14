// Package resources defines the typed operations available on each
// backend resource. Every operation goes through the gateway client;
// this layer only shapes requests and responses. Identifier typing is
// decided here once: branch and balance references are canonical
// strings (models.FlexID) no matter how the server spells them.
package resources

import (
	"errors"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
)

// ErrNoBalance is returned when the server reports no balance record.
var ErrNoBalance = errors.New("no balance record returned by server")

// Client bundles the per-resource operations over one gateway.
type Client struct {
	gw     *gateway.Client
	tokens gateway.TokenSource
}

// New creates the resource client. The token source is needed for the
// super-admin endpoints that carry the access token in the path.
func New(gw *gateway.Client, tokens gateway.TokenSource) *Client {
	return &Client{gw: gw, tokens: tokens}
}

// Gateway exposes the underlying gateway, mainly for asset URL
// resolution.
func (c *Client) Gateway() *gateway.Client { return c.gw }
