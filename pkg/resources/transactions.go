package resources

import (
	"context"
	"net/http"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// ListTransactions fetches the full server-computed ledger projection.
func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var resp gateway.Payload[[]models.Transaction]
	if err := c.gw.JSON(ctx, http.MethodGet, "/transactions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
