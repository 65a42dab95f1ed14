package resources

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// GetBalance fetches the central balance. The server returns a list;
// the first record is the balance.
func (c *Client) GetBalance(ctx context.Context) (*models.Balance, error) {
	var resp gateway.Payload[[]models.Balance]
	if err := c.gw.JSON(ctx, http.MethodGet, "/balance", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoBalance
	}
	return &resp.Data[0], nil
}

// EntryRequest is an income or outcome recording.
type EntryRequest struct {
	Amount    float64
	Status    models.Status
	BalanceID models.FlexID
	Image     *gateway.File
}

type entryBody struct {
	Amount    float64       `json:"amount"`
	Status    models.Status `json:"status"`
	BalanceID models.FlexID `json:"balanceId"`
}

// AddIncome records gold added to the central balance. JSON without an
// attachment, multipart form with one.
func (c *Client) AddIncome(ctx context.Context, req EntryRequest) error {
	return c.postEntry(ctx, "/balance/income", req)
}

// AddOutcome records gold removed from the central balance.
func (c *Client) AddOutcome(ctx context.Context, req EntryRequest) error {
	return c.postEntry(ctx, "/balance/outcome", req)
}

func (c *Client) postEntry(ctx context.Context, path string, req EntryRequest) error {
	if req.Image == nil {
		body := entryBody{Amount: req.Amount, Status: req.Status, BalanceID: req.BalanceID}
		return c.gw.JSON(ctx, http.MethodPost, path, body, nil)
	}
	fields := map[string]string{
		"amount":    strconv.FormatFloat(req.Amount, 'f', -1, 64),
		"status":    string(req.Status),
		"balanceId": req.BalanceID.String(),
	}
	return c.gw.Multipart(ctx, path, fields, req.Image, nil)
}
