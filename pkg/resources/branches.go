package resources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// ListBranches fetches all branches.
func (c *Client) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var resp gateway.Payload[[]models.Branch]
	if err := c.gw.JSON(ctx, http.MethodGet, "/branches", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetBranch looks up a single branch by id.
func (c *Client) GetBranch(ctx context.Context, id models.FlexID) (*models.Branch, error) {
	var resp gateway.Payload[models.Branch]
	body := map[string]models.FlexID{"id": id}
	if err := c.gw.JSON(ctx, http.MethodGet, "/branches/one", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateBranch creates a named branch with a zero balance.
func (c *Client) CreateBranch(ctx context.Context, name, description string) error {
	body := map[string]string{"name": name, "description": description}
	return c.gw.JSON(ctx, http.MethodPost, "/branches", body, nil)
}

// RenameBranch renames a branch, addressed by its current name.
func (c *Client) RenameBranch(ctx context.Context, oldName, newName, description string) error {
	body := map[string]string{"oldName": oldName, "newName": newName, "description": description}
	return c.gw.JSON(ctx, http.MethodPatch, "/branches", body, nil)
}

// DeleteBranch deletes a branch. The server wants both id and name.
func (c *Client) DeleteBranch(ctx context.Context, id models.FlexID, name string) error {
	body := map[string]any{"branchId": id, "name": name}
	return c.gw.JSON(ctx, http.MethodDelete, "/branches", body, nil)
}

// ReceiveRequest moves gold from the central balance into a branch.
type ReceiveRequest struct {
	Amount   float64
	BranchID models.FlexID
	Image    *gateway.File
}

// GiveRequest moves gold from a branch back to the central balance,
// optionally deducting an ugar loss with its reason.
type GiveRequest struct {
	Amount     float64
	BranchID   models.FlexID
	UgarAmount float64
	Reason     string
	Image      *gateway.File
}

// MoveRequest moves gold between two branches.
type MoveRequest struct {
	Amount       float64
	FromBranchID models.FlexID
	ToBranchID   models.FlexID
	Image        *gateway.File
}

// BalanceToBranch issues the balance→branch transfer call.
func (c *Client) BalanceToBranch(ctx context.Context, req ReceiveRequest) error {
	fields := map[string]string{
		"amount":   formatAmount(req.Amount),
		"branchId": req.BranchID.String(),
	}
	return c.gw.Multipart(ctx, "/branches/receive", fields, req.Image, nil)
}

// BranchToBalance issues the branch→balance transfer call.
func (c *Client) BranchToBalance(ctx context.Context, req GiveRequest) error {
	fields := map[string]string{
		"amount":     formatAmount(req.Amount),
		"branchId":   req.BranchID.String(),
		"ugarAmount": formatAmount(req.UgarAmount),
		"reason":     req.Reason,
	}
	return c.gw.Multipart(ctx, "/branches/give", fields, req.Image, nil)
}

// BranchToBranch issues the branch→branch transfer call.
func (c *Client) BranchToBranch(ctx context.Context, req MoveRequest) error {
	if req.FromBranchID == req.ToBranchID {
		return fmt.Errorf("source and destination branch are the same: %s", req.FromBranchID)
	}
	fields := map[string]string{
		"amount":       formatAmount(req.Amount),
		"fromBranchId": req.FromBranchID.String(),
		"toBranchId":   req.ToBranchID.String(),
	}
	return c.gw.Multipart(ctx, "/branches/transaction", fields, req.Image, nil)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
