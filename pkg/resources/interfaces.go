package resources

import (
	"context"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// BalanceReader fetches the central balance.
type BalanceReader interface {
	GetBalance(ctx context.Context) (*models.Balance, error)
}

// BalanceWriter records income and outcome entries against the central
// balance.
type BalanceWriter interface {
	AddIncome(ctx context.Context, req EntryRequest) error
	AddOutcome(ctx context.Context, req EntryRequest) error
}

// BranchReader fetches branches.
type BranchReader interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
	GetBranch(ctx context.Context, id models.FlexID) (*models.Branch, error)
}

// BranchWriter creates, renames and deletes branches. Super admin only.
type BranchWriter interface {
	CreateBranch(ctx context.Context, name, description string) error
	RenameBranch(ctx context.Context, oldName, newName, description string) error
	DeleteBranch(ctx context.Context, id models.FlexID, name string) error
}

// TransferAPI issues the three raw transfer calls. The transfer
// workflow owns validation and the timeout policy; these calls only
// put the request on the wire.
type TransferAPI interface {
	BalanceToBranch(ctx context.Context, req ReceiveRequest) error
	BranchToBalance(ctx context.Context, req GiveRequest) error
	BranchToBranch(ctx context.Context, req MoveRequest) error
}

// TransactionReader fetches the full ledger projection.
type TransactionReader interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// ManagerAPI manages manager accounts. Super admin only.
type ManagerAPI interface {
	ListManagers(ctx context.Context) ([]models.Manager, error)
	CreateManager(ctx context.Context, req NewManager) error
	DeleteManager(ctx context.Context, username string) error
}

// SuperAdminAPI manages the administrator profile.
type SuperAdminAPI interface {
	GetProfile(ctx context.Context) (*models.SuperAdmin, error)
	CreateAdmin(ctx context.Context, req NewAdmin) error
	UpdateProfile(ctx context.Context, firstName, secondName string) error
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) error
	UpdateUsername(ctx context.Context, oldUsername, newUsername string) error
}
