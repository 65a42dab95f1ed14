package models

import (
	"strings"
	"time"
)

// TransactionType tags the variants of the server-computed ledger
// projection.
type TransactionType string

const (
	TxIncome          TransactionType = "INCOME"
	TxOutcome         TransactionType = "OUTCOME"
	TxBalanceToBranch TransactionType = "BALANCE_TO_BRANCH"
	TxBranchToBalance TransactionType = "BRANCH_TO_BALANCE"
	TxBranchToBranch  TransactionType = "BRANCH_TO_BRANCH"
	TxUgarLoss        TransactionType = "UGAR_LOSS"
)

// Transaction is one ledger record. It is read-only and entirely
// server-computed; the client never constructs these, it only infers
// them as side effects of transfer operations. The participant fields
// are variant-specific: Source for income/outcome, BranchName for the
// two balance transfers, FromBranch/ToBranch for branch-to-branch,
// Reason for ugar losses.
type Transaction struct {
	ID         FlexID          `json:"id"`
	Type       TransactionType `json:"type"`
	Amount     float64         `json:"amount"`
	Status     Status          `json:"status,omitempty"`
	Image      string          `json:"image,omitempty"`
	Source     string          `json:"source,omitempty"`
	BranchName string          `json:"branchName,omitempty"`
	FromBranch string          `json:"fromBranch,omitempty"`
	ToBranch   string          `json:"toBranch,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SearchFields returns the type-appropriate text fields a free-text
// ledger search runs over.
func (t Transaction) SearchFields() []string {
	fields := make([]string, 0, 3)
	if t.Source != "" {
		fields = append(fields, t.Source)
	}
	if t.BranchName != "" {
		fields = append(fields, t.BranchName)
	}
	if t.FromBranch != "" {
		fields = append(fields, t.FromBranch)
	}
	if t.ToBranch != "" {
		fields = append(fields, t.ToBranch)
	}
	if t.Reason != "" {
		fields = append(fields, t.Reason)
	}
	return fields
}

// InvolvesBranch reports whether the named branch participates in the
// transaction as its branch, source or destination.
func (t Transaction) InvolvesBranch(name string) bool {
	return strings.EqualFold(t.BranchName, name) ||
		strings.EqualFold(t.FromBranch, name) ||
		strings.EqualFold(t.ToBranch, name)
}
