package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// Filter is the AND-composition of the ledger filters. Every zero
// field is a no-op that matches everything.
type Filter struct {
	// Search matches case-insensitively against the transaction's
	// type-appropriate text fields (reason, branch name, source,
	// from/to names).
	Search string
	// Type requires an exact variant match.
	Type models.TransactionType
	// Branch requires the named branch to participate (branch, from
	// or to).
	Branch string
	// Status requires an exact status match; transactions without a
	// status count as completed.
	Status models.Status
	// From/To bound the timestamp inclusively.
	From *time.Time
	To   *time.Time
	// MinAmount/MaxAmount bound the amount inclusively.
	MinAmount *float64
	MaxAmount *float64
}

// IsZero reports whether no filter is set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Type == "" && f.Branch == "" && f.Status == "" &&
		f.From == nil && f.To == nil && f.MinAmount == nil && f.MaxAmount == nil
}

// Match reports whether the transaction passes every set filter.
func (f Filter) Match(tx models.Transaction) bool {
	if f.Search != "" && !matchSearch(tx, f.Search) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Branch != "" && !tx.InvolvesBranch(f.Branch) {
		return false
	}
	if f.Status != "" && tx.Status.OrCompleted() != f.Status {
		return false
	}
	if f.From != nil && tx.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && tx.CreatedAt.After(*f.To) {
		return false
	}
	if f.MinAmount != nil && tx.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && tx.Amount > *f.MaxAmount {
		return false
	}
	return true
}

func matchSearch(tx models.Transaction, term string) bool {
	term = strings.ToLower(term)
	for _, field := range tx.SearchFields() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Apply filters the transactions and sorts the result newest-first by
// timestamp. Ties keep the original server order (stable sort). The
// input slice is never modified.
func Apply(txs []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
