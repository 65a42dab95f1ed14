// Package cache holds the client's read-mostly snapshots of server
// state. Writers always replace a collection wholesale, never patch it
// in place, so a reader can never observe a torn state between two
// fetched collections.
package cache

import (
	"sync"
	"time"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// Snapshot is the latest fetched server state. Readers must treat the
// contained slices as immutable.
type Snapshot struct {
	Balance      *models.Balance
	Branches     []models.Branch
	Transactions []models.Transaction
	FetchedAt    time.Time
}

// Store owns the snapshot. Mutated only by the completion handlers of
// the fetch and transfer operations.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	subs []func()
}

func NewStore() *Store { return &Store{} }

// Current returns the latest snapshot.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// SetBalance replaces the balance record.
func (s *Store) SetBalance(b *models.Balance) {
	s.replace(func(snap *Snapshot) { snap.Balance = b })
}

// SetBranches replaces the branch collection wholesale.
func (s *Store) SetBranches(branches []models.Branch) {
	s.replace(func(snap *Snapshot) { snap.Branches = branches })
}

// SetTransactions replaces the transaction collection wholesale.
func (s *Store) SetTransactions(txs []models.Transaction) {
	s.replace(func(snap *Snapshot) { snap.Transactions = txs })
}

// OnChange registers a callback invoked after every replacement,
// outside the store's lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) replace(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.snap)
	s.snap.FetchedAt = time.Now()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
