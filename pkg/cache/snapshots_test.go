package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

func TestStore(t *testing.T) {
	t.Run("collections are replaced wholesale", func(t *testing.T) {
		s := NewStore()
		s.SetBranches([]models.Branch{{ID: "1", Name: "Alpha"}, {ID: "2", Name: "Beta"}})
		s.SetBranches([]models.Branch{{ID: "3", Name: "Gamma"}})

		snap := s.Current()
		assert.Len(t, snap.Branches, 1)
		assert.Equal(t, "Gamma", snap.Branches[0].Name)
	})

	t.Run("every write stamps the snapshot", func(t *testing.T) {
		s := NewStore()
		before := time.Now()
		s.SetBalance(&models.Balance{ID: "1", Amount: 100})

		assert.False(t, s.Current().FetchedAt.Before(before))
	})

	t.Run("subscribers run on every write", func(t *testing.T) {
		s := NewStore()
		var calls int
		s.OnChange(func() { calls++ })

		s.SetBalance(&models.Balance{ID: "1"})
		s.SetBranches(nil)
		s.SetTransactions(nil)
		assert.Equal(t, 3, calls)
	})
}
