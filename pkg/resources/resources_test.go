package resources

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/stub"
)

// tokenHolder is a minimal session stand-in for wiring the gateway in
// tests.
type tokenHolder struct{ token string }

func (h *tokenHolder) AccessToken() string { return h.token }
func (h *tokenHolder) Purge()              { h.token = "" }

func newHarness(t *testing.T) (*stub.Server, *Client, *tokenHolder) {
	t.Helper()
	backend := stub.NewServer(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv := httptest.NewServer(backend.Router())
	t.Cleanup(srv.Close)

	holder := &tokenHolder{}
	gw := gateway.New(srv.URL, holder, holder, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return backend, New(gw, holder), holder
}

func newAdminHarness(t *testing.T) (*stub.Server, *Client) {
	t.Helper()
	backend, api, holder := newHarness(t)
	holder.token = backend.IssueToken(models.RoleSuperAdmin)
	return backend, api
}

func TestLogin(t *testing.T) {
	t.Run("admin login returns the legacy role spelling", func(t *testing.T) {
		_, api, _ := newHarness(t)

		sess, err := api.Login(context.Background(), stub.DefaultAdminUser, stub.DefaultAdminPassword)
		require.NoError(t, err)

		assert.Equal(t, models.Role("super admin"), sess.Role)
		assert.Equal(t, models.RoleSuperAdmin, models.NormalizeRole(string(sess.Role)))
		assert.NotEmpty(t, sess.Tokens.AccessToken)
		assert.NotEmpty(t, sess.Tokens.RefreshToken)
	})

	t.Run("wrong password surfaces the server message", func(t *testing.T) {
		_, api, _ := newHarness(t)

		_, err := api.Login(context.Background(), stub.DefaultAdminUser, "nope")
		assert.Error(t, err)
		assert.Equal(t, "Invalid username or password", gateway.ServerMessage(err))
	})
}

func TestBalanceLifecycle(t *testing.T) {
	backend, api := newAdminHarness(t)
	backend.SeedBalance(1000)
	ctx := context.Background()

	// Income raises the balance and appends an entry.
	require.NoError(t, api.AddIncome(ctx, EntryRequest{Amount: 200, Status: models.StatusCompleted, BalanceID: "1"}))
	balance, err := api.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, balance.Amount)
	require.Len(t, balance.Incomes, 1)
	assert.Equal(t, 200.0, balance.Incomes[0].Amount)

	// Outcome lowers it.
	require.NoError(t, api.AddOutcome(ctx, EntryRequest{Amount: 150, Status: models.StatusCompleted, BalanceID: "1"}))
	balance, err = api.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1050.0, balance.Amount)
	require.Len(t, balance.Outcomes, 1)

	// An outcome beyond the balance is a business rejection.
	err = api.AddOutcome(ctx, EntryRequest{Amount: 5000, Status: models.StatusCompleted, BalanceID: "1"})
	assert.Error(t, err)
	assert.Equal(t, "Insufficient balance", gateway.ServerMessage(err))

	// Both movements landed in the ledger.
	txs, err := api.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TxIncome, txs[0].Type)
	assert.Equal(t, models.TxOutcome, txs[1].Type)
}

func TestTransfers(t *testing.T) {
	backend, api := newAdminHarness(t)
	backend.SeedBalance(1000)
	alphaID := models.FlexID(backend.SeedBranch("Alpha", 500))
	betaID := models.FlexID(backend.SeedBranch("Beta", 250))
	ctx := context.Background()

	branchByName := func(name string) models.Branch {
		t.Helper()
		branches, err := api.ListBranches(ctx)
		require.NoError(t, err)
		for _, b := range branches {
			if b.Name == name {
				return b
			}
		}
		t.Fatalf("branch %q not found", name)
		return models.Branch{}
	}

	t.Run("balance to branch", func(t *testing.T) {
		require.NoError(t, api.BalanceToBranch(ctx, ReceiveRequest{Amount: 350, BranchID: alphaID}))

		balance, err := api.GetBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, 650.0, balance.Amount)
		assert.Equal(t, 850.0, branchByName("Alpha").Amount)
	})

	t.Run("branch to balance with ugar loss", func(t *testing.T) {
		require.NoError(t, api.BranchToBalance(ctx, GiveRequest{
			Amount: 100, BranchID: alphaID, UgarAmount: 20, Reason: "evaporation",
		}))

		// The branch gives up the full amount; only amount − ugar
		// arrives at the main balance.
		balance, err := api.GetBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, 730.0, balance.Amount)
		assert.Equal(t, 750.0, branchByName("Alpha").Amount)

		txs, err := api.ListTransactions(ctx)
		require.NoError(t, err)
		var gave, lost *models.Transaction
		for i := range txs {
			switch txs[i].Type {
			case models.TxBranchToBalance:
				gave = &txs[i]
			case models.TxUgarLoss:
				lost = &txs[i]
			}
		}
		require.NotNil(t, gave)
		require.NotNil(t, lost)
		assert.Equal(t, 100.0, gave.Amount)
		assert.Equal(t, 20.0, lost.Amount)
		assert.Equal(t, "evaporation", lost.Reason)
	})

	t.Run("branch to branch", func(t *testing.T) {
		require.NoError(t, api.BranchToBranch(ctx, MoveRequest{
			Amount: 50, FromBranchID: alphaID, ToBranchID: betaID,
		}))

		assert.Equal(t, 700.0, branchByName("Alpha").Amount)
		assert.Equal(t, 300.0, branchByName("Beta").Amount)
	})

	t.Run("same branch rejected locally", func(t *testing.T) {
		err := api.BranchToBranch(ctx, MoveRequest{Amount: 10, FromBranchID: alphaID, ToBranchID: alphaID})
		assert.Error(t, err)
	})

	t.Run("insufficient balance is a business rejection", func(t *testing.T) {
		err := api.BalanceToBranch(ctx, ReceiveRequest{Amount: 100000, BranchID: alphaID})
		assert.Error(t, err)
		assert.Equal(t, "Insufficient balance", gateway.ServerMessage(err))
	})
}

func TestBranchCRUD(t *testing.T) {
	_, api := newAdminHarness(t)
	ctx := context.Background()

	require.NoError(t, api.CreateBranch(ctx, "Gamma", "new market"))
	branches, err := api.ListBranches(ctx)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	created := branches[0]
	assert.Equal(t, "Gamma", created.Name)
	assert.NotEmpty(t, created.ID)

	got, err := api.GetBranch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	require.NoError(t, api.RenameBranch(ctx, "Gamma", "Delta", "renamed"))
	got, err = api.GetBranch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Delta", got.Name)
	assert.Equal(t, "renamed", got.Description)

	require.NoError(t, api.DeleteBranch(ctx, created.ID, "Delta"))
	branches, err = api.ListBranches(ctx)
	require.NoError(t, err)
	assert.Empty(t, branches)
}

func TestManagers(t *testing.T) {
	backend, api, holder := newHarness(t)
	holder.token = backend.IssueToken(models.RoleSuperAdmin)
	ctx := context.Background()

	require.NoError(t, api.CreateManager(ctx, NewManager{
		FirstName: "Dil", SecondName: "Nur", Username: "dilnur", Password: "pw-123",
	}))

	managers, err := api.ListManagers(ctx)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "dilnur", managers[0].Username)
	assert.Equal(t, models.RoleManager, models.NormalizeRole(string(managers[0].Role)))

	// The new manager can sign in.
	sess, err := api.Login(ctx, "dilnur", "pw-123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, models.NormalizeRole(string(sess.Role)))

	// Duplicate usernames are rejected.
	err = api.CreateManager(ctx, NewManager{FirstName: "X", SecondName: "Y", Username: "dilnur", Password: "other"})
	assert.Error(t, err)
	assert.Equal(t, "Username already taken", gateway.ServerMessage(err))

	require.NoError(t, api.DeleteManager(ctx, "dilnur"))
	_, err = api.Login(ctx, "dilnur", "pw-123")
	assert.Error(t, err)
}

func TestSuperAdminProfile(t *testing.T) {
	_, api := newAdminHarness(t)
	ctx := context.Background()

	profile, err := api.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, stub.DefaultAdminUser, profile.Username)
	assert.Equal(t, models.RoleSuperAdmin, models.NormalizeRole(string(profile.Role)))

	require.NoError(t, api.UpdateProfile(ctx, "Aziz", "Karimov"))
	profile, err = api.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aziz", profile.FirstName)
	assert.Equal(t, "Karimov", profile.SecondName)

	t.Run("password change", func(t *testing.T) {
		err := api.UpdatePassword(ctx, "wrong-old", "new-pass")
		assert.Error(t, err)
		assert.Equal(t, "Old password is incorrect", gateway.ServerMessage(err))

		require.NoError(t, api.UpdatePassword(ctx, stub.DefaultAdminPassword, "new-pass"))
		_, err = api.Login(ctx, stub.DefaultAdminUser, "new-pass")
		assert.NoError(t, err)
	})

	t.Run("username change", func(t *testing.T) {
		require.NoError(t, api.UpdateUsername(ctx, stub.DefaultAdminUser, "root"))
		_, err := api.Login(ctx, "root", "new-pass")
		assert.NoError(t, err)
	})
}

func TestAuthFailurePurgesSession(t *testing.T) {
	_, api, holder := newHarness(t)
	holder.token = "stale-token"

	_, err := api.GetBalance(context.Background())
	assert.True(t, gateway.IsAuthFailure(err))
	// The purger ran: the stale token is gone.
	assert.Equal(t, "", holder.AccessToken())

	select {
	case ev := <-api.Gateway().Invalidations():
		assert.Equal(t, 401, ev.Status)
	default:
		t.Fatal("expected a pending auth-invalidated event")
	}
}
