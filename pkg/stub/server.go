// Package stub is an in-memory double of the remote gold-trading API.
// It backs local development (cmd/goldstub) and the integration-style
// tests of the client packages. Behaviour mirrors the deployed
// backend, including its envelope shape, its legacy "super admin" role
// spelling and its habit of returning numeric ids.
package stub

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// Credentials seeded for the default super admin.
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "admin123"
)

type branch struct {
	ID          int64
	Name        string
	Description string
	Balance     float64
	CreatedAt   time.Time
}

type ledgerEntry struct {
	ID         int64
	Type       models.TransactionType
	Amount     float64
	Status     models.Status
	Image      string
	Source     string
	BranchName string
	FromBranch string
	ToBranch   string
	Reason     string
	CreatedAt  time.Time
}

type manager struct {
	ID         int64
	FirstName  string
	SecondName string
	ThirdName  string
	Username   string
	Password   string
	CreatedAt  time.Time
}

type balanceEntry struct {
	ID        int64
	Amount    float64
	Status    models.Status
	BalanceID int64
	Image     string
	CreatedAt time.Time
}

// Server is the in-memory backend state behind the router.
type Server struct {
	logger *slog.Logger

	// TransferDelay stalls the three transfer endpoints before they
	// respond. Tests use it to exercise the client's timeout policy.
	TransferDelay time.Duration

	mu           sync.Mutex
	nextID       int64
	balance      float64
	incomes      []balanceEntry
	outcomes     []balanceEntry
	branches     []*branch
	managers     []*manager
	ledger       []ledgerEntry
	adminUser    string
	adminPass    string
	adminFirst   string
	adminSecond  string
	sessions     map[string]models.Role // access token → role
	managerCreds map[string]string      // username → password
}

// NewServer creates a stub backend seeded with the default admin and
// an empty balance.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:       logger,
		nextID:       1,
		adminUser:    DefaultAdminUser,
		adminPass:    DefaultAdminPassword,
		adminFirst:   "Default",
		adminSecond:  "Admin",
		sessions:     make(map[string]models.Role),
		managerCreds: make(map[string]string),
	}
}

// SeedBalance sets the central balance directly. Test setup only.
func (s *Server) SeedBalance(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = amount
}

// SeedBranch creates a branch with the given balance and returns its
// id. Test setup only.
func (s *Server) SeedBranch(name string, balance float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &branch{ID: s.allocID(), Name: name, Balance: balance, CreatedAt: time.Now()}
	s.branches = append(s.branches, b)
	return strconv.FormatInt(b.ID, 10)
}

// IssueToken creates a pre-authenticated session. Test setup only.
func (s *Server) IssueToken(role models.Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = role
	return token
}

// LedgerSize reports how many ledger records exist. Test assertions
// only.
func (s *Server) LedgerSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger)
}

// Router builds the chi router with request logging and token
// authentication on everything but /login.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(s.logger))

	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/balance", s.handleGetBalance)
		r.Post("/balance/income", s.handleIncome)
		r.Post("/balance/outcome", s.handleOutcome)

		r.Get("/branches", s.handleListBranches)
		r.Get("/branches/one", s.handleGetBranch)
		r.Post("/branches", s.handleCreateBranch)
		r.Patch("/branches", s.handleRenameBranch)
		r.Delete("/branches", s.handleDeleteBranch)

		r.Post("/branches/receive", s.handleReceive)
		r.Post("/branches/give", s.handleGive)
		r.Post("/branches/transaction", s.handleBranchTransfer)

		r.Get("/transactions", s.handleListTransactions)

		r.Get("/manager", s.handleListManagers)
		r.Post("/manager", s.handleCreateManager)
		r.Delete("/manager", s.handleDeleteManager)

		r.Get("/super-admin", s.handleGetAdmin)
		r.Post("/super-admin", s.handleCreateAdmin)
		r.Patch("/super-admin/profile", s.handleUpdateProfile)
		r.Patch("/super-admin/password/{token}", s.handleUpdatePassword)
		r.Patch("/super-admin/username/{token}", s.handleUpdateUsername)
	})
	return r
}

// allocID hands out sequential numeric ids, matching the backend's
// habit. Callers hold s.mu.
func (s *Server) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Server) findBranch(id int64) *branch {
	for _, b := range s.branches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Server) record(e ledgerEntry) {
	e.ID = s.allocID()
	e.CreatedAt = time.Now()
	if e.Status == "" {
		e.Status = models.StatusCompleted
	}
	s.ledger = append(s.ledger, e)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("access_token")
		s.mu.Lock()
		_, ok := s.sessions[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeFail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
