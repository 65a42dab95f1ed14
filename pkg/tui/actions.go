package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/ledger"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
	"github.com/Obkeldiyev/gold-front/pkg/transfer"
)

func (a *App) openLoginForm() {
	a.form = newForm("Sign in", []formField{
		{label: "Username", placeholder: "username"},
		{label: "Password", placeholder: "password", secret: true},
	}, func(values []string) tea.Cmd {
		return loginCmd(a.deps.Session, values[0], values[1])
	})
}

// handlePageKey dispatches the per-page action keys. Mutating actions
// open a form; the form's submit handler builds the command.
func (a *App) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.page {
	case pageBalance:
		return a.handleBalanceKey(msg)
	case pageBranches:
		return a.handleBranchesKey(msg)
	case pageLedger:
		return a.handleLedgerKey(msg)
	case pageManagers:
		return a.handleManagersKey(msg)
	case pageProfile:
		return a.handleProfileKey(msg)
	}
	return a, nil
}

// --- balance page ---

func (a *App) handleBalanceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		a.openBalanceSearchForm()
	case "c":
		a.balanceSearch = ""
	case "i":
		if a.deps.Session.IsSuperAdmin() {
			a.openEntryForm("Add income", a.deps.Workflow.AddIncome)
		}
	case "o":
		if a.deps.Session.IsSuperAdmin() {
			a.openEntryForm("Add outcome", a.deps.Workflow.AddOutcome)
		}
	}
	return a, nil
}

func (a *App) openBalanceSearchForm() {
	a.form = newForm("Filter balance history", []formField{
		{label: "Text", initial: a.balanceSearch, placeholder: "amount or status"},
	}, func(values []string) tea.Cmd {
		a.balanceSearch = values[0]
		a.form = nil
		return nil
	})
}

func (a *App) openEntryForm(title string, record func(context.Context, float64, models.Status, *transfer.Attachment) error) {
	a.form = newForm(title, []formField{
		{label: "Amount (gr)", placeholder: "0.00"},
		{label: "Status", placeholder: "completed | pending", initial: "completed"},
		{label: "Evidence image path", placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		return func() tea.Msg {
			amount, err := parseAmount(values[0])
			if err != nil {
				return opDoneMsg{err: err}
			}
			status, err := parseEntryStatus(values[1])
			if err != nil {
				return opDoneMsg{err: err}
			}
			image, err := loadAttachment(values[2])
			if err != nil {
				return opDoneMsg{err: err}
			}
			err = record(context.Background(), amount, status, image)
			return opDoneMsg{notice: title + " recorded", err: err}
		}
	})
}

// --- branches page ---

func (a *App) handleBranchesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	branches := a.snapshot().Branches
	switch msg.String() {
	case "up", "k":
		if a.branchCursor > 0 {
			a.branchCursor--
		}
	case "down", "j":
		if a.branchCursor < len(branches)-1 {
			a.branchCursor++
		}
	case "t":
		if b := a.selectedBranch(); b != nil {
			a.openReceiveForm(b)
		}
	case "g":
		if b := a.selectedBranch(); b != nil {
			a.openGiveForm(b)
		}
	case "m":
		if len(branches) > 1 {
			a.openMoveForm()
		}
	case "a":
		if a.deps.Session.IsSuperAdmin() {
			a.openBranchCreateForm()
		}
	case "e":
		if b := a.selectedBranch(); b != nil && a.deps.Session.IsSuperAdmin() {
			a.openBranchRenameForm(b)
		}
	case "d":
		if b := a.selectedBranch(); b != nil && a.deps.Session.IsSuperAdmin() {
			return a, a.deleteBranchCmd(b)
		}
	}
	return a, nil
}

func (a *App) openReceiveForm(b *models.Branch) {
	a.form = newForm("Balance → "+b.Name, []formField{
		{label: "Amount (gr)", placeholder: "0.00"},
		{label: "Evidence image path", placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		branchID := b.ID
		return func() tea.Msg {
			amount, err := parseAmount(values[0])
			if err != nil {
				return transferDoneMsg{err: err}
			}
			image, err := loadAttachment(values[1])
			if err != nil {
				return transferDoneMsg{err: err}
			}
			result, err := a.deps.Workflow.BalanceToBranch(context.Background(), transfer.BalanceToBranchInput{
				Amount: amount, BranchID: branchID, Image: image,
			})
			return transferDoneMsg{result: result, err: err}
		}
	})
}

func (a *App) openGiveForm(b *models.Branch) {
	a.form = newForm(b.Name+" → Balance", []formField{
		{label: "Amount (gr)", placeholder: "0.00"},
		{label: "Ugar loss (gr)", placeholder: "0", initial: "0"},
		{label: "Loss reason", placeholder: "required when ugar > 0"},
		{label: "Evidence image path", placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		branchID := b.ID
		return func() tea.Msg {
			amount, err := parseAmount(values[0])
			if err != nil {
				return transferDoneMsg{err: err}
			}
			ugar := 0.0
			if values[1] != "" {
				if ugar, err = strconv.ParseFloat(values[1], 64); err != nil {
					return transferDoneMsg{err: fmt.Errorf("invalid ugar amount: %q", values[1])}
				}
			}
			image, err := loadAttachment(values[3])
			if err != nil {
				return transferDoneMsg{err: err}
			}
			result, err := a.deps.Workflow.BranchToBalance(context.Background(), transfer.BranchToBalanceInput{
				Amount: amount, BranchID: branchID, UgarAmount: ugar, Reason: values[2], Image: image,
			})
			return transferDoneMsg{result: result, err: err}
		}
	})
}

func (a *App) openMoveForm() {
	a.form = newForm("Branch → Branch", []formField{
		{label: "From branch name", placeholder: "source"},
		{label: "To branch name", placeholder: "destination"},
		{label: "Amount (gr)", placeholder: "0.00"},
		{label: "Evidence image path", placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		return func() tea.Msg {
			from := a.branchByName(values[0])
			to := a.branchByName(values[1])
			if from == nil || to == nil {
				return transferDoneMsg{err: transfer.ErrNoBranch}
			}
			amount, err := parseAmount(values[2])
			if err != nil {
				return transferDoneMsg{err: err}
			}
			image, err := loadAttachment(values[3])
			if err != nil {
				return transferDoneMsg{err: err}
			}
			result, err := a.deps.Workflow.BranchToBranch(context.Background(), transfer.BranchToBranchInput{
				Amount: amount, FromBranchID: from.ID, ToBranchID: to.ID, Image: image,
			})
			return transferDoneMsg{result: result, err: err}
		}
	})
}

func (a *App) openBranchCreateForm() {
	a.form = newForm("New branch", []formField{
		{label: "Name", placeholder: "branch name"},
		{label: "Description", placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		return a.mutationCmd("Branch created", func(ctx context.Context) error {
			return a.deps.API.CreateBranch(ctx, values[0], values[1])
		})
	})
}

func (a *App) openBranchRenameForm(b *models.Branch) {
	a.form = newForm("Rename "+b.Name, []formField{
		{label: "New name", initial: b.Name},
		{label: "Description", initial: b.Description},
	}, func(values []string) tea.Cmd {
		oldName := b.Name
		return a.mutationCmd("Branch updated", func(ctx context.Context) error {
			return a.deps.API.RenameBranch(ctx, oldName, values[0], values[1])
		})
	})
}

func (a *App) deleteBranchCmd(b *models.Branch) tea.Cmd {
	id, name := b.ID, b.Name
	return a.mutationCmd("Branch deleted", func(ctx context.Context) error {
		return a.deps.API.DeleteBranch(ctx, id, name)
	})
}

// --- ledger page ---

func (a *App) handleLedgerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		a.openSearchForm()
	case "f":
		a.filter.Type = nextTransactionType(a.filter.Type)
	case "s":
		a.filter.Status = nextStatus(a.filter.Status)
	case "b":
		a.openBranchFilterForm()
	case "d":
		a.openDateRangeForm()
	case "a":
		a.openAmountRangeForm()
	case "c":
		a.filter = ledger.Filter{}
	}
	return a, nil
}

func (a *App) openSearchForm() {
	a.form = newForm("Search transactions", []formField{
		{label: "Text", initial: a.filter.Search},
	}, func(values []string) tea.Cmd {
		a.filter.Search = values[0]
		a.form = nil
		return nil
	})
}

func (a *App) openBranchFilterForm() {
	a.form = newForm("Filter by branch", []formField{
		{label: "Branch name", initial: a.filter.Branch},
	}, func(values []string) tea.Cmd {
		a.filter.Branch = values[0]
		a.form = nil
		return nil
	})
}

func (a *App) openDateRangeForm() {
	a.form = newForm("Filter by date", []formField{
		{label: "From (YYYY-MM-DD)", initial: formatDay(a.filter.From), placeholder: "optional"},
		{label: "To (YYYY-MM-DD)", initial: formatDay(a.filter.To), placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		from, err := parseDay(values[0])
		if err != nil {
			return func() tea.Msg { return opDoneMsg{err: err} }
		}
		to, err := parseDay(values[1])
		if err != nil {
			return func() tea.Msg { return opDoneMsg{err: err} }
		}
		if to != nil {
			// The bound is inclusive of the whole named day.
			end := to.Add(24*time.Hour - time.Nanosecond)
			to = &end
		}
		a.filter.From, a.filter.To = from, to
		a.form = nil
		return nil
	})
}

func (a *App) openAmountRangeForm() {
	a.form = newForm("Filter by amount", []formField{
		{label: "Min amount (gr)", initial: formatBound(a.filter.MinAmount), placeholder: "optional"},
		{label: "Max amount (gr)", initial: formatBound(a.filter.MaxAmount), placeholder: "optional"},
	}, func(values []string) tea.Cmd {
		low, err := parseBound(values[0])
		if err != nil {
			return func() tea.Msg { return opDoneMsg{err: err} }
		}
		high, err := parseBound(values[1])
		if err != nil {
			return func() tea.Msg { return opDoneMsg{err: err} }
		}
		a.filter.MinAmount, a.filter.MaxAmount = low, high
		a.form = nil
		return nil
	})
}

var typeCycle = []models.TransactionType{
	"", models.TxIncome, models.TxOutcome, models.TxBalanceToBranch,
	models.TxBranchToBalance, models.TxBranchToBranch, models.TxUgarLoss,
}

func nextTransactionType(current models.TransactionType) models.TransactionType {
	for i, t := range typeCycle {
		if t == current {
			return typeCycle[(i+1)%len(typeCycle)]
		}
	}
	return ""
}

var statusCycle = []models.Status{"", models.StatusCompleted, models.StatusPending, models.StatusFailed}

func nextStatus(current models.Status) models.Status {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ""
}

// --- managers page ---

func (a *App) handleManagersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		a.openManagerCreateForm()
	case "d":
		a.openManagerDeleteForm()
	}
	return a, nil
}

func (a *App) openManagerCreateForm() {
	a.form = newForm("New manager", []formField{
		{label: "First name"},
		{label: "Second name"},
		{label: "Third name", placeholder: "optional"},
		{label: "Username"},
		{label: "Password", secret: true},
	}, func(values []string) tea.Cmd {
		return a.mutationCmd("Manager created", func(ctx context.Context) error {
			return a.deps.API.CreateManager(ctx, resources.NewManager{
				FirstName: values[0], SecondName: values[1], ThirdName: values[2],
				Username: values[3], Password: values[4],
			})
		})
	})
}

func (a *App) openManagerDeleteForm() {
	a.form = newForm("Delete manager", []formField{
		{label: "Username"},
	}, func(values []string) tea.Cmd {
		return a.mutationCmd("Manager deleted", func(ctx context.Context) error {
			return a.deps.API.DeleteManager(ctx, values[0])
		})
	})
}

// --- profile page ---

func (a *App) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		a.form = newForm("Update names", []formField{
			{label: "First name"},
			{label: "Second name"},
		}, func(values []string) tea.Cmd {
			return a.mutationCmd("Profile updated", func(ctx context.Context) error {
				return a.deps.API.UpdateProfile(ctx, values[0], values[1])
			})
		})
	case "p":
		a.form = newForm("Change password", []formField{
			{label: "Old password", secret: true},
			{label: "New password", secret: true},
		}, func(values []string) tea.Cmd {
			return a.mutationCmd("Password updated", func(ctx context.Context) error {
				return a.deps.API.UpdatePassword(ctx, values[0], values[1])
			})
		})
	case "u":
		a.form = newForm("Change username", []formField{
			{label: "Old username"},
			{label: "New username"},
		}, func(values []string) tea.Cmd {
			return a.mutationCmd("Username updated", func(ctx context.Context) error {
				return a.deps.API.UpdateUsername(ctx, values[0], values[1])
			})
		})
	case "A":
		a.form = newForm("New admin", []formField{
			{label: "First name"},
			{label: "Second name"},
			{label: "Username"},
			{label: "Password", secret: true},
		}, func(values []string) tea.Cmd {
			return a.mutationCmd("Admin created", func(ctx context.Context) error {
				return a.deps.API.CreateAdmin(ctx, resources.NewAdmin{
					FirstName: values[0], SecondName: values[1],
					Username: values[2], Password: values[3],
				})
			})
		})
	}
	return a, nil
}

// --- shared helpers ---

// mutationCmd wraps a bounded mutating call into an opDoneMsg.
func (a *App) mutationCmd(notice string, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.ReadTimeout)
		defer cancel()
		return opDoneMsg{notice: notice, err: call(ctx)}
	}
}

func (a *App) branchByName(name string) *models.Branch {
	branches := a.snapshot().Branches
	for i := range branches {
		if strings.EqualFold(branches[i].Name, name) {
			return &branches[i]
		}
	}
	return nil
}

// parseDay parses a YYYY-MM-DD filter bound. Empty means unbounded.
func parseDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return &day, nil
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// parseBound parses an amount filter bound. Empty means unbounded.
func parseBound(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount < 0 {
		return nil, fmt.Errorf("invalid amount %q", raw)
	}
	return &amount, nil
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// parseEntryStatus accepts the two states a manual entry can be
// recorded in. An empty field means completed.
func parseEntryStatus(raw string) (models.Status, error) {
	switch status := models.Status(strings.ToLower(strings.TrimSpace(raw))); status {
	case "", models.StatusCompleted:
		return models.StatusCompleted, nil
	case models.StatusPending:
		return models.StatusPending, nil
	default:
		return "", fmt.Errorf("invalid status %q: want completed or pending", raw)
	}
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || amount <= 0 {
		return 0, transfer.ErrNonPositiveAmount
	}
	return amount, nil
}

// loadAttachment reads an evidence image from disk. An empty path means
// no attachment. Validation happens in the workflow.
func loadAttachment(path string) (*transfer.Attachment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &transfer.Attachment{
		Name:    filepath.Base(path),
		MIME:    mimeType,
		Content: content,
	}, nil
}
