package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

const recentTransactions = 8

func (a *App) renderDashboard() string {
	totals := a.deps.Ledger.Totals()
	snap := a.snapshot()

	var b strings.Builder
	b.WriteString(styleHeader.Render("Totals"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Main balance   %s gr\n", styleAmount.Render(formatAmount(totals.MainBalance))))
	b.WriteString(fmt.Sprintf("  Branches (%d)   %s gr\n", len(snap.Branches), styleAmount.Render(formatAmount(totals.BranchTotal))))
	b.WriteString(fmt.Sprintf("  Company total  %s gr\n", styleAmount.Render(formatAmount(totals.CompanyTotal))))

	txs := a.deps.Ledger.Transactions(a.filter)
	b.WriteString("\n")
	b.WriteString(styleHeader.Render("Recent activity"))
	b.WriteString("\n")
	if len(txs) == 0 {
		b.WriteString(styleHelp.Render("  no transactions yet"))
		return b.String()
	}
	if len(txs) > recentTransactions {
		txs = txs[:recentTransactions]
	}
	for _, tx := range txs {
		b.WriteString("  " + transactionLine(tx) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// entryRow is the common display shape of income and outcome entries.
type entryRow struct {
	when   time.Time
	amount float64
	status models.Status
	image  string
}

// matches implements the balance-history free-text filter: the term
// runs over the formatted amount and the status.
func (e entryRow) matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(formatAmount(e.amount), term) ||
		strings.Contains(strings.ToLower(string(e.status)), term)
}

func (a *App) renderBalance() string {
	snap := a.snapshot()
	var b strings.Builder
	if snap.Balance == nil {
		b.WriteString(styleHelp.Render("no balance loaded, press r to reload"))
		return b.String()
	}

	b.WriteString(styleHeader.Render("Main balance"))
	b.WriteString("\n")
	b.WriteString("  " + styleAmount.Render(formatAmount(snap.Balance.Amount)+" gr"))
	b.WriteString("\n")
	if a.balanceSearch != "" {
		b.WriteString(styleHeader.Render("  Filter: ") + a.balanceSearch + "\n")
	}
	b.WriteString("\n")

	incomes := make([]entryRow, 0, len(snap.Balance.Incomes))
	for _, in := range snap.Balance.Incomes {
		row := entryRow{when: in.CreatedAt, amount: in.Amount, status: in.Status.OrCompleted(), image: in.Image}
		if row.matches(a.balanceSearch) {
			incomes = append(incomes, row)
		}
	}
	outcomes := make([]entryRow, 0, len(snap.Balance.Outcomes))
	for _, out := range snap.Balance.Outcomes {
		row := entryRow{when: out.CreatedAt, amount: out.Amount, status: out.Status.OrCompleted(), image: out.Image}
		if row.matches(a.balanceSearch) {
			outcomes = append(outcomes, row)
		}
	}

	a.renderEntries(&b, fmt.Sprintf("Incomes (%d)", len(incomes)), incomes, styleIncome, "+")
	b.WriteString("\n")
	a.renderEntries(&b, fmt.Sprintf("Outcomes (%d)", len(outcomes)), outcomes, styleOutcome, "-")
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderEntries(b *strings.Builder, header string, rows []entryRow, amountStyle lipgloss.Style, sign string) {
	b.WriteString(styleHeader.Render(header))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(styleHelp.Render("  none") + "\n")
		return
	}
	for _, row := range tail(rows, recentTransactions) {
		line := fmt.Sprintf("  %s %s%s gr  %s",
			row.when.Format("2006-01-02 15:04"),
			amountStyle.Render(sign),
			amountStyle.Render(formatAmount(row.amount)),
			statusStyle(string(row.status)).Render(string(row.status)))
		if row.image != "" {
			line += "  " + styleHelp.Render(a.deps.Gateway.AssetURL(row.image))
		}
		b.WriteString(line + "\n")
	}
}

func (a *App) renderBranches() string {
	branches := a.snapshot().Branches
	if len(branches) == 0 {
		return styleHelp.Render("no branches yet")
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("Branches (%d)", len(branches))))
	b.WriteString("\n")
	for i, branch := range branches {
		line := fmt.Sprintf("%-20s %12s gr", branch.Name, formatAmount(branch.Amount))
		if branch.Description != "" {
			line += "  " + styleHelp.Render(branch.Description)
		}
		if i == a.branchCursor {
			b.WriteString(styleSelected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderLedger() string {
	var b strings.Builder
	if line := a.filterLine(); line != "" {
		b.WriteString(styleHeader.Render("Filters: ") + line + "\n\n")
	}

	txs := a.deps.Ledger.Transactions(a.filter)
	if len(txs) == 0 {
		b.WriteString(styleHelp.Render("no matching transactions"))
		return b.String()
	}
	for _, tx := range txs {
		b.WriteString(transactionLine(tx) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) filterLine() string {
	var parts []string
	if a.filter.Search != "" {
		parts = append(parts, "search="+a.filter.Search)
	}
	if a.filter.Type != "" {
		parts = append(parts, "type="+string(a.filter.Type))
	}
	if a.filter.Branch != "" {
		parts = append(parts, "branch="+a.filter.Branch)
	}
	if a.filter.Status != "" {
		parts = append(parts, "status="+string(a.filter.Status))
	}
	if a.filter.From != nil || a.filter.To != nil {
		parts = append(parts, "dates="+formatDay(a.filter.From)+".."+formatDay(a.filter.To))
	}
	if a.filter.MinAmount != nil || a.filter.MaxAmount != nil {
		parts = append(parts, "amount="+formatBound(a.filter.MinAmount)+".."+formatBound(a.filter.MaxAmount))
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderManagers() string {
	if len(a.managers) == 0 {
		return styleHelp.Render("no managers yet")
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("Managers (%d)", len(a.managers))))
	b.WriteString("\n")
	for _, m := range a.managers {
		name := strings.TrimSpace(m.FirstName + " " + m.SecondName + " " + m.ThirdName)
		b.WriteString(fmt.Sprintf("  %-16s %s\n", m.Username, name))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderProfile() string {
	if a.profile == nil {
		return styleHelp.Render("loading profile...")
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Name      %s %s\n", a.profile.FirstName, a.profile.SecondName))
	b.WriteString(fmt.Sprintf("  Username  %s\n", a.profile.Username))
	b.WriteString(fmt.Sprintf("  Role      %s", a.profile.Role))
	return b.String()
}

// transactionLine is the one-line ledger rendering of a transaction,
// with the type-appropriate participant.
func transactionLine(tx models.Transaction) string {
	status := tx.Status.OrCompleted()
	var who string
	switch tx.Type {
	case models.TxBranchToBranch:
		who = tx.FromBranch + " → " + tx.ToBranch
	case models.TxBalanceToBranch:
		who = "balance → " + tx.BranchName
	case models.TxBranchToBalance:
		who = tx.BranchName + " → balance"
	case models.TxUgarLoss:
		who = tx.BranchName
		if tx.Reason != "" {
			who += " (" + tx.Reason + ")"
		}
	default:
		who = tx.Source
	}
	return fmt.Sprintf("%s  %-18s %10s gr  %-9s %s",
		tx.CreatedAt.Format("2006-01-02 15:04"),
		tx.Type,
		formatAmount(tx.Amount),
		statusStyle(string(status)).Render(string(status)),
		who)
}

// tail returns the newest n entries assuming append-order storage.
func tail[T any](entries []T, n int) []T {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
