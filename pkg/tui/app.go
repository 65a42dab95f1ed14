// Package tui is the terminal dashboard: one top-level model that owns
// navigation, enforces the authorization gate and hosts the pages.
// It is also the single subscriber to the gateway's auth-invalidated
// events, so the redirect to the login page happens in exactly one
// place.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Obkeldiyev/gold-front/pkg/cache"
	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/ledger"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
	"github.com/Obkeldiyev/gold-front/pkg/session"
	"github.com/Obkeldiyev/gold-front/pkg/transfer"
)

// page identifies which view is active.
type page int

const (
	pageLogin page = iota
	pageDashboard
	pageBalance
	pageBranches
	pageLedger
	pageManagers
	pageProfile
)

var pageTitles = map[page]string{
	pageLogin:     "Login",
	pageDashboard: "Dashboard",
	pageBalance:   "Balance",
	pageBranches:  "Branches",
	pageLedger:    "Transactions",
	pageManagers:  "Managers",
	pageProfile:   "Profile",
}

// superAdminPages need the super-admin role; the gate hides them from
// managers entirely.
var superAdminPages = map[page]bool{
	pageManagers: true,
	pageProfile:  true,
}

// Deps is everything the dashboard needs, injected by main.
type Deps struct {
	Session  *session.Store
	API      *resources.Client
	Workflow *transfer.Workflow
	Ledger   *ledger.View
	Caches   *cache.Store
	Gateway  *gateway.Client
	Logger   *slog.Logger
}

// App is the root bubbletea model.
type App struct {
	deps Deps

	page     page
	restored bool
	loading  bool

	form          *form
	branchCursor  int
	filter        ledger.Filter
	balanceSearch string
	managers      []models.Manager
	profile       *models.SuperAdmin

	notice      string
	noticeIsErr bool

	width  int
	height int
}

// NewApp creates the dashboard model.
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &App{deps: deps, page: pageLogin}
}

// Init restores the session and arms the auth-invalidation listener.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		restoreCmd(a.deps.Session),
		waitInvalidation(a.deps.Gateway.Invalidations()),
	)
}

// Update routes messages: global results first, then the active form,
// then page key handling.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case restoredMsg:
		a.restored = true
		if a.deps.Session.IsAuthenticated() {
			a.page = pageDashboard
			a.loading = true
			return a, loadCmd(a.deps.Ledger)
		}
		a.page = pageLogin
		a.openLoginForm()
		return a, nil

	case loginDoneMsg:
		if a.form != nil {
			a.form.busy = false
		}
		if msg.err != nil {
			return a, a.setError(loginFailureText(msg.err))
		}
		a.form = nil
		a.page = pageDashboard
		a.loading = true
		return a, loadCmd(a.deps.Ledger)

	case loadDoneMsg:
		a.loading = false
		if !msg.report.Complete() {
			// Partial success: render what arrived, note the rest.
			return a, a.setError("some data failed to load, press r to retry")
		}
		return a, nil

	case opDoneMsg:
		if a.form != nil {
			a.form.busy = false
		}
		if msg.err != nil {
			return a, a.setError(failureText(msg.err))
		}
		a.form = nil
		return a, tea.Batch(a.setNotice(msg.notice), loadCmd(a.deps.Ledger), a.pageDataCmd())

	case transferDoneMsg:
		if a.form != nil {
			a.form.busy = false
		}
		if msg.err != nil {
			// The workflow already refreshed the caches; a failure
			// response is not proof nothing moved.
			return a, a.setError(failureText(msg.err))
		}
		a.form = nil
		notice := fmt.Sprintf("Transfer successful: %s gr", formatAmount(msg.result.FinalAmount))
		if msg.result.Optimistic {
			notice = fmt.Sprintf("Transfer submitted: %s gr (no acknowledgment yet, balances refreshed)", formatAmount(msg.result.FinalAmount))
		}
		return a, a.setNotice(notice)

	case authInvalidatedMsg:
		// Session already purged by the gateway. Redirect once, then
		// re-arm the listener.
		cmds := []tea.Cmd{waitInvalidation(a.deps.Gateway.Invalidations())}
		if a.page != pageLogin {
			a.page = pageLogin
			a.form = nil
			a.openLoginForm()
			cmds = append(cmds, a.setError("session expired, please sign in again"))
		}
		return a, tea.Batch(cmds...)

	case managersMsg:
		if msg.err != nil {
			return a, a.setError(failureText(msg.err))
		}
		a.managers = msg.managers
		return a, nil

	case profileMsg:
		if msg.err != nil {
			return a, a.setError(failureText(msg.err))
		}
		a.profile = msg.profile
		return a, nil

	case noticeFadeMsg:
		a.notice = ""
		return a, nil
	}

	if a.form != nil {
		cmd, keep := a.form.Update(msg)
		if !keep {
			a.form = nil
			if a.page == pageLogin {
				// The login page has nothing behind the form.
				a.openLoginForm()
			}
		}
		return a, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(keyMsg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "r":
		if a.page != pageLogin {
			a.loading = true
			return a, loadCmd(a.deps.Ledger)
		}
	case "ctrl+l":
		if a.page != pageLogin {
			a.deps.Session.Logout()
			a.page = pageLogin
			a.openLoginForm()
			return a, nil
		}
	}

	if a.page == pageLogin {
		return a, nil
	}

	// Number keys navigate; the gate filters what is reachable.
	if target, ok := pageForKey(msg.String()); ok {
		if a.allowed(target) {
			a.page = target
			a.branchCursor = 0
			return a, a.pageDataCmd()
		}
		return a, nil
	}

	return a.handlePageKey(msg)
}

// pageDataCmd fetches the data the active page needs beyond the shared
// caches. Most pages need nothing extra.
func (a *App) pageDataCmd() tea.Cmd {
	switch a.page {
	case pageManagers:
		return loadManagersCmd(a.deps.API)
	case pageProfile:
		return loadProfileCmd(a.deps.API)
	default:
		return nil
	}
}

func pageForKey(key string) (page, bool) {
	switch key {
	case "1":
		return pageDashboard, true
	case "2":
		return pageBalance, true
	case "3":
		return pageBranches, true
	case "4":
		return pageLedger, true
	case "5":
		return pageManagers, true
	case "6":
		return pageProfile, true
	default:
		return 0, false
	}
}

// allowed is the route-level authorization check.
func (a *App) allowed(p page) bool {
	if !a.deps.Session.IsAuthenticated() {
		return p == pageLogin
	}
	if superAdminPages[p] {
		return a.deps.Session.IsSuperAdmin()
	}
	return true
}

// View renders the active page under the tab bar, with the status line
// below.
func (a *App) View() string {
	if !a.restored {
		return stylePending.Render("loading session...")
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	if a.form != nil {
		b.WriteString(a.form.View())
	} else {
		switch a.page {
		case pageDashboard:
			b.WriteString(a.renderDashboard())
		case pageBalance:
			b.WriteString(a.renderBalance())
		case pageBranches:
			b.WriteString(a.renderBranches())
		case pageLedger:
			b.WriteString(a.renderLedger())
		case pageManagers:
			b.WriteString(a.renderManagers())
		case pageProfile:
			b.WriteString(a.renderProfile())
		}
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	return b.String()
}

func (a *App) renderHeader() string {
	title := styleTitle.Render("⬨ Gold Front")
	if a.page == pageLogin {
		return title
	}
	tabs := []string{title}
	for _, p := range []page{pageDashboard, pageBalance, pageBranches, pageLedger, pageManagers, pageProfile} {
		if !a.allowed(p) {
			continue
		}
		label := fmt.Sprintf("%d %s", int(p), pageTitles[p])
		if p == a.page {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (a *App) renderStatus() string {
	switch {
	case a.loading:
		return stylePending.Render("loading...")
	case a.notice != "" && a.noticeIsErr:
		return styleError.Render(a.notice)
	case a.notice != "":
		return styleNotice.Render(a.notice)
	default:
		return styleHelp.Render(a.pageHelp())
	}
}

func (a *App) pageHelp() string {
	switch a.page {
	case pageLogin:
		return "enter: sign in · ctrl+c: quit"
	case pageBalance:
		if a.deps.Session.IsSuperAdmin() {
			return "i: income · o: outcome · /: filter · c: clear · r: reload"
		}
		return "/: filter · c: clear · r: reload · q: quit"
	case pageBranches:
		help := "↑/↓: select · t: to branch · g: to balance · m: between branches"
		if a.deps.Session.IsSuperAdmin() {
			help += " · a: add · e: rename · d: delete"
		}
		return help + " · r: reload"
	case pageLedger:
		return "/: search · f: type · s: status · b: branch · d: dates · a: amount · c: clear · r: reload"
	case pageManagers:
		return "a: add manager · d: delete · r: reload"
	case pageProfile:
		return "n: names · p: password · u: username · A: new admin"
	default:
		return "1-6: pages · r: reload · ctrl+l: logout · q: quit"
	}
}

func (a *App) setNotice(text string) tea.Cmd {
	a.notice = text
	a.noticeIsErr = false
	return fadeNoticeCmd()
}

func (a *App) setError(text string) tea.Cmd {
	a.notice = text
	a.noticeIsErr = true
	return fadeNoticeCmd()
}

// loginFailureText picks the user-facing login failure message: the
// server-provided reason when there is one, a generic fallback
// otherwise.
func loginFailureText(err error) string {
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return "invalid credentials"
}

// failureText converts an operation error to user-facing text.
// Validation errors read as-is; gateway failures prefer the server's
// message.
func failureText(err error) string {
	if gateway.IsTimeout(err) {
		return "request timed out, please try again"
	}
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func (a *App) snapshot() cache.Snapshot {
	return a.deps.Caches.Current()
}

func (a *App) selectedBranch() *models.Branch {
	branches := a.snapshot().Branches
	if len(branches) == 0 {
		return nil
	}
	if a.branchCursor >= len(branches) {
		a.branchCursor = len(branches) - 1
	}
	return &branches[a.branchCursor]
}
