package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
	"github.com/Obkeldiyev/gold-front/pkg/ledger"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
	"github.com/Obkeldiyev/gold-front/pkg/session"
	"github.com/Obkeldiyev/gold-front/pkg/transfer"
)

// restoredMsg signals that session restore finished and routing may
// begin. Until it arrives the app is in its loading state and the
// auth gate must not redirect.
type restoredMsg struct{}

// loginDoneMsg carries the result of a login attempt.
type loginDoneMsg struct {
	err error
}

// loadDoneMsg carries the per-fetch outcome of a ledger load.
type loadDoneMsg struct {
	report ledger.Report
}

// opDoneMsg is the generic completion of a form-submitted mutation.
// The notice is shown on success, the error otherwise; either way the
// caches get reloaded.
type opDoneMsg struct {
	notice string
	err    error
}

// transferDoneMsg carries a finished transfer. Optimistic completions
// surface as successes, per the documented timeout policy.
type transferDoneMsg struct {
	result transfer.Result
	err    error
}

// authInvalidatedMsg wraps the gateway's auth-invalidated event for
// the bubbletea loop.
type authInvalidatedMsg struct {
	status int
}

// managersMsg carries the manager list for the managers page.
type managersMsg struct {
	managers []models.Manager
	err      error
}

// profileMsg carries the administrator profile for the profile page.
type profileMsg struct {
	profile *models.SuperAdmin
	err     error
}

// noticeFadeMsg clears the status notice after a short delay.
type noticeFadeMsg struct{}

const noticeFadeDelay = 4 * time.Second

func restoreCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Restore()
		return restoredMsg{}
	}
}

func loginCmd(store *session.Store, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.ReadTimeout)
		defer cancel()
		return loginDoneMsg{err: store.Login(ctx, username, password)}
	}
}

func loadCmd(view *ledger.View) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{report: view.Load(context.Background())}
	}
}

// waitInvalidation blocks on the gateway's event channel and re-arms
// after every delivery. Exactly one of these runs at a time, so the
// app is the single subscriber the design calls for.
func waitInvalidation(ch <-chan gateway.AuthInvalidated) tea.Cmd {
	return func() tea.Msg {
		ev := <-ch
		return authInvalidatedMsg{status: ev.Status}
	}
}

func loadManagersCmd(api *resources.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.ReadTimeout)
		defer cancel()
		managers, err := api.ListManagers(ctx)
		return managersMsg{managers: managers, err: err}
	}
}

func loadProfileCmd(api *resources.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gateway.ReadTimeout)
		defer cancel()
		profile, err := api.GetProfile(ctx)
		return profileMsg{profile: profile, err: err}
	}
}

func fadeNoticeCmd() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}
