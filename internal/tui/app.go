// Package tui is the terminal storefront. It follows the Elm architecture of
// bubbletea: screen controllers hold the data, App routes keys and renders.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diplomas-2025/agro-market/internal/controller"
	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/nav"
	"github.com/diplomas-2025/agro-market/internal/session"
)

type Deps struct {
	Gateway controller.Gateway
	Session *session.Manager
	Logger  *slog.Logger
}

// actionDoneMsg reports a finished gateway call. route is the screen that
// issued it; results for a screen that is no longer shown are dropped.
type actionDoneMsg struct {
	route nav.Route
	kind  actionKind
	err   error
	text  string
}

// Option adjusts an App at construction time.
type Option func(*App)

// WithCursorMode sets the cursor mode of every text input.
func WithCursorMode(m cursor.Mode) Option {
	return func(a *App) { a.cursorMode = m }
}

type authDoneMsg struct {
	err  error
	text string
}

type actionKind int

const (
	kindAction actionKind = iota
	kindLoad
	kindCheckout
	kindReview
)

// App is the root bubbletea model.
type App struct {
	ctx  context.Context
	gw   controller.Gateway
	sess *session.Manager
	nav  *nav.Navigator

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	auth    *controller.Auth
	main    *controller.Main
	details *controller.Details

	authForm  authForm
	search    textinput.Model
	searching bool
	checkout  *checkoutForm
	review    *reviewForm

	homeCursor  int
	cartCursor  int
	orderCursor int

	cursorMode cursor.Mode

	// pendingEnter is set when a screen's entry fetch was refused because
	// another call was in flight.
	pendingEnter bool
	busy         bool
	status       string
	width        int
	height       int
}

func New(ctx context.Context, d Deps, opts ...Option) *App {
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	ctx = logging.IntoContext(ctx, logger)

	a := &App{
		ctx:      ctx,
		gw:       d.Gateway,
		sess:     d.Session,
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		auth:     controller.NewAuth(d.Gateway, d.Session),
		main:     controller.NewMain(d.Gateway, d.Session),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.authForm = newAuthForm(a.cursorMode)
	a.search = newInput(a.cursorMode, "/ ", "search products")
	a.nav = nav.New(nav.StartRoute(d.Session))
	return a
}

// Route is the screen currently shown.
func (a *App) Route() nav.Route { return a.nav.Current() }

func (a *App) Init() tea.Cmd {
	return a.enter()
}

// enter runs the one-shot fetch of the current screen.
func (a *App) enter() tea.Cmd {
	r := a.nav.Current()
	switch r.Screen {
	case nav.ScreenMain:
		return a.run(kindLoad, a.main.Load, a.main.Message)
	case nav.ScreenProductDetails:
		if a.details == nil || a.details.ProductID() != r.ProductID {
			a.details = controller.NewDetails(a.gw, a.sess, r.ProductID)
		}
		return a.run(kindLoad, a.details.Load, a.details.Message)
	default:
		return a.authForm.focus()
	}
}

// run starts fn in the background unless another call is in flight.
func (a *App) run(kind actionKind, fn func(context.Context) error, message func() string) tea.Cmd {
	if a.busy {
		if kind == kindLoad {
			a.pendingEnter = true
		}
		return nil
	}
	a.busy = true
	a.status = ""
	route := a.nav.Current()
	ctx := a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		err := fn(ctx)
		return actionDoneMsg{route: route, kind: kind, err: err, text: message()}
	})
}

// resumeEnter runs the entry fetch that was refused while busy. The current
// status message survives it.
func (a *App) resumeEnter() tea.Cmd {
	if !a.pendingEnter {
		return nil
	}
	a.pendingEnter = false
	status := a.status
	cmd := a.enter()
	a.status = status
	return cmd
}

func (a *App) navigate(r nav.Route) tea.Cmd {
	a.nav.Navigate(r)
	a.status = ""
	return a.enter()
}

func sameScreen(a, b nav.Route) bool {
	return a.Screen == b.Screen && a.ProductID == b.ProductID
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case authDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.status = msg.text
			return a, a.resumeEnter()
		}
		a.pendingEnter = false
		a.authForm.reset()
		a.main = controller.NewMain(a.gw, a.sess)
		return a, a.navigate(nav.Main(nav.TabHome))

	case actionDoneMsg:
		a.busy = false
		if !sameScreen(msg.route, a.nav.Current()) {
			return a, a.resumeEnter()
		}
		if msg.err != nil {
			a.status = msg.text
			return a, a.resumeEnter()
		}
		switch msg.kind {
		case kindCheckout:
			a.checkout = nil
			a.nav.SelectTab(nav.TabOrders)
		case kindReview:
			a.review = nil
		}
		a.clampCursors()
		return a, a.resumeEnter()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.nav.Current().Screen {
		case nav.ScreenAuth:
			return a, a.updateAuth(msg)
		case nav.ScreenMain:
			return a, a.updateMain(msg)
		case nav.ScreenProductDetails:
			return a, a.updateDetails(msg)
		}
	}

	return a, a.forwardToInputs(msg)
}

// forwardToInputs passes non-key messages such as cursor blinks to the focused input.
func (a *App) forwardToInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.nav.Current().Screen == nav.ScreenAuth:
		cmd = a.authForm.update(msg)
	case a.searching:
		a.search, cmd = a.search.Update(msg)
	case a.checkout != nil:
		cmd = a.checkout.update(msg)
	case a.review != nil:
		cmd = a.review.update(msg)
	}
	return cmd
}

func newInput(mode cursor.Mode, prompt, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.Cursor.SetMode(mode)
	return in
}

func (a *App) logout() tea.Cmd {
	if err := a.main.Logout(); err != nil {
		a.status = controller.Describe("Logout failed", err)
	}
	a.auth = controller.NewAuth(a.gw, a.sess)
	a.main = controller.NewMain(a.gw, a.sess)
	a.details = nil
	a.checkout = nil
	a.review = nil
	a.searching = false
	a.pendingEnter = false
	a.search.SetValue("")
	a.homeCursor, a.cartCursor, a.orderCursor = 0, 0, 0
	return a.navigate(nav.Auth())
}

func (a *App) clampCursors() {
	a.homeCursor = clamp(a.homeCursor, len(a.main.Visible()))
	a.cartCursor = clamp(a.cartCursor, len(a.main.Cart()))
	a.orderCursor = clamp(a.orderCursor, len(a.main.Orders()))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func moveCursor(k keyMap, msg tea.KeyMsg, cursor, n int) (int, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return clamp(cursor-1, n), true
	case key.Matches(msg, k.Down):
		return clamp(cursor+1, n), true
	}
	return cursor, false
}
