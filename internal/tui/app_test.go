package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/controller"
	"github.com/diplomas-2025/agro-market/internal/mockapi/mockapitest"
	"github.com/diplomas-2025/agro-market/internal/nav"
	"github.com/diplomas-2025/agro-market/internal/session"
)

func TestStartsOnAuthWithoutSession(t *testing.T) {
	app := newTestApp(t)
	if got := app.Route(); got != nav.Auth() {
		t.Fatalf("start route = %+v, want auth", got)
	}
	if view := app.View(); !strings.Contains(view, "Sign in") {
		t.Fatalf("auth view missing title:\n%s", view)
	}
}

func TestStartsOnMainWithStoredSession(t *testing.T) {
	srv := mockapitest.New(t)
	sess := session.NewManager(session.NewMemoryStore())
	client := newClient(t, srv, sess)
	if err := controller.NewAuth(client, sess).SignIn(context.Background(), mockapitest.AdminEmail, mockapitest.AdminPassword); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	app := New(context.Background(), Deps{Gateway: client, Session: sess}, WithCursorMode(cursor.CursorStatic))
	if got := app.Route(); got != nav.Main(nav.TabHome) {
		t.Fatalf("start route = %+v, want main/home", got)
	}
	app = runCommands(t, app, app.Init())
	if got := len(app.main.Products()); got != 9 {
		t.Fatalf("loaded %d products, want 9", got)
	}
}

func TestSignInNavigatesToMain(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	if got := app.Route(); got != nav.Main(nav.TabHome) {
		t.Fatalf("route after sign-in = %+v", got)
	}
	if app.busy {
		t.Fatalf("app still busy after load")
	}
	if got := len(app.main.Products()); got != 9 {
		t.Fatalf("loaded %d products, want 9", got)
	}
	view := app.View()
	if !strings.Contains(view, "Tomato") || !strings.Contains(view, "(admin)") {
		t.Fatalf("main view missing catalogue or admin marker:\n%s", view)
	}
}

func TestSignInFailureStaysOnAuth(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, "wrong")

	if got := app.Route(); got != nav.Auth() {
		t.Fatalf("route = %+v, want auth", got)
	}
	if want := "Sign-in failed: invalid email or password"; app.status != want {
		t.Fatalf("status = %q, want %q", app.status, want)
	}
}

func TestSignUpMode(t *testing.T) {
	app := newTestApp(t)
	app = press(t, app, "ctrl+t")
	if !app.authForm.signUp || app.authForm.active != fieldUsername {
		t.Fatalf("ctrl+t should switch to sign-up with username focused")
	}
	app = press(t, app, "vera", "tab", "vera@example.com", "tab", "secret", "enter")

	if got := app.Route(); got != nav.Main(nav.TabHome) {
		t.Fatalf("route after sign-up = %+v", got)
	}
	if app.sess.Username() != "vera" || app.sess.IsAdmin() {
		t.Fatalf("unexpected session %q admin=%v", app.sess.Username(), app.sess.IsAdmin())
	}
}

func TestTabsCycle(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	app = press(t, app, "tab")
	if got := app.Route().Tab; got != nav.TabCart {
		t.Fatalf("tab = %v, want cart", got)
	}
	app = press(t, app, "tab", "tab")
	if got := app.Route().Tab; got != nav.TabHome {
		t.Fatalf("tab = %v, want home after wrapping", got)
	}
	app = press(t, app, "shift+tab")
	if got := app.Route().Tab; got != nav.TabOrders {
		t.Fatalf("tab = %v, want orders", got)
	}
}

func TestSearchFiltersHome(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	app = press(t, app, "/", "TOMATO", "enter")
	if app.searching {
		t.Fatalf("enter should leave search mode")
	}
	visible := app.main.Visible()
	if len(visible) != 1 || !strings.Contains(visible[0].Name, "Tomato") {
		t.Fatalf("visible = %+v", visible)
	}
}

func TestCheckoutMovesToOrders(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	// cheapest first: carrot seeds
	first := app.main.Visible()[0]
	app = press(t, app, "+", "+")
	if p, _ := app.main.Product(first.ID); p.CountInCart != 2 {
		t.Fatalf("count in cart = %d, want 2", p.CountInCart)
	}

	app = press(t, app, "tab", "o")
	if app.checkout == nil {
		t.Fatalf("checkout form not opened")
	}
	app = press(t, app, "enter", "enter")
	if app.checkout == nil || app.status == "" {
		t.Fatalf("blank checkout should keep the form open with a message")
	}

	app.checkout = nil
	app = press(t, app, "o", "Field st. 1", "enter", "+7 900 000", "enter")
	if app.checkout != nil {
		t.Fatalf("checkout form should close on success")
	}
	if got := app.Route(); got != nav.Main(nav.TabOrders) {
		t.Fatalf("route = %+v, want orders tab", got)
	}
	if len(app.main.Cart()) != 0 || len(app.main.Orders()) != 1 {
		t.Fatalf("cart=%d orders=%d", len(app.main.Cart()), len(app.main.Orders()))
	}
}

func TestDetailsReviewAndBack(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	id := app.main.Visible()[0].ID
	app = press(t, app, "enter")
	if got := app.Route(); got != nav.ProductDetails(id) {
		t.Fatalf("route = %+v, want details of %d", got, id)
	}
	if app.details == nil || !app.details.CanReview() {
		t.Fatalf("details should be loaded and reviewable")
	}

	app = press(t, app, "w", "3", "grew fast", "enter")
	if app.review != nil {
		t.Fatalf("review form should close after posting")
	}
	reviews := app.details.Reviews()
	if len(reviews) != 1 || reviews[0].Rating != 3 || reviews[0].Comment != "grew fast" {
		t.Fatalf("reviews = %+v", reviews)
	}
	if app.details.CanReview() {
		t.Fatalf("second review should be blocked")
	}

	app = press(t, app, "esc")
	if got := app.Route(); got != nav.Main(nav.TabHome) {
		t.Fatalf("route after back = %+v", got)
	}
}

func TestBackDuringActionReloadsMain(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	id := app.main.Visible()[0].ID
	app = press(t, app, "enter")

	model, addCmd := app.Update(keyMsg("+"))
	app = model.(*App)
	if !app.busy || addCmd == nil {
		t.Fatalf("add to cart should be in flight")
	}
	model, backCmd := app.Update(keyMsg("esc"))
	app = model.(*App)
	if got := app.Route(); got != nav.Main(nav.TabHome) {
		t.Fatalf("route after back = %+v", got)
	}

	app = runCommands(t, app, backCmd)
	app = runCommands(t, app, addCmd)

	if app.busy || app.pendingEnter {
		t.Fatalf("busy=%v pendingEnter=%v after settling", app.busy, app.pendingEnter)
	}
	p, ok := app.main.Product(id)
	if !ok || p.CountInCart != 1 {
		t.Fatalf("count in cart = %d (found %v), want 1", p.CountInCart, ok)
	}
	if cart := app.main.Cart(); len(cart) != 1 || cart[0].Product.ID != id {
		t.Fatalf("cart = %+v", cart)
	}
}

func TestStaleResultIsDropped(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	model, _ := app.Update(actionDoneMsg{
		route: nav.ProductDetails(99),
		kind:  kindLoad,
		err:   errors.New("boom"),
		text:  "Loading product failed: boom",
	})
	app = model.(*App)
	if app.status != "" {
		t.Fatalf("stale result leaked into status: %q", app.status)
	}
	if app.busy {
		t.Fatalf("stale result should still release the busy flag")
	}
}

func TestLogoutReturnsToAuth(t *testing.T) {
	app := newTestApp(t)
	app = signIn(t, app, mockapitest.AdminEmail, mockapitest.AdminPassword)

	app = press(t, app, "tab", "tab", "L")
	if got := app.Route(); got != nav.Auth() {
		t.Fatalf("route after logout = %+v", got)
	}
	if app.sess.Authenticated() {
		t.Fatalf("session should be cleared")
	}
	if app.nav.Depth() != 0 {
		t.Fatalf("history depth = %d, want empty", app.nav.Depth())
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	srv := mockapitest.New(t)
	sess := session.NewManager(session.NewMemoryStore())
	app := New(context.Background(), Deps{Gateway: newClient(t, srv, sess), Session: sess}, WithCursorMode(cursor.CursorStatic))
	return runCommands(t, app, app.Init())
}

func newClient(t *testing.T, srv *mockapitest.Server, sess *session.Manager) *api.Client {
	t.Helper()
	c, err := api.New(api.Config{BaseURL: srv.BaseURL(), Tokens: sess})
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	return c
}

func signIn(t *testing.T, app *App, email, password string) *App {
	t.Helper()
	return press(t, app, email, "tab", password, "enter")
}

// press feeds keys to the app one by one, running every resulting command
// before the next key. Multi-character strings other than key names are typed.
func press(t *testing.T, app *App, keys ...string) *App {
	t.Helper()
	for _, k := range keys {
		model, cmd := app.Update(keyMsg(k))
		app = runCommands(t, model, cmd)
	}
	return app
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			nextModel, nextCmd := app.Update(msg)
			if app, ok = nextModel.(*App); !ok {
				t.Fatalf("unexpected model type: %T", nextModel)
			}
			queue = append(queue, nextCmd)
		}
	}
	return app
}
