package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/diplomas-2025/agro-market/internal/nav"
)

func (a *App) View() string {
	header := titleStyle.Render("AGRO MARKET")
	if a.sess.Authenticated() {
		who := a.sess.Username()
		if a.sess.IsAdmin() {
			who += " (admin)"
		}
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", mutedStyle.Render(who))
	}

	var body string
	switch a.nav.Current().Screen {
	case nav.ScreenAuth:
		body = a.viewAuth()
	case nav.ScreenMain:
		body = a.viewMain()
	case nav.ScreenProductDetails:
		body = a.viewDetails()
	}

	var footer []string
	if a.busy {
		footer = append(footer, a.spinner.View()+" working...")
	}
	if a.status != "" {
		footer = append(footer, errorStyle.Render(a.status))
	}
	footer = append(footer, a.help.ShortHelpView(a.bindings()))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", strings.Join(footer, "\n"))
}

// bindings are the keys shown in the footer for the current screen.
func (a *App) bindings() []key.Binding {
	k := a.keys
	r := a.nav.Current()
	switch r.Screen {
	case nav.ScreenAuth:
		return []key.Binding{k.ToggleAuthMode, k.Submit, k.Quit}
	case nav.ScreenProductDetails:
		return []key.Binding{k.Back, k.Plus, k.Minus, k.Favorite, k.Review}
	}
	switch r.Tab {
	case nav.TabCart:
		return []key.Binding{k.NextTab, k.Plus, k.Minus, k.Remove, k.Checkout, k.Quit}
	case nav.TabOrders:
		if a.main.IsAdmin() {
			return []key.Binding{k.NextTab, k.Status, k.Logout, k.Quit}
		}
		return []key.Binding{k.NextTab, k.Logout, k.Quit}
	}
	return []key.Binding{k.NextTab, k.Open, k.Plus, k.Minus, k.Favorite, k.Search, k.Sort, k.Category, k.FavoritesOnly, k.Quit}
}
