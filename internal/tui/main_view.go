package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diplomas-2025/agro-market/internal/models"
	"github.com/diplomas-2025/agro-market/internal/nav"
)

type checkoutForm struct {
	address textinput.Model
	phone   textinput.Model
	onPhone bool
}

func newCheckoutForm(mode cursor.Mode) *checkoutForm {
	return &checkoutForm{
		address: newInput(mode, "Address: ", "delivery address"),
		phone:   newInput(mode, "Phone:   ", "+7 ..."),
	}
}

func (f *checkoutForm) focus() tea.Cmd {
	if f.onPhone {
		f.address.Blur()
		return f.phone.Focus()
	}
	f.phone.Blur()
	return f.address.Focus()
}

func (f *checkoutForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.onPhone {
		f.phone, cmd = f.phone.Update(msg)
	} else {
		f.address, cmd = f.address.Update(msg)
	}
	return cmd
}

func (a *App) updateMain(msg tea.KeyMsg) tea.Cmd {
	if a.searching {
		switch msg.String() {
		case "esc", "enter":
			a.searching = false
			a.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.main.SetSearch(a.search.Value())
		a.homeCursor = 0
		return cmd
	}
	if a.checkout != nil {
		return a.updateCheckout(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.NextTab):
		a.nav.SelectTab(nav.Tabs[(int(a.nav.Current().Tab)+1)%len(nav.Tabs)])
		return nil
	case key.Matches(msg, a.keys.PrevTab):
		a.nav.SelectTab(nav.Tabs[(int(a.nav.Current().Tab)+len(nav.Tabs)-1)%len(nav.Tabs)])
		return nil
	case key.Matches(msg, a.keys.Reload):
		return a.enter()
	case key.Matches(msg, a.keys.Logout):
		return a.logout()
	}

	switch a.nav.Current().Tab {
	case nav.TabHome:
		return a.updateHome(msg)
	case nav.TabCart:
		return a.updateCart(msg)
	case nav.TabOrders:
		return a.updateOrders(msg)
	}
	return nil
}

func (a *App) updateHome(msg tea.KeyMsg) tea.Cmd {
	m := a.main
	visible := a.main.Visible()
	if c, ok := moveCursor(a.keys, msg, a.homeCursor, len(visible)); ok {
		a.homeCursor = c
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		return a.search.Focus()
	case key.Matches(msg, a.keys.Sort):
		a.main.SetSort(a.main.Filter().Sort.Next())
		return nil
	case key.Matches(msg, a.keys.FavoritesOnly):
		a.main.ToggleFavoritesOnly()
		a.homeCursor = 0
		return nil
	case key.Matches(msg, a.keys.Category):
		a.main.SelectCategory(nextCategory(a.main.Categories(), a.main.Filter().CategoryID))
		a.homeCursor = 0
		return nil
	}

	if len(visible) == 0 {
		return nil
	}
	id := visible[clamp(a.homeCursor, len(visible))].ID
	switch {
	case key.Matches(msg, a.keys.Open):
		return a.navigate(nav.ProductDetails(id))
	case key.Matches(msg, a.keys.Plus):
		return a.run(kindAction, func(ctx context.Context) error { return m.Increment(ctx, id) }, m.Message)
	case key.Matches(msg, a.keys.Minus):
		return a.run(kindAction, func(ctx context.Context) error { return m.Decrement(ctx, id) }, m.Message)
	case key.Matches(msg, a.keys.Favorite):
		return a.run(kindAction, func(ctx context.Context) error { return m.ToggleFavorite(ctx, id) }, m.Message)
	}
	return nil
}

// nextCategory cycles through the categories and then back to "all" (0).
func nextCategory(cs []models.Category, current int) int {
	if len(cs) == 0 {
		return 0
	}
	if current == 0 {
		return cs[0].ID
	}
	for i, c := range cs {
		if c.ID == current {
			if i+1 < len(cs) {
				return cs[i+1].ID
			}
			// selecting the current id again clears the filter
			return current
		}
	}
	return cs[0].ID
}

func (a *App) updateCart(msg tea.KeyMsg) tea.Cmd {
	m := a.main
	cart := a.main.Cart()
	if c, ok := moveCursor(a.keys, msg, a.cartCursor, len(cart)); ok {
		a.cartCursor = c
		return nil
	}
	if len(cart) == 0 {
		return nil
	}
	id := cart[clamp(a.cartCursor, len(cart))].Product.ID
	switch {
	case key.Matches(msg, a.keys.Plus):
		return a.run(kindAction, func(ctx context.Context) error { return m.CartIncrement(ctx, id) }, m.Message)
	case key.Matches(msg, a.keys.Minus):
		return a.run(kindAction, func(ctx context.Context) error { return m.CartDecrement(ctx, id) }, m.Message)
	case key.Matches(msg, a.keys.Remove):
		return a.run(kindAction, func(ctx context.Context) error { return m.RemoveFromCart(ctx, id) }, m.Message)
	case key.Matches(msg, a.keys.Open):
		return a.navigate(nav.ProductDetails(id))
	case key.Matches(msg, a.keys.Checkout):
		a.checkout = newCheckoutForm(a.cursorMode)
		return a.checkout.focus()
	}
	return nil
}

func (a *App) updateCheckout(msg tea.KeyMsg) tea.Cmd {
	f, m := a.checkout, a.main
	switch msg.String() {
	case "esc":
		a.checkout = nil
		return nil
	case "tab", "shift+tab", "up", "down":
		f.onPhone = !f.onPhone
		return f.focus()
	case "enter":
		if !f.onPhone {
			f.onPhone = true
			return f.focus()
		}
		address, phone := f.address.Value(), f.phone.Value()
		return a.run(kindCheckout, func(ctx context.Context) error { return m.Checkout(ctx, address, phone) }, m.Message)
	}
	return f.update(msg)
}

func (a *App) updateOrders(msg tea.KeyMsg) tea.Cmd {
	m := a.main
	orders := a.main.Orders()
	if c, ok := moveCursor(a.keys, msg, a.orderCursor, len(orders)); ok {
		a.orderCursor = c
		return nil
	}
	if len(orders) == 0 || !key.Matches(msg, a.keys.Status) {
		return nil
	}
	o := orders[clamp(a.orderCursor, len(orders))]
	next := nextStatus(o.Status)
	return a.run(kindAction, func(ctx context.Context) error { return m.SetOrderStatus(ctx, o.ID, next) }, m.Message)
}

func nextStatus(s models.OrderStatus) models.OrderStatus {
	for i, st := range models.OrderStatuses {
		if st == s {
			return models.OrderStatuses[(i+1)%len(models.OrderStatuses)]
		}
	}
	return models.OrderStatuses[0]
}

func (a *App) viewMain() string {
	current := a.nav.Current().Tab
	var tabs []string
	for _, t := range nav.Tabs {
		label := t.Title()
		if t == nav.TabCart {
			if n := len(a.main.Cart()); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if t == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case a.main.Loading():
		body = a.spinner.View() + " loading..."
	case current == nav.TabHome:
		body = a.viewHome()
	case current == nav.TabCart:
		body = a.viewCart()
	case current == nav.TabOrders:
		body = a.viewOrders()
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, "", body)
}

func (a *App) viewHome() string {
	var b strings.Builder
	f := a.main.Filter()

	category := "all categories"
	for _, c := range a.main.Categories() {
		if c.ID == f.CategoryID {
			category = c.Name
		}
	}
	filters := []string{f.Sort.Label(), category}
	if f.FavoritesOnly {
		filters = append(filters, "favorites only")
	}
	if a.searching || f.Search != "" {
		b.WriteString(a.search.View() + "\n")
	}
	b.WriteString(mutedStyle.Render(strings.Join(filters, " · ")) + "\n\n")

	visible := a.main.Visible()
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("Nothing matches the current filter."))
		return b.String()
	}
	for i, p := range visible {
		b.WriteString(renderProductLine(p, i == a.homeCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func renderProductLine(p models.Product, selected bool) string {
	fav := " "
	if p.Favorite {
		fav = "♥"
	}
	line := fmt.Sprintf("%s %-36s %12s  stock %-4d", fav, p.Name, models.FormatPrice(p.Price), p.Stock)
	if p.CountInCart > 0 {
		line += fmt.Sprintf("  in cart: %d", p.CountInCart)
	}
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func (a *App) viewCart() string {
	cart := a.main.Cart()
	if len(cart) == 0 {
		return mutedStyle.Render("Your cart is empty.")
	}
	var b strings.Builder
	for i, e := range cart {
		line := fmt.Sprintf("%-36s %3d × %10s = %12s", e.Product.Name, e.Quantity,
			models.FormatPrice(e.Product.Price), models.FormatPrice(e.Subtotal()))
		if i == a.cartCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + titleStyle.Render("Total: "+models.FormatPrice(a.main.CartTotal())))
	if a.checkout != nil {
		form := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Checkout"),
			a.checkout.address.View(),
			a.checkout.phone.View(),
			mutedStyle.Render("enter to confirm · esc to cancel"),
		)
		b.WriteString("\n" + boxStyle.Render(form))
	}
	return b.String()
}

func (a *App) viewOrders() string {
	orders := a.main.Orders()
	if len(orders) == 0 {
		return mutedStyle.Render("No orders yet.")
	}
	admin := a.main.IsAdmin()
	var b strings.Builder
	for i, o := range orders {
		head := fmt.Sprintf("#%d  %-10s %12s  %s", o.ID, o.Status.Label(), models.FormatPrice(o.TotalPrice), o.CreatedAtDisplay())
		if admin {
			head += "  " + o.User.Username
		}
		if i == a.orderCursor {
			b.WriteString(selectedStyle.Render("> " + head))
		} else {
			b.WriteString("  " + head)
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    %s, %s", o.Address, o.Phone)) + "\n")
		for _, it := range o.OrderItems {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("    %s × %d  %s", it.Product.Name, it.Quantity, models.FormatPrice(it.Price))) + "\n")
		}
	}
	return b.String()
}
