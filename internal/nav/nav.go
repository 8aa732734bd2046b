// Package nav routes between the auth screen, the tabbed main screen and
// product details.
package nav

import "fmt"

type Screen int

const (
	ScreenAuth Screen = iota
	ScreenMain
	ScreenProductDetails
)

type Tab int

const (
	TabHome Tab = iota
	TabCart
	TabOrders
)

var Tabs = []Tab{TabHome, TabCart, TabOrders}

func (t Tab) Title() string {
	switch t {
	case TabHome:
		return "Home"
	case TabCart:
		return "Cart"
	case TabOrders:
		return "Orders"
	default:
		return "?"
	}
}

type Route struct {
	Screen    Screen
	Tab       Tab
	ProductID int
}

func (r Route) String() string {
	switch r.Screen {
	case ScreenAuth:
		return "auth"
	case ScreenMain:
		return "main/" + r.Tab.Title()
	case ScreenProductDetails:
		return fmt.Sprintf("products/%d", r.ProductID)
	default:
		return "unknown"
	}
}

func Auth() Route                 { return Route{Screen: ScreenAuth} }
func Main(tab Tab) Route          { return Route{Screen: ScreenMain, Tab: tab} }
func ProductDetails(id int) Route { return Route{Screen: ScreenProductDetails, ProductID: id} }

// Authenticator is the slice of the session the navigator needs.
type Authenticator interface {
	Valid() bool
}

func StartRoute(a Authenticator) Route {
	if a == nil || !a.Valid() {
		return Auth()
	}
	return Main(TabHome)
}

// Navigator keeps the current route and a back stack.
type Navigator struct {
	current Route
	stack   []Route
}

func New(start Route) *Navigator {
	return &Navigator{current: start}
}

func (n *Navigator) Current() Route { return n.current }

// Navigate pushes the current route and moves to r. Auth and Main are roots:
// reaching them clears the back stack.
func (n *Navigator) Navigate(r Route) {
	if r.Screen == ScreenAuth || r.Screen == ScreenMain {
		n.stack = n.stack[:0]
		n.current = r
		return
	}
	n.stack = append(n.stack, n.current)
	n.current = r
}

// SelectTab switches tabs on the main screen without touching the stack.
func (n *Navigator) SelectTab(t Tab) {
	if n.current.Screen != ScreenMain {
		return
	}
	n.current.Tab = t
}

// Back pops one route. It reports false when there is nowhere to go.
func (n *Navigator) Back() bool {
	if len(n.stack) == 0 {
		return false
	}
	n.current = n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

func (n *Navigator) Depth() int { return len(n.stack) }
