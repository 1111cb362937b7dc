package navigation

// Tab is one of the bottom tabs of the main subtree.
type Tab int

const (
	TabHome Tab = iota
	TabOrders
	TabProfile
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabHome, TabOrders, TabProfile}

func (t Tab) String() string {
	switch t {
	case TabOrders:
		return "Orders"
	case TabProfile:
		return "Profile"
	default:
		return "Home"
	}
}

// MainNav is the navigator state of the main subtree: the active tab and
// whether the drawer is open.
type MainNav struct {
	active     Tab
	drawerOpen bool
}

// NewMainNav returns a navigator on the Home tab with the drawer closed.
func NewMainNav() *MainNav { return &MainNav{active: TabHome} }

// Active returns the selected tab.
func (n *MainNav) Active() Tab { return n.active }

// SelectTab switches to t. Unknown tabs are ignored.
func (n *MainNav) SelectTab(t Tab) {
	if t < TabHome || t > TabProfile {
		return
	}
	n.active = t
}

// NextTab moves to the following tab, wrapping around.
func (n *MainNav) NextTab() {
	n.active = Tab((int(n.active) + 1) % len(Tabs))
}

// PrevTab moves to the preceding tab, wrapping around.
func (n *MainNav) PrevTab() {
	n.active = Tab((int(n.active) + len(Tabs) - 1) % len(Tabs))
}

// DrawerOpen reports whether the drawer is shown.
func (n *MainNav) DrawerOpen() bool { return n.drawerOpen }

func (n *MainNav) OpenDrawer()   { n.drawerOpen = true }
func (n *MainNav) CloseDrawer()  { n.drawerOpen = false }
func (n *MainNav) ToggleDrawer() { n.drawerOpen = !n.drawerOpen }

// DrawerItem is an entry of the drawer menu.
type DrawerItem int

const (
	DrawerHome DrawerItem = iota
	DrawerTheme
	DrawerSignOut
)

// DrawerItems lists the drawer entries in display order.
var DrawerItems = []DrawerItem{DrawerHome, DrawerTheme, DrawerSignOut}

// DrawerLabel returns the label of item. The theme entry offers the
// appearance the user would switch to.
func DrawerLabel(item DrawerItem, isDark bool) string {
	switch item {
	case DrawerTheme:
		if isDark {
			return "Light Mode"
		}
		return "Dark Mode"
	case DrawerSignOut:
		return "Sign Out"
	default:
		return "Home"
	}
}
