package navigation

import "slices"

// AuthRoute names a screen of the auth subtree.
type AuthRoute int

const (
	RouteLogin AuthRoute = iota
	RouteRegister
	RouteForgotPassword
)

func (r AuthRoute) String() string {
	switch r {
	case RouteRegister:
		return "Register"
	case RouteForgotPassword:
		return "Forgot Password"
	default:
		return "Login"
	}
}

// AuthStack is a stack navigator rooted at Login.
type AuthStack struct {
	routes []AuthRoute
}

// NewAuthStack returns a stack holding only Login.
func NewAuthStack() *AuthStack {
	return &AuthStack{routes: []AuthRoute{RouteLogin}}
}

// Top returns the visible route.
func (s *AuthStack) Top() AuthRoute {
	if len(s.routes) == 0 {
		return RouteLogin
	}
	return s.routes[len(s.routes)-1]
}

// Routes returns the stack from root to top.
func (s *AuthStack) Routes() []AuthRoute { return slices.Clone(s.routes) }

// Depth returns the number of routes on the stack.
func (s *AuthStack) Depth() int { return len(s.routes) }

// Navigate shows r. If r is already on the stack the routes above it are
// popped, otherwise r is pushed.
func (s *AuthStack) Navigate(r AuthRoute) {
	for i, existing := range s.routes {
		if existing == r {
			s.routes = s.routes[:i+1]
			return
		}
	}
	s.routes = append(s.routes, r)
}

// Back pops the visible route. The root route is never popped; Back
// reports whether anything changed.
func (s *AuthStack) Back() bool {
	if len(s.routes) <= 1 {
		return false
	}
	s.routes = s.routes[:len(s.routes)-1]
	return true
}

// Reset returns the stack to its initial state.
func (s *AuthStack) Reset() { s.routes = []AuthRoute{RouteLogin} }
