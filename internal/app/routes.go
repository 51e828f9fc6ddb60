package app

type View string

const (
	ViewLogin               View = "login"
	ViewStudentDashboard    View = "student-dashboard"
	ViewCounsellorDashboard View = "counsellor-dashboard"
	ViewAdminDashboard      View = "admin-dashboard"
	ViewResources           View = "resources"
	ViewRelaxation          View = "relaxation"
	ViewChat                View = "ai-support"
	ViewForum               View = "peer-forum"
	ViewCounsellors         View = "counselors"
	ViewGames               View = "games"
	ViewRedeem              View = "redeem"
	ViewNotFound            View = "not-found"
)

const (
	PathLogin               = "/login"
	PathHome                = "/"
	PathStudentDashboard    = "/student-dashboard"
	PathCounsellorDashboard = "/counsellor/dashboard"
	PathAdminDashboard      = "/admin/dashboard"
)

var protectedRoutes = map[string]View{
	PathStudentDashboard:    ViewStudentDashboard,
	PathCounsellorDashboard: ViewCounsellorDashboard,
	PathAdminDashboard:      ViewAdminDashboard,
	"/resources":            ViewResources,
	"/relaxation":           ViewRelaxation,
	"/ai-support":           ViewChat,
	"/peer-forum":           ViewForum,
	"/counselors":           ViewCounsellors,
	"/games":                ViewGames,
	"/redeem":               ViewRedeem,
}

// Identity is what routing needs to know about the current user.
type Identity interface {
	IsAuthenticated() bool
	Role() string
}

type Route struct {
	Path string
	View View
	// Redirected is set when Path differs from the requested path.
	Redirected bool
}

// Resolve maps a requested path to the view to show. Everything but the
// login page requires a signed-in user; "/" sends each role to its own
// dashboard.
func Resolve(path string, who Identity) Route {
	if path == PathLogin {
		return Route{Path: PathLogin, View: ViewLogin}
	}
	if !who.IsAuthenticated() {
		return Route{Path: PathLogin, View: ViewLogin, Redirected: true}
	}
	if path == PathHome || path == "" {
		dashboard := DashboardFor(who.Role())
		return Route{Path: dashboard, View: protectedRoutes[dashboard], Redirected: true}
	}
	if view, ok := protectedRoutes[path]; ok {
		return Route{Path: path, View: view}
	}
	return Route{Path: path, View: ViewNotFound}
}

// DashboardFor returns the dashboard path of role. Unknown roles get the
// student dashboard.
func DashboardFor(role string) string {
	switch role {
	case "admin":
		return PathAdminDashboard
	case "counsellor":
		return PathCounsellorDashboard
	default:
		return PathStudentDashboard
	}
}
