package auth

import (
	"fmt"
	"net/url"
	"strings"
)

// RouteKind identifies a destination the UI can navigate to.
type RouteKind int

const (
	RouteListing RouteKind = iota // course listing
	RouteCourse                   // public course detail page
	RoutePlayer                   // course player
	RouteLogin                    // login entry point
)

// Route is a navigation target. ReturnTo is only meaningful for RouteLogin:
// it is where the viewer goes after a successful sign-in.
type Route struct {
	Kind     RouteKind
	CourseID string
	ReturnTo *Route
}

// PlayerRoute returns the player route for courseID.
func PlayerRoute(courseID string) Route {
	return Route{Kind: RoutePlayer, CourseID: courseID}
}

// CourseRoute returns the public detail route for courseID.
func CourseRoute(courseID string) Route {
	return Route{Kind: RouteCourse, CourseID: courseID}
}

// ListingRoute returns the course listing route.
func ListingRoute() Route {
	return Route{Kind: RouteListing}
}

// LoginRoute returns a login route that comes back to returnTo on success.
func LoginRoute(returnTo Route) Route {
	rt := returnTo
	return Route{Kind: RouteLogin, ReturnTo: &rt}
}

// Path renders the route as a URL path.
func (r Route) Path() string {
	switch r.Kind {
	case RouteCourse:
		return "/courses/" + url.PathEscape(r.CourseID)
	case RoutePlayer:
		return "/courses/" + url.PathEscape(r.CourseID) + "/learn"
	case RouteLogin:
		if r.ReturnTo == nil {
			return "/login"
		}
		return "/login?redirect=" + url.QueryEscape(r.ReturnTo.Path())
	default:
		return "/courses"
	}
}

func (r Route) String() string {
	return r.Path()
}

// ParseRoute is the inverse of Route.Path for the routes the client knows.
func ParseRoute(p string) (Route, error) {
	u, err := url.Parse(p)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", p, err)
	}
	if u.Path == "/login" {
		next := u.Query().Get("redirect")
		if next == "" {
			return Route{Kind: RouteLogin}, nil
		}
		inner, err := ParseRoute(next)
		if err != nil {
			return Route{}, err
		}
		return LoginRoute(inner), nil
	}

	if rest, ok := strings.CutPrefix(u.EscapedPath(), "/courses/"); ok && rest != "" {
		kind := RouteCourse
		if id, isPlayer := strings.CutSuffix(rest, "/learn"); isPlayer {
			kind, rest = RoutePlayer, id
		}
		cid, err := url.PathUnescape(rest)
		if err != nil {
			return Route{}, fmt.Errorf("parse route %q: %w", p, err)
		}
		return Route{Kind: kind, CourseID: cid}, nil
	}
	if u.Path == "/courses" || u.Path == "/" || u.Path == "" {
		return ListingRoute(), nil
	}
	return Route{}, fmt.Errorf("unknown route %q", p)
}
