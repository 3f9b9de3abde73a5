// Package route maps reel's screen paths to pages and applies the
// authentication gate.
package route

import (
	"strconv"
	"strings"
)

// Paths of every screen.
const (
	Root          = "/"
	Login         = "/login"
	Signup        = "/signup"
	Profile       = "/profile"
	Movies        = "/movies"
	AdminRentals  = "/admin/rentals"
	AdminMovies   = "/admin/movies"
	AdminAddMovie = "/admin/movies/add"
)

const (
	moviePrefix  = "/movies/"
	adminPrefix  = "/admin"
	movieIDParam = "movieId"
)

// Page identifies a screen.
type Page int

const (
	PageNone Page = iota
	PageLogin
	PageSignup
	PageProfile
	PageMovies
	PageMovieDetail
	PageAdminRentals
	PageAdminMovies
	PageAdminAddMovie
)

func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PageSignup:
		return "signup"
	case PageProfile:
		return "profile"
	case PageMovies:
		return "movies"
	case PageMovieDetail:
		return "movie"
	case PageAdminRentals:
		return "admin-rentals"
	case PageAdminMovies:
		return "admin-movies"
	case PageAdminAddMovie:
		return "admin-add-movie"
	default:
		return "none"
	}
}

// Access says who may open a page.
type Access int

const (
	Anonymous Access = iota
	Authenticated
	AdminOnly
)

// Session is what the gate needs to know about the viewer.
type Session struct {
	LoggedIn bool
	Admin    bool
}

// Home is where a viewer lands when no specific page applies.
func (s Session) Home() string {
	switch {
	case !s.LoggedIn:
		return Login
	case s.Admin:
		return AdminRentals
	default:
		return Profile
	}
}

// Route is a matched screen.
type Route struct {
	Path   string
	Page   Page
	Access Access
	Params map[string]string
}

// MovieID returns the :movieId parameter.
func (r Route) MovieID() (int64, bool) {
	raw, ok := r.Params[movieIDParam]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type entry struct {
	path   string
	page   Page
	access Access
}

var table = []entry{
	{Login, PageLogin, Anonymous},
	{Signup, PageSignup, Anonymous},
	{Profile, PageProfile, Authenticated},
	{Movies, PageMovies, Authenticated},
	{AdminRentals, PageAdminRentals, AdminOnly},
	{AdminMovies, PageAdminMovies, AdminOnly},
	{AdminAddMovie, PageAdminAddMovie, AdminOnly},
}

// Match finds the screen for path without applying the gate.
func Match(path string) (Route, bool) {
	path = Clean(path)
	for _, e := range table {
		if e.path == path {
			return Route{Path: path, Page: e.page, Access: e.access}, true
		}
	}
	if rest, ok := strings.CutPrefix(path, moviePrefix); ok && rest != "" && !strings.Contains(rest, "/") {
		return Route{
			Path:   path,
			Page:   PageMovieDetail,
			Access: Authenticated,
			Params: map[string]string{movieIDParam: rest},
		}, true
	}
	return Route{}, false
}

// Resolve applies the gate to path. When the viewer may not see the page,
// or the path is unknown, redirect is the path to go to instead.
func Resolve(path string, s Session) (r Route, redirect string) {
	matched, ok := Match(path)
	if !ok {
		return Route{}, s.Home()
	}
	switch matched.Access {
	case Anonymous:
		if s.LoggedIn {
			return Route{}, s.Home()
		}
	case Authenticated:
		if !s.LoggedIn {
			return Route{}, Login
		}
	case AdminOnly:
		if !s.LoggedIn {
			return Route{}, Login
		}
		if !s.Admin {
			return Route{}, Profile
		}
	}
	return matched, ""
}

// Final follows redirects until a page renders.
func Final(path string, s Session) Route {
	for range 4 {
		r, redirect := Resolve(path, s)
		if redirect == "" {
			return r
		}
		path = redirect
	}
	r, _ := Match(s.Home())
	return r
}

// MovieDetail builds the path of a movie's page.
func MovieDetail(id int64) string {
	return moviePrefix + strconv.FormatInt(id, 10)
}

// IsAdmin reports whether path is under the admin area.
func IsAdmin(path string) bool {
	path = Clean(path)
	return path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/")
}

// Clean normalizes a typed path: leading slash, no trailing slash, no query.
func Clean(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
