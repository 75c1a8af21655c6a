package middleware

import (
	"context"
	"net/http"
)

// SessionChecker is the slice of the session manager the guard consults.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// Landing pages. A guarded page bounces an anonymous visitor to the
// welcome page, which in turn bounces to the sign-in page; the two-step
// chain is the original navigation behavior, kept as-is.
const (
	SignInPage  = "/index.html"
	WelcomePage = "/welcome.html"
)

// protectedPages is the fixed set of page identifiers that require an
// authenticated session. Pages outside the set are unguarded. There is
// no role distinction, only authenticated versus not.
var protectedPages = map[string]struct{}{
	"/dashboard.html":  {},
	"/components.html": {},
	"/projects.html":   {},
	"/analytics.html":  {},
	"/profile.html":    {},
	"/settings.html":   {},
}

// authPages host the sign-in/sign-up/forgot forms; with a live session
// they redirect before any form is rendered.
var authPages = map[string]struct{}{
	"/":           {},
	"/index.html": {},
}

// RequireSession guards API routes: anonymous requests get a 401 and
// never reach the handler.
func RequireSession(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated(r.Context()) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success": false, "code": 401, "message": "You must be logged in to do that"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PageGuard enforces the page-level redirects on the static site:
// protected pages redirect anonymous visitors away, auth pages redirect
// logged-in visitors to the welcome page, and the welcome page itself
// falls back to the sign-in page without a session.
func PageGuard(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated := sessions.IsAuthenticated(r.Context())
			path := r.URL.Path

			if _, protected := protectedPages[path]; protected && !authenticated {
				http.Redirect(w, r, WelcomePage, http.StatusSeeOther)
				return
			}
			if path == WelcomePage && !authenticated {
				http.Redirect(w, r, SignInPage, http.StatusSeeOther)
				return
			}
			if _, auth := authPages[path]; auth && authenticated {
				http.Redirect(w, r, WelcomePage, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
