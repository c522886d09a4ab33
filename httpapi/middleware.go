package httpapi

import (
	"context"
	"net"
	"net/http"

	"classicmatch"
	"classicmatch/session"
)

type memberContextKey struct{}

// withClientIP threads the caller's IP into the request context for the
// engine's throttle and audit trail.
func (s *Server) withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		next.ServeHTTP(w, r.WithContext(classicmatch.WithClientIP(r.Context(), ip)))
	})
}

// requireMember rejects requests without a live member session and stores
// the session payload in the context.
func (s *Server) requireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := s.memberFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
			return
		}
		ctx := context.WithValue(r.Context(), memberContextKey{}, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects requests without a live admin session.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.engine.AdminCookieName())
		if err != nil || !s.engine.ValidateAdminSession(cookie.Value) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "admin login required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) memberFromRequest(r *http.Request) (*session.Payload, bool) {
	cookie, err := r.Cookie(s.engine.SessionCookieName())
	if err != nil {
		return nil, false
	}
	validation := s.engine.ValidateSession(cookie.Value)
	if validation.Status != session.StatusValid {
		return nil, false
	}
	return validation.Payload, true
}

func memberFromContext(ctx context.Context) *session.Payload {
	payload, _ := ctx.Value(memberContextKey{}).(*session.Payload)
	return payload
}

func setCookie(w http.ResponseWriter, cookie session.Cookie) {
	http.SetCookie(w, cookie.HTTP())
}
