package classicmatch

import "classicmatch/session"

// CreateSession mints a member session cookie for a known account without
// a credential check. Hosts use it after flows that prove identity some
// other way.
func (e *Engine) CreateSession(subjectID, email string) (session.Cookie, error) {
	if !e.ready() {
		return session.Cookie{}, ErrEngineNotReady
	}
	return e.sessions.Create(subjectID, email)
}

// ValidateSession classifies a raw member cookie value as valid, expired,
// or invalid. Expired results still carry the decoded payload so the host
// can say whose session lapsed.
func (e *Engine) ValidateSession(raw string) session.Validation {
	if !e.ready() {
		return session.Validation{Status: session.StatusInvalid}
	}
	return e.sessions.Validate(raw)
}

// ValidateAdminSession reports whether the raw admin cookie value is a
// live, correctly signed admin token. Expired and forged both fail.
func (e *Engine) ValidateAdminSession(raw string) bool {
	if !e.ready() {
		return false
	}
	return e.adminSessions.Validate(raw)
}

// Logout returns the cookie that clears the member session on the client.
// There is no server-side revocation: a captured token stays valid until
// its natural expiry.
func (e *Engine) Logout() session.Cookie {
	if !e.ready() {
		return session.Cookie{}
	}
	return e.sessions.Expire()
}

// AdminLogout returns the cookie that clears the admin session.
func (e *Engine) AdminLogout() session.Cookie {
	if !e.ready() {
		return session.Cookie{}
	}
	return e.adminSessions.Expire()
}

// SessionCookieName returns the member session cookie name.
func (e *Engine) SessionCookieName() string {
	return e.config.Session.CookieName
}

// AdminCookieName returns the admin session cookie name.
func (e *Engine) AdminCookieName() string {
	return e.config.AdminSession.CookieName
}
