package httpapi

import (
	"errors"
	"net/http"

	"classicmatch"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.engine.Signup(r.Context(), classicmatch.SignupInput{
		Email:    req.Email,
		CallSign: req.CallSign,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{Email: result.Account.Email})
}

func (s *Server) handleValidateSignup(w http.ResponseWriter, r *http.Request) {
	var req validateSignupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.engine.ValidateSignup(r.Context(), classicmatch.SignupInput{
		Email:    req.Email,
		CallSign: req.CallSign,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, validateSignupResponse{Valid: true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.engine.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, classicmatch.ErrInvalidCredentials) {
			s.metrics.logins.WithLabelValues("failure").Inc()
		}
		s.writeError(w, r, err)
		return
	}

	s.metrics.logins.WithLabelValues("success").Inc()
	setCookie(w, result.Cookie)
	writeJSON(w, http.StatusOK, toLoginResponse(result))
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	cookie, err := s.engine.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		// An unconfigured admin pair reads as a failed login from outside.
		if errors.Is(err, classicmatch.ErrAdminNotConfigured) {
			err = classicmatch.ErrInvalidCredentials
		}
		s.writeError(w, r, err)
		return
	}

	setCookie(w, cookie)
	writeJSON(w, http.StatusOK, adminLoginResponse{Admin: true})
}

func (s *Server) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	payload, ok := s.memberFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Email: payload.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	setCookie(w, s.engine.Logout())
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	setCookie(w, s.engine.AdminLogout())
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}
