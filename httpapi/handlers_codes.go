package httpapi

import (
	"net/http"
)

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.engine.ConfirmEmail(r.Context(), req.Email, req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setCookie(w, result.Cookie)
	writeJSON(w, http.StatusOK, verifyResponse{
		Verified: true,
		CallSign: result.Account.CallSign,
	})
}

func (s *Server) handleResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.engine.ResendConfirmationCode(r.Context(), req.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resendResponse{Sent: true})
}

func (s *Server) handlePasswordRequest(w http.ResponseWriter, r *http.Request) {
	var req passwordRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.engine.RequestPasswordReset(r.Context(), req.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, passwordRequestResponse{Sent: true})
}

func (s *Server) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.engine.CompletePasswordReset(r.Context(), req.Email, req.Code, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setCookie(w, result.Cookie)
	writeJSON(w, http.StatusOK, passwordResetResponse{CallSign: result.Account.CallSign})
}
