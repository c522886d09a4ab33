package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"classicmatch"
	"classicmatch/store"
)

const (
	maxChatBodyLength       = 500
	maxContactSubjectLength = 120
	maxContactBodyLength    = 2000
	maxProfileBioLength     = 1000
	maxMoods                = 3
)

func (s *Server) handleProfilePost(w http.ResponseWriter, r *http.Request) {
	member := memberFromContext(r.Context())

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := validateProfile(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.ProfileRecord{
		AccountID: member.SubjectID,
		Eras:      req.Eras,
		Moods:     req.Moods,
		Bio:       strings.TrimSpace(req.Bio),
		Agreed:    req.Agreed,
	}
	if err := s.profiles.Upsert(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Eras:   rec.Eras,
		Moods:  rec.Moods,
		Bio:    rec.Bio,
		Agreed: rec.Agreed,
	})
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	member := memberFromContext(r.Context())

	rec, err := s.profiles.Get(r.Context(), member.SubjectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Eras:   rec.Eras,
		Moods:  rec.Moods,
		Bio:    rec.Bio,
		Agreed: rec.Agreed,
	})
}

func validateProfile(req profileRequest) error {
	if len(req.Eras) == 0 {
		return fmt.Errorf("%w: pick at least one era", classicmatch.ErrInvalidInput)
	}
	if len(req.Moods) == 0 || len(req.Moods) > maxMoods {
		return fmt.Errorf("%w: pick between 1 and %d moods", classicmatch.ErrInvalidInput, maxMoods)
	}
	if !req.Agreed {
		return fmt.Errorf("%w: agreement is required", classicmatch.ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Bio) > maxProfileBioLength {
		return fmt.Errorf("%w: bio exceeds %d characters", classicmatch.ErrInvalidInput, maxProfileBioLength)
	}
	return nil
}

func (s *Server) handleChatList(w http.ResponseWriter, r *http.Request) {
	records, err := s.chat.Recent(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := chatListResponse{Messages: make([]chatMessage, 0, len(records))}
	for _, rec := range records {
		resp.Messages = append(resp.Messages, chatMessage{
			ID:        rec.ID,
			CallSign:  rec.CallSign,
			Body:      rec.Body,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChatPost(w http.ResponseWriter, r *http.Request) {
	member := memberFromContext(r.Context())

	var req chatPostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		s.writeError(w, r, fmt.Errorf("%w: message is empty", classicmatch.ErrInvalidInput))
		return
	}
	if utf8.RuneCountInString(body) > maxChatBodyLength {
		s.writeError(w, r, fmt.Errorf("%w: message exceeds %d characters", classicmatch.ErrInvalidInput, maxChatBodyLength))
		return
	}

	account, err := s.engine.Account(r.Context(), member.SubjectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.chat.Post(r.Context(), account.ID, account.CallSign, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, chatMessage{
		ID:        rec.ID,
		CallSign:  rec.CallSign,
		Body:      rec.Body,
		CreatedAt: rec.CreatedAt,
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	member := memberFromContext(r.Context())

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Message)
	switch {
	case subject == "":
		s.writeError(w, r, fmt.Errorf("%w: subject is required", classicmatch.ErrInvalidInput))
		return
	case utf8.RuneCountInString(subject) > maxContactSubjectLength:
		s.writeError(w, r, fmt.Errorf("%w: subject exceeds %d characters", classicmatch.ErrInvalidInput, maxContactSubjectLength))
		return
	case body == "":
		s.writeError(w, r, fmt.Errorf("%w: message is required", classicmatch.ErrInvalidInput))
		return
	case utf8.RuneCountInString(body) > maxContactBodyLength:
		s.writeError(w, r, fmt.Errorf("%w: message exceeds %d characters", classicmatch.ErrInvalidInput, maxContactBodyLength))
		return
	}

	if _, err := s.contact.Submit(r.Context(), member.SubjectID, member.Email, subject, body); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{Received: true})
}

func (s *Server) handleAdminContactList(w http.ResponseWriter, r *http.Request) {
	records, err := s.contact.Recent(r.Context(), 50)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
