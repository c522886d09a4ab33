package httpapi

import (
	"net/http"
	"strings"
	"testing"
)

func TestCommunityRoutesRequireSession(t *testing.T) {
	h := newAPIHarness(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/public-chat"},
		{http.MethodPost, "/api/public-chat"},
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/profile"},
		{http.MethodPost, "/api/contact"},
	}

	for _, tc := range paths {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var resp *http.Response
			if tc.method == http.MethodGet {
				resp = h.get(t, tc.path)
			} else {
				resp = h.postJSON(t, tc.path, map[string]string{})
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestChatPostAndList(t *testing.T) {
	h := newAPIHarness(t)
	h.signupAndConfirm(t, "pilot@example.com", "Maverick", "sup3r-secret")

	resp := h.postJSON(t, "/api/public-chat", chatPostRequest{Body: "  anyone remember cassette singles?  "})
	posted := decodeBody[chatMessage](t, resp)
	if posted.CallSign != "Maverick" {
		t.Fatalf("posted = %+v", posted)
	}
	if posted.Body != "anyone remember cassette singles?" {
		t.Fatalf("body not trimmed: %q", posted.Body)
	}

	resp = h.get(t, "/api/public-chat")
	list := decodeBody[chatListResponse](t, resp)
	if len(list.Messages) != 1 || list.Messages[0].Body != posted.Body {
		t.Fatalf("list = %+v", list)
	}
}

func TestChatPostValidation(t *testing.T) {
	h := newAPIHarness(t)
	h.signupAndConfirm(t, "pilot@example.com", "Maverick", "sup3r-secret")

	resp := h.postJSON(t, "/api/public-chat", chatPostRequest{Body: "   "})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty body status = %d, want 400", resp.StatusCode)
	}

	resp = h.postJSON(t, "/api/public-chat", chatPostRequest{Body: strings.Repeat("x", maxChatBodyLength+1)})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("oversized body status = %d, want 400", resp.StatusCode)
	}
}

func TestProfileUpsertAndFetch(t *testing.T) {
	h := newAPIHarness(t)
	h.signupAndConfirm(t, "pilot@example.com", "Maverick", "sup3r-secret")

	req := profileRequest{
		Eras:   []string{"80s", "90s"},
		Moods:  []string{"city-pop"},
		Bio:    "vinyl and FM radio",
		Agreed: true,
	}
	resp := h.postJSON(t, "/api/profile", req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile post status = %d", resp.StatusCode)
	}

	resp = h.get(t, "/api/profile")
	got := decodeBody[profileResponse](t, resp)
	if len(got.Eras) != 2 || got.Moods[0] != "city-pop" || !got.Agreed {
		t.Fatalf("profile = %+v", got)
	}
}

func TestProfileValidation(t *testing.T) {
	h := newAPIHarness(t)
	h.signupAndConfirm(t, "pilot@example.com", "Maverick", "sup3r-secret")

	cases := []struct {
		name string
		req  profileRequest
	}{
		{"no eras", profileRequest{Moods: []string{"a"}, Agreed: true}},
		{"no moods", profileRequest{Eras: []string{"80s"}, Agreed: true}},
		{"too many moods", profileRequest{Eras: []string{"80s"}, Moods: []string{"a", "b", "c", "d"}, Agreed: true}},
		{"no agreement", profileRequest{Eras: []string{"80s"}, Moods: []string{"a"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := h.postJSON(t, "/api/profile", tc.req)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestContactSubmission(t *testing.T) {
	h := newAPIHarness(t)
	h.signupAndConfirm(t, "pilot@example.com", "Maverick", "sup3r-secret")

	resp := h.postJSON(t, "/api/contact", contactRequest{Subject: "account question", Message: "hello"})
	got := decodeBody[contactResponse](t, resp)
	if !got.Received {
		t.Fatalf("contact = %+v", got)
	}

	resp = h.postJSON(t, "/api/contact", contactRequest{Subject: strings.Repeat("s", maxContactSubjectLength+1), Message: "hello"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("long subject status = %d, want 400", resp.StatusCode)
	}

	resp = h.postJSON(t, "/api/contact", contactRequest{Subject: "ok", Message: strings.Repeat("m", maxContactBodyLength+1)})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("long message status = %d, want 400", resp.StatusCode)
	}
}
