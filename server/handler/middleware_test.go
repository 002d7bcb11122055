package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"botarena/server/auth"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(raw string) (string, error) {
	if p, ok := s[raw]; ok {
		return p, nil
	}
	return "", auth.ErrUnauthorized
}

func TestRequirePlayer(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = playerFrom(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	h := RequirePlayer(stubVerifier{"good": "p1"}, next)

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusTeapot},
	}
	for _, tc := range cases {
		seen = ""
		req := httptest.NewRequest(http.MethodPost, "/api/arenas/alpha/bots", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%q: expected %d, got %d", tc.header, tc.want, rec.Code)
		}
	}
	if seen != "p1" {
		t.Fatalf("expected p1 in context, got %q", seen)
	}
}
