package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Murmur/config"
	"Murmur/services"
)

func issueTestToken(t *testing.T, userID int64, isAdmin bool) string {
	t.Helper()
	services.InitTokenService(&config.Config{JWTSecret: "middleware-test-secret", TokenLifetimeMin: 60})
	token, err := services.IssueToken(userID, isAdmin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return token
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body["error"]
}

func TestRequireAuthRejections(t *testing.T) {
	issueTestToken(t, 1, false)

	tests := []struct {
		name       string
		authHeader string
		wantError  string
	}{
		{name: "missing header", authHeader: "", wantError: "authentication required"},
		{name: "wrong scheme", authHeader: "Basic dXNlcjpwYXNz", wantError: "authentication required"},
		{name: "empty bearer", authHeader: "Bearer ", wantError: "authentication required"},
		{name: "garbage token", authHeader: "Bearer not-a-token", wantError: "invalid or expired token"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for rejected request")
	})

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/user", nil)
			if test.authHeader != "" {
				req.Header.Set("Authorization", test.authHeader)
			}
			rec := httptest.NewRecorder()

			RequireAuth(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if got := errorBody(t, rec); got != test.wantError {
				t.Errorf("error: got %q, want %q", got, test.wantError)
			}
		})
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	token := issueTestToken(t, 42, true)

	var got *services.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFrom(r.Context())
	})

	req := httptest.NewRequest("GET", "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	RequireAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got == nil {
		t.Fatal("identity missing from request context")
	}
	if got.UserID != 42 || !got.IsAdmin {
		t.Errorf("identity: got %+v, want UserID=42 IsAdmin=true", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		wantStatus int
	}{
		{name: "admin allowed", isAdmin: true, wantStatus: http.StatusOK},
		{name: "non-admin forbidden", isAdmin: false, wantStatus: http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token := issueTestToken(t, 7, test.isAdmin)

			handlerRan := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
			})

			req := httptest.NewRequest("DELETE", "/posts/1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			RequireAuth(RequireAdmin(next)).ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, test.wantStatus)
			}
			if handlerRan != (test.wantStatus == http.StatusOK) {
				t.Errorf("handler ran = %v, want %v", handlerRan, test.wantStatus == http.StatusOK)
			}
			if test.wantStatus == http.StatusForbidden {
				if got := errorBody(t, rec); got != "admin privilege required" {
					t.Errorf("error: got %q, want %q", got, "admin privilege required")
				}
			}
		})
	}
}

// RequireAdmin composed without RequireAuth must reject, never grant.
func TestRequireAdminWithoutAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without an authenticated identity")
	})

	req := httptest.NewRequest("DELETE", "/posts/1", nil)
	rec := httptest.NewRecorder()

	RequireAdmin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
