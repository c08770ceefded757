package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authedRequest(t *testing.T, role string) *http.Request {
	t.Helper()
	token, err := GenerateToken("11111111-2222-3333-4444-555555555555", role, "J. Doe", "j.doe@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/reports/x/approve", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestJWTMiddleware(t *testing.T) {
	handler := JWTMiddleware(protectedHandler())

	t.Run("valid token passes claims through", func(t *testing.T) {
		var claims *Claims
		inner := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims = GetClaims(r)
		}))
		rr := httptest.NewRecorder()
		inner.ServeHTTP(rr, authedRequest(t, "inspector"))
		if claims == nil {
			t.Fatal("claims missing from context")
		}
		if claims.Role != "inspector" || claims.Email != "j.doe@example.com" {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/reports", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/reports", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	handler := JWTMiddleware(RequireRole([]string{"qc_manager", "admin"}, protectedHandler()))

	tests := []struct {
		role     string
		expected int
	}{
		{"qc_manager", http.StatusOK},
		{"admin", http.StatusOK},
		{"inspector", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run("role "+tt.role, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, authedRequest(t, tt.role))
			if rr.Code != tt.expected {
				t.Errorf("role %q: status = %d, want %d", tt.role, rr.Code, tt.expected)
			}
		})
	}
}
