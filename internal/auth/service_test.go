package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akarpov/welltrack/internal/config"
	"github.com/akarpov/welltrack/internal/userctx"
)

func testConfig() *config.Config {
	return &config.Config{
		AuthMode:      "dev",
		AuthEnabled:   true,
		AuthRequired:  true,
		JWTSecret:     "test-secret",
		JWTIssuer:     "welltrack-test",
		JWTTTLMinutes: 60,
	}
}

func TestSignInDevIssuesVerifiableToken(t *testing.T) {
	service := NewService(testConfig())

	resp, err := service.SignInDev(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("SignInDev: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	sub, err := service.VerifyJWT(resp.AccessToken)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if sub != "user-42" {
		t.Fatalf("expected sub user-42, got %s", sub)
	}
}

func TestSignInDevDefaultsUserID(t *testing.T) {
	service := NewService(testConfig())

	resp, err := service.SignInDev(context.Background(), "  ")
	if err != nil {
		t.Fatalf("SignInDev: %v", err)
	}
	if resp.UserID != "dev-user" {
		t.Fatalf("expected dev-user, got %s", resp.UserID)
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	service := NewService(testConfig())

	if _, err := service.VerifyJWT("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewService(testConfig())

	otherCfg := testConfig()
	otherCfg.JWTSecret = "different-secret"
	verifier := NewService(otherCfg)

	resp, err := issuer.SignInDev(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("SignInDev: %v", err)
	}

	if _, err := verifier.VerifyJWT(resp.AccessToken); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	service := NewService(cfg)
	middleware := NewMiddleware(cfg, service)

	var gotUserID string
	handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = userctx.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nutrition/totals", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token passes with user in context", func(t *testing.T) {
		resp, err := service.SignInDev(context.Background(), "user-7")
		if err != nil {
			t.Fatalf("SignInDev: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/totals", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUserID != "user-7" {
			t.Fatalf("expected user-7 in context, got %q", gotUserID)
		}
	})

	t.Run("public paths bypass auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for public path, got %d", rec.Code)
		}
	})

	t.Run("auth disabled lets everything through", func(t *testing.T) {
		offCfg := testConfig()
		offCfg.AuthRequired = false
		off := NewMiddleware(offCfg, NewService(offCfg))

		rec := httptest.NewRecorder()
		off.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nutrition/totals", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
