package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/infrastructure/config"
	"github.com/csemotors/dealership/internal/infrastructure/db/gormdb"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gormdb.Connect(context.Background(), gormdb.Config{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := gormdb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	e, err := NewRouter(Options{
		Config: &config.Config{
			Env:               "test",
			AccessTokenSecret: "test-secret",
			SessionSecret:     "test-session-secret",
		},
		Log: zerolog.Nop(),
		DB:  db,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return e
}

func serve(e *echo.Echo, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func registration() url.Values {
	return url.Values{
		"account_email":     {"a@x.com"},
		"account_password":  {"Abcdefgh123!"},
		"account_firstname": {"A"},
		"account_lastname":  {"B"},
		"account_type":      {"Client"},
	}
}

func TestRegister_TwiceRejectsDuplicateEmail(t *testing.T) {
	e := newTestRouter(t)

	first := serve(e, http.MethodPost, "/account/register", registration())
	if first.Code != http.StatusCreated {
		t.Fatalf("first registration: expected 201, got %d: %s", first.Code, first.Body.String())
	}
	if !strings.Contains(first.Body.String(), "Congratulations, A!") {
		t.Fatalf("missing success notice: %s", first.Body.String())
	}

	second := serve(e, http.MethodPost, "/account/register", registration())
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second registration: expected 400, got %d", second.Code)
	}
	if !strings.Contains(second.Body.String(), "Email exists. Please log in or use different email") {
		t.Fatalf("missing email error: %s", second.Body.String())
	}
}

func TestLogin_SessionFlow(t *testing.T) {
	e := newTestRouter(t)
	if rec := serve(e, http.MethodPost, "/account/register", registration()); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}

	wrong := serve(e, http.MethodPost, "/account/login", url.Values{
		"account_email": {"a@x.com"}, "account_password": {"Wrongpass123!"},
	})
	unknown := serve(e, http.MethodPost, "/account/login", url.Values{
		"account_email": {"nobody@x.com"}, "account_password": {"Abcdefgh123!"},
	})
	if wrong.Code != http.StatusBadRequest || unknown.Code != http.StatusBadRequest {
		t.Fatalf("expected 400s, got %d and %d", wrong.Code, unknown.Code)
	}
	for _, rec := range []*httptest.ResponseRecorder{wrong, unknown} {
		if !strings.Contains(rec.Body.String(), "Please check your credentials and try again.") {
			t.Fatalf("missing generic credential notice")
		}
	}

	login := serve(e, http.MethodPost, "/account/login", url.Values{
		"account_email": {"A@X.com"}, "account_password": {"Abcdefgh123!"},
	})
	if login.Code != http.StatusSeeOther || login.Header().Get(echo.HeaderLocation) != "/account/" {
		t.Fatalf("login: expected redirect, got %d", login.Code)
	}
	token := cookieNamed(login, "jwt")
	if token == nil || token.Value == "" || !token.HttpOnly {
		t.Fatalf("missing token cookie: %+v", token)
	}

	home := serve(e, http.MethodGet, "/account/", nil, token)
	if home.Code != http.StatusOK || !strings.Contains(home.Body.String(), "Welcome A") {
		t.Fatalf("account home: %d %s", home.Code, home.Body.String())
	}

	// Clients are turned away from inventory management.
	inv := serve(e, http.MethodGet, "/inv/", nil, token)
	if inv.Code != http.StatusSeeOther || inv.Header().Get(echo.HeaderLocation) != "/account/login" {
		t.Fatalf("inventory management: expected redirect, got %d", inv.Code)
	}
}

func TestSession_InvalidTokenClearsCookie(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/", nil, &http.Cookie{Name: "jwt", Value: "forged"})
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/login" {
		t.Fatalf("expected redirect to login, got %d", rec.Code)
	}
	if ck := cookieNamed(rec, "jwt"); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", ck)
	}
}

func TestRequireLogin_Anonymous(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/account/", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/login" {
		t.Fatalf("expected redirect to login, got %d", rec.Code)
	}
}

func TestNotFound_RendersErrorPage(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/no/such/page", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sorry, we appear to have lost that page.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestRouter(t)

	if rec := serve(e, http.MethodGet, "/health/ready", nil); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	serve(e, http.MethodGet, "/health", nil)
	rec := serve(e, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "dealership_http_requests_total") {
		t.Fatalf("metrics missing request counter: %d", rec.Code)
	}
}

func TestNewSessionStore_SecureFollowsEnv(t *testing.T) {
	for env, want := range map[string]bool{"production": true, "development": false} {
		store := NewSessionStore(&config.Config{Env: env, SessionSecret: "s"}, nil)
		if store.Options.Secure != want {
			t.Fatalf("%s: expected Secure=%v, got %v", env, want, store.Options.Secure)
		}
	}
}

func TestRouter_ProductionSessionCookieIsSecure(t *testing.T) {
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	db, err := gormdb.Connect(context.Background(), gormdb.Config{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := gormdb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e, err := NewRouter(Options{
		Config: &config.Config{Env: "production", AccessTokenSecret: "t", SessionSecret: "s"},
		Log:    zerolog.Nop(),
		DB:     db,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	// The login redirect stores a notice, which writes the session cookie.
	rec := serve(e, http.MethodGet, "/account/", nil)
	ck := cookieNamed(rec, "sessionId")
	if ck == nil || !ck.Secure {
		t.Fatalf("expected secure sessionId cookie, got %+v", ck)
	}
}
