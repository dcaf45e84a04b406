package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/core/domain"
)

type stubTokens struct {
	claims *domain.Claims
}

func (s stubTokens) Issue(domain.Claims) (string, error) { return "token", nil }

func (s stubTokens) Verify(token string) (*domain.Claims, error) {
	if token != "good" || s.claims == nil {
		return nil, domain.ErrInvalidToken
	}
	return s.claims, nil
}

func sessionCtx(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSession_NoToken(t *testing.T) {
	c, rec := sessionCtx("")
	mw := Session(stubTokens{}, TokenCookie{})

	called := false
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must proceed")
	}
	if _, ok := Identity(c); ok {
		t.Fatalf("expected no identity")
	}
}

func TestSession_ValidToken(t *testing.T) {
	claims := &domain.Claims{AccountID: 3, FirstName: "A", Type: domain.RoleClient}
	c, _ := sessionCtx("good")
	mw := Session(stubTokens{claims: claims}, TokenCookie{})

	var seen *domain.Claims
	h := mw(func(c echo.Context) error {
		seen, _ = Identity(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen == nil || seen.AccountID != 3 {
		t.Fatalf("expected identity populated, got %+v", seen)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	c, rec := sessionCtx("forged")
	mw := Session(stubTokens{}, TokenCookie{Secure: true})

	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != LoginPath {
		t.Fatalf("expected redirect to login, got %d", rec.Code)
	}
	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(setCookie, TokenCookieName+"=;") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected cleared cookie, got %q", setCookie)
	}
	if !strings.Contains(setCookie, "Secure") {
		t.Fatalf("expected secure flag, got %q", setCookie)
	}
	if got := Notices(c); len(got) != 1 || got[0] != loginNotice {
		t.Fatalf("unexpected notices: %v", got)
	}
}

func TestTokenCookie_Set(t *testing.T) {
	c, rec := sessionCtx("")
	TokenCookie{}.Set(c, "abc")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != TokenCookieName || ck.Value != "abc" || !ck.HttpOnly || ck.MaxAge != 3600 || ck.Secure {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
}
