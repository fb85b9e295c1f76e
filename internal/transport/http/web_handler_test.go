package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestWebLoginFlow(t *testing.T) {
	t.Run("login sets cookie and redirects to dashboard", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.seedUser(t, "dewi@example.com", "rahasia123")

		rec := postForm(f.e, "/login", url.Values{"email": {"dewi@example.com"}, "password": {"rahasia123"}})
		if rec.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/dashboard" {
			t.Fatalf("expected redirect to /dashboard, got %q", loc)
		}

		cookie := sessionCookie(rec)
		if cookie == nil {
			t.Fatal("expected a session cookie")
		}
		if !cookie.HttpOnly {
			t.Fatal("session cookie must be HttpOnly")
		}
		if len(cookie.Value) != 64 {
			t.Fatalf("expected 64-char session token, got %d chars", len(cookie.Value))
		}
	})

	t.Run("bad credentials re-render the login page", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.seedUser(t, "dewi@example.com", "rahasia123")

		rec := postForm(f.e, "/login", url.Values{"email": {"dewi@example.com"}, "password": {"wrong"}})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Email or password is incorrect") {
			t.Fatal("expected error text on the login page")
		}
		if sessionCookie(rec) != nil {
			t.Fatal("failed login must not set a session cookie")
		}
	})
}

func TestDashboard(t *testing.T) {
	t.Run("without cookie redirects to login", func(t *testing.T) {
		f := newHandlerFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Fatalf("expected redirect to /login, got %q", loc)
		}
	})

	t.Run("with session renders profile and total", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.seedUser(t, "dewi@example.com", "rahasia123")

		login := postForm(f.e, "/login", url.Values{"email": {"dewi@example.com"}, "password": {"rahasia123"}})
		cookie := sessionCookie(login)
		if cookie == nil {
			t.Fatal("expected a session cookie")
		}

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Dewi Lestari") {
			t.Fatal("expected the user name on the dashboard")
		}
		if !strings.Contains(body, "150000") {
			t.Fatal("expected the donation total on the dashboard")
		}
	})
}

func TestWebLogout(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "dewi@example.com", "rahasia123")

	login := postForm(f.e, "/login", url.Values{"email": {"dewi@example.com"}, "password": {"rahasia123"}})
	cookie := sessionCookie(login)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if f.sessions.deactivated != cookie.Value {
		t.Fatal("expected the session to be deactivated")
	}

	cleared := sessionCookie(rec)
	if cleared == nil || cleared.Value != "" {
		t.Fatal("expected the session cookie to be cleared")
	}

	// The cookie no longer resolves, so the dashboard bounces back.
	again := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	again.AddCookie(cookie)
	recAgain := httptest.NewRecorder()
	f.e.ServeHTTP(recAgain, again)
	if recAgain.Code != http.StatusFound || recAgain.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login after logout, got %d %q", recAgain.Code, recAgain.Header().Get("Location"))
	}
}
