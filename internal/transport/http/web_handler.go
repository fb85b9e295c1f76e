package http

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davinra/donasi-api/internal/domain"
	"github.com/davinra/donasi-api/internal/service"
)

const sessionCookieName = "donasi_session"

var loginPageTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Donasi Admin</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: linear-gradient(135deg,#11998e,#38ef7d); color: #fff; min-height: 100vh; display: flex; align-items: center; justify-content: center; }
.card { background: #fff; color: #333; padding: 32px; border-radius: 8px; width: 90%; max-width: 380px; box-shadow: 0 10px 40px rgba(0,0,0,0.2); }
input { width: 100%; padding: 10px; margin: 8px 0; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
button { width: 100%; padding: 12px; font-size: 16px; border: none; border-radius: 4px; cursor: pointer; background: #11998e; color: #fff; }
.error { color: #c0392b; font-size: 14px; }
</style>
</head>
<body>
<div class="card">
  <h2>Dashboard Login</h2>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/login">
    <input type="email" name="email" placeholder="Email" required />
    <input type="password" name="password" placeholder="Password" required />
    <button type="submit">Login</button>
  </form>
</div>
</body>
</html>`))

var dashboardPageTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<title>Donasi Dashboard</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: #f4f6f8; color: #333; }
header { background: #11998e; color: #fff; padding: 16px 24px; display: flex; justify-content: space-between; align-items: center; }
main { padding: 24px; max-width: 720px; margin: 0 auto; }
table { width: 100%; border-collapse: collapse; background: #fff; }
th, td { padding: 10px 12px; border-bottom: 1px solid #eee; text-align: left; }
button { padding: 8px 16px; border: none; border-radius: 4px; cursor: pointer; background: rgba(255,255,255,0.25); color: #fff; }
</style>
</head>
<body>
<header>
  <div><strong>{{.User.Name}}</strong> ({{.User.Role}})</div>
  <form method="post" action="/logout"><button type="submit">Logout</button></form>
</header>
<main>
  <h2>Total donated: {{.Total}}</h2>
  <table>
    <tr><th>Campaign</th><th>Amount</th><th>Status</th><th>Date</th></tr>
    {{range .Donations}}
    <tr><td>{{.Campaign}}</td><td>{{.Amount}}</td><td>{{.Status}}</td><td>{{.CreatedAt.Format "2006-01-02"}}</td></tr>
    {{else}}
    <tr><td colspan="4">No donations yet.</td></tr>
    {{end}}
  </table>
</main>
</body>
</html>`))

// WebHandler serves the session-cookie login path for the server-rendered
// dashboard. It is glue around the session store; the API bearer-token
// path does not share any of this state.
type WebHandler struct {
	auth *service.AuthService
}

func NewWebHandler(auth *service.AuthService) *WebHandler {
	return &WebHandler{auth: auth}
}

func (h *WebHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/dashboard", h.Dashboard)
	e.POST("/logout", h.Logout)
}

func (h *WebHandler) LoginPage(c echo.Context) error {
	if _, ok := h.sessionUser(c); ok {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return h.renderLogin(c, "")
}

func (h *WebHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	session, err := h.auth.WebLogin(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return h.renderLogin(c, "Email or password is incorrect")
		}
		return h.renderLogin(c, "Something went wrong, please try again")
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *WebHandler) Dashboard(c echo.Context) error {
	user, ok := h.sessionUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	profile, err := h.auth.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return h.renderLogin(c, "Session expired, please login again")
	}
	donations, err := h.auth.DonationHistory(c.Request().Context(), user.ID)
	if err != nil {
		donations = nil
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return dashboardPageTmpl.Execute(c.Response(), struct {
		User      *domain.User
		Total     int64
		Donations []domain.Donation
	}{User: profile, Total: profile.TotalDonation, Donations: donations})
}

func (h *WebHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		_ = h.auth.WebLogout(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/login")
}

func (h *WebHandler) sessionUser(c echo.Context) (*domain.User, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	user, err := h.auth.WebSession(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (h *WebHandler) renderLogin(c echo.Context, errMsg string) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return loginPageTmpl.Execute(c.Response(), struct{ Error string }{Error: errMsg})
}
