package security

import (
	"net/http"
	"strings"
	"time"
)

const RefreshTokenCookie = "refreshToken"

// CookieManager owns the refresh-token cookie contract: HTTP-only,
// SameSite=None so the SPA on a separate origin can send it, Secure outside
// local development.
type CookieManager struct {
	Secure   bool
	SameSite http.SameSite
}

func NewCookieManager(secure bool, sameSite string) *CookieManager {
	ss := http.SameSiteNoneMode
	switch strings.ToLower(sameSite) {
	case "lax":
		ss = http.SameSiteLaxMode
	case "strict":
		ss = http.SameSiteStrictMode
	}
	return &CookieManager{Secure: secure, SameSite: ss}
}

func (c *CookieManager) SetRefreshToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (c *CookieManager) ClearRefreshToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		MaxAge:   -1,
	})
}

func GetCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
