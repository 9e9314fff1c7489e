package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// CookieName carries the signed session id.
const CookieName = "club_session"

const cookieMaxAge = 24 * time.Hour

// signSessionID returns "<sid>.<signature>" so a tampered cookie is
// rejected before the session store is consulted.
func signSessionID(sid string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sid))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return sid + "." + sig
}

// verifySessionID validates the signature and recovers the session id.
func verifySessionID(value string, secret []byte) (string, bool) {
	sid, sig, ok := strings.Cut(value, ".")
	if !ok || sid == "" {
		return "", false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sid))
	want := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return sid, true
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
