// AngelaMos | 2026
// flash.go

package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
)

const (
	KindSuccess = "success"
	KindInfo    = "info"
	KindWarning = "warning"
	KindDanger  = "danger"
)

type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// Flasher carries one-shot messages to the next page in a signed cookie.
type Flasher struct {
	key        jwk.Key
	cookieName string
	secure     bool
}

func NewFlasher(secret []byte, cookieName string, secure bool) (*Flasher, error) {
	key, err := jwk.Import(secret)
	if err != nil {
		return nil, fmt.Errorf("import flash key: %w", err)
	}

	return &Flasher{key: key, cookieName: cookieName, secure: secure}, nil
}

func (f *Flasher) Set(w http.ResponseWriter, kind, message string) {
	payload, err := json.Marshal([]Flash{{Kind: kind, Message: message}})
	if err != nil {
		return
	}

	signed, err := jws.Sign(payload, jws.WithKey(jwa.HS256(), f.key))
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     f.cookieName,
		Value:    string(signed),
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns pending messages and expires the cookie. Tampered or
// unreadable cookies are dropped.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	c, err := r.Cookie(f.cookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     f.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := jws.Verify([]byte(c.Value), jws.WithKey(jwa.HS256(), f.key))
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}

	return flashes
}
