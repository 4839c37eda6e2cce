// AngelaMos | 2026
// flash_test.go

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testSecret = "test-flash-secret-that-is-long-enough"

func newTestFlasher(t *testing.T) *Flasher {
	t.Helper()
	f, err := NewFlasher([]byte(testSecret), "flash", false)
	if err != nil {
		t.Fatalf("NewFlasher: %v", err)
	}
	return f
}

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			return c
		}
	}
	t.Fatalf("no flash cookie set")
	return nil
}

func TestFlashRoundTrip(t *testing.T) {
	f := newTestFlasher(t)

	rec := httptest.NewRecorder()
	f.Set(rec, KindSuccess, "Survey created")
	cookie := flashCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	out := httptest.NewRecorder()

	got := f.Pop(out, req)
	if len(got) != 1 || got[0].Kind != KindSuccess || got[0].Message != "Survey created" {
		t.Fatalf("unexpected flashes %+v", got)
	}

	if expired := flashCookie(t, out); expired.MaxAge >= 0 {
		t.Fatalf("expected cookie to be expired, got MaxAge %d", expired.MaxAge)
	}
}

func TestFlashRejectsTamperedCookie(t *testing.T) {
	f := newTestFlasher(t)

	rec := httptest.NewRecorder()
	f.Set(rec, KindInfo, "hello")
	cookie := flashCookie(t, rec)

	parts := strings.Split(cookie.Value, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %q", cookie.Value)
	}
	parts[2] = strings.Repeat("A", len(parts[2]))
	cookie.Value = strings.Join(parts, ".")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if got := f.Pop(httptest.NewRecorder(), req); got != nil {
		t.Fatalf("expected tampered cookie to be dropped, got %+v", got)
	}
}

func TestFlashFromOtherKeyIsDropped(t *testing.T) {
	other, err := NewFlasher([]byte("another-secret-entirely-different-xx"), "flash", false)
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	other.Set(rec, KindDanger, "forged")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookie(t, rec))

	if got := newTestFlasher(t).Pop(httptest.NewRecorder(), req); got != nil {
		t.Fatalf("expected foreign cookie to be dropped, got %+v", got)
	}
}

func TestPopWithoutCookie(t *testing.T) {
	f := newTestFlasher(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := f.Pop(httptest.NewRecorder(), req); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
