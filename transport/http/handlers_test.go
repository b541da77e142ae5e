package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JinhyeokFang/capstone"
	"github.com/JinhyeokFang/capstone/internal/stores"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := capstone.Config{}
	cfg.JWT.SecretKey = []byte("0123456789abcdef0123456789abcdef")
	cfg.JWT.AccessTTL = 30 * time.Minute
	cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	cfg.Blocklist.RedisPrefix = "refresh_token:blocklist"
	cfg.Password = capstone.PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}

	engine, err := capstone.New().
		WithConfig(cfg).
		WithBlocklist(stores.NewMemoryBlocklist(nil)).
		WithUserStore(stores.NewMemoryUserStore()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return NewRouter(engine, Config{})
}

func doJSON(router *gin.Engine, method, path, body string, mutate func(*stdhttp.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *stdhttp.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	t.Fatal("refresh cookie not set")
	return nil
}

func signUpAlice(t *testing.T, router *gin.Engine) (string, *stdhttp.Cookie) {
	t.Helper()
	w := doJSON(router, "POST", "/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`, nil)
	if w.Code != stdhttp.StatusCreated {
		t.Fatalf("signup: got %d, body %s", w.Code, w.Body.String())
	}
	access, _ := decodeBody(t, w)["accessToken"].(string)
	if access == "" {
		t.Fatal("signup response missing accessToken")
	}
	return access, refreshCookie(t, w)
}

func TestSignUpSetsHttpOnlyCookie(t *testing.T) {
	router := newTestRouter(t)

	_, cookie := signUpAlice(t, router)
	if !cookie.HttpOnly {
		t.Fatal("refresh cookie must be HttpOnly")
	}
	if cookie.MaxAge != 7*24*60*60 {
		t.Fatalf("cookie MaxAge: got %d, want 7 days", cookie.MaxAge)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	signUpAlice(t, router)

	w := doJSON(router, "POST", "/auth/signup",
		`{"name":"Mallory","email":"alice@example.com","password":"other-password"}`, nil)
	if w.Code != stdhttp.StatusConflict {
		t.Fatalf("got %d, want 409", w.Code)
	}
	if code := decodeBody(t, w)["code"]; code != "EMAIL_ALREADY_EXISTS" {
		t.Fatalf("got code %v, want EMAIL_ALREADY_EXISTS", code)
	}
}

func TestLoginErrors(t *testing.T) {
	router := newTestRouter(t)
	signUpAlice(t, router)

	w := doJSON(router, "POST", "/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`, nil)
	if w.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("wrong password: got %d, want 401", w.Code)
	}
	if code := decodeBody(t, w)["code"]; code != "PASSWORD_MISMATCH" {
		t.Fatalf("got code %v, want PASSWORD_MISMATCH", code)
	}

	w = doJSON(router, "POST", "/auth/login",
		`{"email":"nobody@example.com","password":"whatever1"}`, nil)
	if w.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown email: got %d, want 404", w.Code)
	}
	if code := decodeBody(t, w)["code"]; code != "USER_NOT_FOUND" {
		t.Fatalf("got code %v, want USER_NOT_FOUND", code)
	}

	w = doJSON(router, "POST", "/auth/login", `{"email":"not-an-email"}`, nil)
	if w.Code != stdhttp.StatusBadRequest {
		t.Fatalf("malformed body: got %d, want 400", w.Code)
	}
}

func TestMeRequiresBearerToken(t *testing.T) {
	router := newTestRouter(t)
	access, _ := signUpAlice(t, router)

	w := doJSON(router, "GET", "/auth/me", "", func(r *stdhttp.Request) {
		r.Header.Set("Authorization", "Bearer "+access)
	})
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("got %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["name"] != "Alice" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}

	w = doJSON(router, "GET", "/auth/me", "", nil)
	if w.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("no header: got %d, want 401", w.Code)
	}

	w = doJSON(router, "GET", "/auth/me", "", func(r *stdhttp.Request) {
		r.Header.Set("Authorization", "Bearer not-a-token")
	})
	if w.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("garbage token: got %d, want 401", w.Code)
	}
}

func TestRefreshUsesCookie(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := signUpAlice(t, router)

	w := doJSON(router, "POST", "/auth/refresh", "", func(r *stdhttp.Request) {
		r.AddCookie(cookie)
	})
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("got %d, body %s", w.Code, w.Body.String())
	}
	if access, _ := decodeBody(t, w)["accessToken"].(string); access == "" {
		t.Fatal("refresh response missing accessToken")
	}

	// No cookie at all is a plain 401.
	w = doJSON(router, "POST", "/auth/refresh", "", nil)
	if w.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("no cookie: got %d, want 401", w.Code)
	}
}

func TestLogoutClearsCookieAndRevokes(t *testing.T) {
	router := newTestRouter(t)
	_, cookie := signUpAlice(t, router)

	w := doJSON(router, "POST", "/auth/logout", "", func(r *stdhttp.Request) {
		r.AddCookie(cookie)
	})
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("logout: got %d, body %s", w.Code, w.Body.String())
	}
	if cleared := refreshCookie(t, w); cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout must clear the cookie, got %+v", cleared)
	}

	w = doJSON(router, "POST", "/auth/refresh", "", func(r *stdhttp.Request) {
		r.AddCookie(cookie)
	})
	if w.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("refresh after logout: got %d, want 401", w.Code)
	}
	if code := decodeBody(t, w)["code"]; code != "UNAUTHORIZED" {
		t.Fatalf("got code %v, want UNAUTHORIZED", code)
	}

	// Logging out without a cookie is a no-op success.
	w = doJSON(router, "POST", "/auth/logout", "", nil)
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("cookie-less logout: got %d, want 200", w.Code)
	}
}

func TestLogoutRejectsInvalidCookie(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/auth/logout", "", func(r *stdhttp.Request) {
		r.AddCookie(&stdhttp.Cookie{Name: refreshCookieName, Value: "not-a-token"})
	})
	if w.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("garbage cookie: got %d, want 401", w.Code)
	}
	if code := decodeBody(t, w)["code"]; code != "UNAUTHORIZED" {
		t.Fatalf("got code %v, want UNAUTHORIZED", code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/auth/logout", "", nil)
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("response must carry a request ID")
	}

	w = doJSON(router, "POST", "/auth/logout", "", func(r *stdhttp.Request) {
		r.Header.Set(requestIDHeader, "fixed-id")
	})
	if got := w.Header().Get(requestIDHeader); got != "fixed-id" {
		t.Fatalf("upstream request ID not honored: got %q", got)
	}
}
