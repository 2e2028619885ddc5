package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketcart/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testConfig() config.Config {
	return config.Config{
		SessionSecret: "test_secret",
		CartTTL:       time.Hour,
		GoEnv:         "dev",
	}
}

func runSession(t *testing.T, cfg config.Config, cookie *http.Cookie) (string, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotSID string
	h := CartSession(cfg)(func(c echo.Context) error {
		gotSID, _ = c.Get(CtxSessionIDKey).(string)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	return gotSID, rec
}

func TestCartSession_IssuesNewSession(t *testing.T) {
	sid, rec := runSession(t, testConfig(), nil)

	assert.NotEmpty(t, sid)

	// cookieが書き戻されている
	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == SessionCookieName {
			found = ck
		}
	}
	assert.NotNil(t, found)
	assert.True(t, found.HttpOnly)
}

func TestCartSession_ReusesValidCookie(t *testing.T) {
	cfg := testConfig()

	token, err := signSessionToken("session-123", cfg.SessionSecret, cfg.CartTTL)
	assert.NoError(t, err)

	sid, rec := runSession(t, cfg, &http.Cookie{Name: SessionCookieName, Value: token})

	assert.Equal(t, "session-123", sid)

	// 既存セッションでは再発行しない
	for _, ck := range rec.Result().Cookies() {
		assert.NotEqual(t, SessionCookieName, ck.Name)
	}
}

func TestCartSession_TamperedCookieGetsFreshSession(t *testing.T) {
	cfg := testConfig()

	// 別のシークレットで署名されたtoken
	forged, err := signSessionToken("session-123", "other_secret", cfg.CartTTL)
	assert.NoError(t, err)

	sid, _ := runSession(t, cfg, &http.Cookie{Name: SessionCookieName, Value: forged})

	assert.NotEmpty(t, sid)
	assert.NotEqual(t, "session-123", sid)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := signSessionToken("abc", "secret", time.Hour)
	assert.NoError(t, err)

	sid, err := parseSessionToken(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, "abc", sid)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := signSessionToken("abc", "secret", -time.Minute)
	assert.NoError(t, err)

	_, err = parseSessionToken(token, "secret")
	assert.Error(t, err)
}
