package middleware

import (
	"errors"
	"net/http"
	"time"

	"marketcart/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "cart_session_id" // string
	SessionCookieName = "cart_session"
)

// カートセッション用のcookieミドルウェア。
// 署名付きJWTでセッションIDを運ぶ。cookieが無い・壊れている場合は
// その場で新しいセッションを発行する（匿名セッションなので失敗しない）。
func CartSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""

			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				if parsed, err := parseSessionToken(cookie.Value, cfg.SessionSecret); err == nil {
					sid = parsed
				}
			}

			// 無ければ新規発行してcookieを書き戻す
			if sid == "" {
				sid = uuid.NewString()

				token, err := signSessionToken(sid, cfg.SessionSecret, cfg.CartTTL)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}

				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.CartTTL / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   cfg.GoEnv == "prod",
				})
			}

			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// セッションIDをHS256で署名する
func signSessionToken(sid string, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// JWTをパースして検証し、sidを取り出す
func parseSessionToken(raw string, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("invalid sid")
	}

	return sid, nil
}
