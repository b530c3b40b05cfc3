package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/logger"
)

const identityKey = "identity"

// Claims はアクセストークンのクレーム。sub がユーザーID
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth は Bearer トークン（HS256）を検証し、呼び出し元の user.Identity をコンテキストに設定する
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが必要です")
			}

			identity, err := ParseToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが無効です")
			}
			SetIdentity(c, identity)

			// 以降のログにユーザーIDを含める
			req := c.Request()
			l := logger.FromContext(req.Context()).With(zap.String("user_id", identity.UserID))
			c.SetRequest(req.WithContext(logger.IntoContext(req.Context(), l)))

			return next(c)
		}
	}
}

// RequireAdmin は管理者以外を 403 で拒否する。JWTAuth の後に使う
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok || !identity.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "管理者権限が必要です")
			}
			return next(c)
		}
	}
}

// IdentityFrom は JWTAuth が設定した呼び出し元を返す
func IdentityFrom(c echo.Context) (user.Identity, bool) {
	identity, ok := c.Get(identityKey).(user.Identity)
	return identity, ok && identity.UserID != ""
}

// SetIdentity は呼び出し元をコンテキストに設定する
func SetIdentity(c echo.Context, identity user.Identity) {
	c.Set(identityKey, identity)
}

// ParseToken はトークンを検証して呼び出し元を返す
func ParseToken(secret, raw string) (user.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return user.Identity{}, err
	}
	if claims.Subject == "" {
		return user.Identity{}, errors.New("sub クレームがありません")
	}

	role := user.Role(claims.Role)
	switch role {
	case "":
		role = user.RoleCustomer
	case user.RoleCustomer, user.RoleAdmin:
	default:
		return user.Identity{}, fmt.Errorf("不明なロールです: %s", claims.Role)
	}
	return user.Identity{UserID: claims.Subject, Role: role}, nil
}

// IssueToken は呼び出し元のアクセストークンを発行する
func IssueToken(secret string, identity user.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
