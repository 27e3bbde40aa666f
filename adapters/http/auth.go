package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

const JWTExpiry = 24 * time.Hour

type FamilyClaims struct {
	Member string `json:"family_member"`
	jwt.RegisteredClaims
}

// AuthHandler implements the family lock: one shared password unlocks the
// whole site for 24 hours.
type AuthHandler struct {
	hasher       domain.Hasher
	jwtSecret    []byte
	passwordHash string
}

func NewAuthHandler(hasher domain.Hasher, jwtSecret, familyPassword string) *AuthHandler {
	return &AuthHandler{
		hasher:       hasher,
		jwtSecret:    []byte(jwtSecret),
		passwordHash: hasher.Hash([]byte(familyPassword)),
	}
}

type unlockRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Unlock trades the shared family password for a bearer token.
func (h *AuthHandler) Unlock(c echo.Context) error {
	var req unlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if h.hasher.Hash([]byte(req.Password)) != h.passwordHash {
		return echo.NewHTTPError(http.StatusUnauthorized, "wrong family password")
	}

	now := time.Now()
	claims := &FamilyClaims{
		Member: strings.TrimSpace(req.Name),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "madrid-guide",
			Subject:   "family-access",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("error signing JWT", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": tokenString,
		"type":  "Bearer",
	})
}

// JWTMiddleware validates the family token. Browsers send it in the
// Authorization header; websocket clients pass it as a query param.
func (h *AuthHandler) JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := ""

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
			}
		} else {
			tokenString = c.QueryParam("token")
		}

		if tokenString == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
		}

		token, err := jwt.ParseWithClaims(tokenString, &FamilyClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil {
			log.WithCtx(c.Request().Context()).Debug("JWT validation error", zap.Error(err))
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(*FamilyClaims)
		if !ok || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
		}

		c.Set("family_member", claims.Member)

		ctx := context.WithValue(c.Request().Context(), "family_member", claims.Member)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
