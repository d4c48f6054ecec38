package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/askforum/backend/internal/models"
	"github.com/askforum/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ActorKey is the context key under which the authenticated user is stored.
// Routes reachable anonymously leave it unset; the authorization gates decide
// what an anonymous actor may do.
const ActorKey = "actor"

// ActorMiddleware resolves the Authorization header into a full user record
// (with role) and stores it in the request context. A missing header leaves
// the request anonymous; a present but invalid token is rejected outright.
func ActorMiddleware(users repositories.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			user, err := AuthenticateToken(parts[1], users, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(ActorKey, user)
			return next(c)
		}
	}
}

// AuthenticateToken validates a signed token and loads the user it names.
// The WebSocket handshake uses it too, with the token taken from the query
// string instead of a header.
func AuthenticateToken(tokenString string, users repositories.UserRepository, jwtSecret string) (*models.User, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	user, err := users.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("token user no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// Actor returns the authenticated user for the request, or nil when
// anonymous.
func Actor(c echo.Context) *models.User {
	if user, ok := c.Get(ActorKey).(*models.User); ok {
		return user
	}
	return nil
}
