package controller

import (
	"net/http"
	"procurement-workflow-api/internal/service"
	"strings"
	"time"

	"github.com/labstack/echo"
)

const bearerPrefix = "Bearer "

// authMiddleware parses the bearer token and resolves the actor context for
// the request: own roles plus the roles of every delegation active right now.
func authMiddleware(authService service.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Missing bearer token"})
			}

			userId, err := authService.ParseToken(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid token"})
			}

			actor, err := authService.ResolveActor(c.Request().Context(), userId, time.Now())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Unknown user"})
			}

			c.Set(actorContextKey, actor)

			return next(c)
		}
	}
}
