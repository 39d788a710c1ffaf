package main

import (
	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerAdminRoutes(g *echo.Group, st *services.StatsService) {
	admin := g.Group("/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	// monitoring dashboard: per-table row counts
	admin.GET("/stats", func(c echo.Context) error {
		counts, err := st.TableCounts(c.Request().Context())
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, counts)
	})
}
