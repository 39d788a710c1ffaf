package main

import (
	"strconv"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type fileGrievanceRequest struct {
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	SchemeName  *string `json:"scheme_name,omitempty"`
}

type grievanceStatusRequest struct {
	Status  string  `json:"status"`
	Remarks *string `json:"remarks,omitempty"`
}

func registerGrievanceRoutes(g *echo.Group, gs *services.GrievanceService) {
	grievances := g.Group("/grievances")
	grievances.Use(middleware.JWTMiddleware())

	// CITIZEN: file a grievance
	citizen := grievances.Group("", middleware.CitizenOnly)
	citizen.POST("", func(c echo.Context) error {
		req := new(fileGrievanceRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		claims := middleware.GetClaims(c)
		id, err := gs.File(c.Request().Context(), claims.UserID, req.Subject, req.Description, req.Category, req.SchemeName)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"grievanceid": id})
	})

	// CITIZEN: list own grievances
	citizen.GET("/mine", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		list, err := gs.ListOwn(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	// ADMIN: list all, filter by ?status=
	admin := grievances.Group("", middleware.AdminOnly)
	admin.GET("", func(c echo.Context) error {
		list, err := gs.ListAll(c.Request().Context(), c.QueryParam("status"))
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	// ADMIN: move a grievance through its lifecycle
	admin.PUT("/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "invalid id"})
		}
		req := new(grievanceStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		if err := gs.UpdateStatus(c.Request().Context(), id, req.Status, req.Remarks); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "updated"})
	})
}
