package main

import (
	"strconv"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type fundRequest struct {
	SchemeName string  `json:"scheme_name"`
	FiscalYear string  `json:"fiscal_year"`
	District   string  `json:"district"`
	Allocated  float64 `json:"allocated"`
	Utilized   float64 `json:"utilized"`
}

type fundAmountsRequest struct {
	Allocated float64 `json:"allocated"`
	Utilized  float64 `json:"utilized"`
}

func registerFundRoutes(g *echo.Group, fs *services.FundService) {

	// PUBLIC: fund transparency view, filter by ?scheme=
	g.GET("/funds", func(c echo.Context) error {
		list, err := fs.List(c.Request().Context(), c.QueryParam("scheme"))
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	g.GET("/funds/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "invalid id"})
		}
		fund, err := fs.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(404, map[string]string{"error": "fund allocation not found"})
		}
		return c.JSON(200, fund)
	})

	// ADMIN: manage allocations
	admin := g.Group("/funds")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.POST("", func(c echo.Context) error {
		req := new(fundRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		id, err := fs.Create(c.Request().Context(), &model.FundAllocation{
			SchemeName: req.SchemeName,
			FiscalYear: req.FiscalYear,
			District:   req.District,
			Allocated:  req.Allocated,
			Utilized:   req.Utilized,
		})
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"fundid": id})
	})

	admin.PUT("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(fundAmountsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		if err := fs.UpdateAmounts(c.Request().Context(), id, req.Allocated, req.Utilized); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "updated"})
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := fs.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "deleted"})
	})
}
