package main

import (
	"strconv"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type submitProposalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SchemeName  string  `json:"scheme_name"`
	Amount      float64 `json:"amount"`
	District    *string `json:"district,omitempty"`
}

type reviewProposalRequest struct {
	Decision string  `json:"decision"` // approved | rejected
	Comments *string `json:"comments,omitempty"`
}

func registerProposalRoutes(g *echo.Group, ps *services.ProposalService) {
	proposals := g.Group("/proposals")
	proposals.Use(middleware.JWTMiddleware())

	// AGENCY: submit and track proposals
	agency := proposals.Group("", middleware.AgencyOnly)
	agency.POST("", func(c echo.Context) error {
		req := new(submitProposalRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		claims := middleware.GetClaims(c)
		id, err := ps.Submit(c.Request().Context(), claims.UserID, req.Title, req.Description, req.SchemeName, req.Amount, req.District)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"proposalid": id})
	})

	agency.GET("/mine", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		list, err := ps.ListOwn(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	// ADMIN: review queue
	admin := proposals.Group("", middleware.AdminOnly)
	admin.GET("", func(c echo.Context) error {
		list, err := ps.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	admin.GET("/:id/reviews", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "invalid id"})
		}
		list, err := ps.ListReviews(c.Request().Context(), id)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	admin.POST("/:id/review", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "invalid id"})
		}
		req := new(reviewProposalRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		claims := middleware.GetClaims(c)
		reviewID, err := ps.Review(c.Request().Context(), id, claims.UserID, req.Decision, req.Comments)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"reviewid": reviewID})
	})
}
