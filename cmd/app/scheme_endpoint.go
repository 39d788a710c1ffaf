package main

import (
	"strconv"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type beneficiaryRequest struct {
	SchemeName    string  `json:"scheme_name"`
	UserID        *int64  `json:"userid,omitempty"`
	Name          string  `json:"name"`
	District      string  `json:"district"`
	BenefitAmount float64 `json:"benefit_amount"`
}

type eligibilityRequest struct {
	SchemeName   string  `json:"scheme_name"`
	Age          int     `json:"age"`
	AnnualIncome float64 `json:"annual_income"`
	District     string  `json:"district"`
	Category     string  `json:"category"`
}

func registerSchemeRoutes(g *echo.Group, ss *services.SchemeService) {

	// beneficiaries
	beneficiaries := g.Group("/beneficiaries")
	beneficiaries.Use(middleware.JWTMiddleware())

	// signed-in users can look up a scheme's beneficiary list
	beneficiaries.GET("", func(c echo.Context) error {
		list, err := ss.ListBeneficiaries(c.Request().Context(), c.QueryParam("scheme"))
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	// CITIZEN: own enrolments
	beneficiaries.GET("/mine", middleware.CitizenOnly(func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		list, err := ss.ListOwnBenefits(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	}))

	// ADMIN: manage enrolments
	admin := beneficiaries.Group("", middleware.AdminOnly)
	admin.POST("", func(c echo.Context) error {
		req := new(beneficiaryRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		id, err := ss.AddBeneficiary(c.Request().Context(), &model.SchemeBeneficiary{
			SchemeName:    req.SchemeName,
			UserID:        req.UserID,
			Name:          req.Name,
			District:      req.District,
			BenefitAmount: req.BenefitAmount,
		})
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"beneficiaryid": id})
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := ss.RemoveBeneficiary(c.Request().Context(), id); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "deleted"})
	})

	// eligibility: citizens run and review their own checks
	eligibility := g.Group("/eligibility")
	eligibility.Use(middleware.JWTMiddleware())
	eligibility.Use(middleware.CitizenOnly)

	eligibility.POST("", func(c echo.Context) error {
		req := new(eligibilityRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		claims := middleware.GetClaims(c)
		check, err := ss.CheckEligibility(c.Request().Context(), claims.UserID, req.SchemeName, req.Age, req.AnnualIncome, req.District, req.Category)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, check)
	})

	eligibility.GET("/mine", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		list, err := ss.ListOwnChecks(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})
}
