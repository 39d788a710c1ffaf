package main

import (
	"strconv"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type collegeRequest struct {
	Name     string  `json:"name"`
	District string  `json:"district"`
	Address  *string `json:"address,omitempty"`
}

type courseRequest struct {
	CollegeID      int64  `json:"collegeid"`
	CourseName     string `json:"course_name"`
	DurationMonths int    `json:"duration_months"`
	Seats          int    `json:"seats"`
}

type registerCourseRequest struct {
	CourseID int64 `json:"courseid"`
}

func registerCourseRoutes(g *echo.Group, cs *services.CourseService) {

	// PUBLIC: browse colleges and courses
	g.GET("/colleges", func(c echo.Context) error {
		list, err := cs.ListColleges(c.Request().Context())
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	g.GET("/courses", func(c echo.Context) error {
		collegeID, _ := strconv.ParseInt(c.QueryParam("collegeid"), 10, 64)
		list, err := cs.ListCourses(c.Request().Context(), collegeID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	g.GET("/courses/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "invalid id"})
		}
		course, err := cs.GetCourse(c.Request().Context(), id)
		if err != nil {
			return c.JSON(404, map[string]string{"error": "course not found"})
		}
		return c.JSON(200, course)
	})

	// ADMIN: manage colleges
	colleges := g.Group("/colleges")
	colleges.Use(middleware.JWTMiddleware())
	colleges.Use(middleware.AdminOnly)

	colleges.POST("", func(c echo.Context) error {
		req := new(collegeRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		id, err := cs.CreateCollege(c.Request().Context(), req.Name, req.District, req.Address)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"collegeid": id})
	})

	colleges.PUT("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(collegeRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		if err := cs.UpdateCollege(c.Request().Context(), id, req.Name, req.District, req.Address); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "updated"})
	})

	colleges.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := cs.DeleteCollege(c.Request().Context(), id); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "deleted"})
	})

	// ADMIN: manage courses
	courses := g.Group("/courses")
	courses.Use(middleware.JWTMiddleware())
	courses.Use(middleware.AdminOnly)

	courses.POST("", func(c echo.Context) error {
		req := new(courseRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		id, err := cs.CreateCourse(c.Request().Context(), req.CollegeID, req.CourseName, req.DurationMonths, req.Seats)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"courseid": id})
	})

	courses.PUT("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(courseRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		if err := cs.UpdateCourse(c.Request().Context(), &model.Course{
			CourseID:       id,
			CourseName:     req.CourseName,
			DurationMonths: req.DurationMonths,
			Seats:          req.Seats,
		}); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "updated"})
	})

	courses.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := cs.DeleteCourse(c.Request().Context(), id); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "deleted"})
	})

	courses.GET("/:id/registrations", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		list, err := cs.ListCourseRegistrations(c.Request().Context(), id)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	// registrations
	regs := g.Group("/registrations")
	regs.Use(middleware.JWTMiddleware())

	citizen := regs.Group("", middleware.CitizenOnly)
	citizen.POST("", func(c echo.Context) error {
		req := new(registerCourseRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request"})
		}
		claims := middleware.GetClaims(c)
		id, err := cs.Register(c.Request().Context(), claims.UserID, req.CourseID)
		if err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(201, map[string]interface{}{"registrationid": id})
	})

	citizen.GET("/mine", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		list, err := cs.ListOwnRegistrations(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, list)
	})

	citizen.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		claims := middleware.GetClaims(c)
		if err := cs.CancelOwn(c.Request().Context(), id, claims.UserID); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "cancelled"})
	})

	admin := regs.Group("", middleware.AdminOnly)
	admin.PUT("/:id/confirm", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := cs.ConfirmRegistration(c.Request().Context(), id); err != nil {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(200, map[string]string{"message": "confirmed"})
	})
}
