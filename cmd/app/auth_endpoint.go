package main

import (
	"errors"
	"net/http"

	"SchemePortalAPI/internal/middleware"
	"SchemePortalAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resendRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"` // registration | login
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		err := authSvc.InitiateRegistration(
			c.Request().Context(),
			req.Name,
			req.Email,
			req.Password,
			req.Role,
		)
		if err != nil {
			if errors.Is(err, services.ErrDuplicateAccount) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "account already exists"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"message": "OTP sent, please verify to complete registration",
		})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		err := authSvc.InitiateLogin(
			c.Request().Context(),
			req.Email,
			req.Password,
			req.Role,
		)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"message": "OTP sent, please verify to sign in",
		})
	}
}

// verifyHandler covers both purposes; verify is the same shape either way.
func verifyHandler(authSvc *services.AuthService, registration bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(verifyRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		verify := authSvc.VerifyLogin
		if registration {
			verify = authSvc.VerifyRegistration
		}

		user, err := verify(c.Request().Context(), req.Email, req.OTP)
		if err != nil {
			if errors.Is(err, services.ErrInvalidOrExpiredOTP) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired OTP"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
		}

		token, err := middleware.GenerateToken(user.UserID, user.Email, user.Name, user.UserType, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create token"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token":    token,
			"redirect": services.RedirectTarget(user.UserType),
			"user": echo.Map{
				"userid":    user.UserID,
				"name":      user.Name,
				"email":     user.Email,
				"user_type": user.UserType,
			},
		})
	}
}

func resendOTPHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resendRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := authSvc.ResendOTP(c.Request().Context(), req.Email, req.Type); err != nil {
			if errors.Is(err, services.ErrNoPendingOTP) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "no pending verification"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "OTP resent"})
	}
}

// meHandler returns the authenticated user's info
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"userid": claims.UserID,
			"name":   claims.Name,
			"email":  claims.Email,
			"role":   claims.Role,
			"exp":    claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.POST("/verify-registration", verifyHandler(authSvc, true))
	auth.POST("/login", loginHandler(authSvc))
	auth.POST("/verify-login", verifyHandler(authSvc, false))
	auth.POST("/resend-otp", resendOTPHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler())
}
