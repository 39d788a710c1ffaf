package main

import (
	"context"
	"log"
	"os"

	"SchemePortalAPI/external/abstractapi"
	"SchemePortalAPI/external/resend"

	"SchemePortalAPI/internal/db"
	"SchemePortalAPI/internal/repository"
	"SchemePortalAPI/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	if err := db.Migrate(ctx); err != nil {
		log.Fatal(err)
	}
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if os.Getenv("USE_EMAIL_REPUTATION") == "true" {
		emailValidator, err = abstractapi.NewAbstractReputationValidator()
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	var mailer services.Mailer
	if os.Getenv("RESEND_API_KEY") != "" {
		mailer, err = resend.NewResendMailer("SchemePortal<no-reply@resend.dev>")
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, OTP codes go to the log")
		mailer = services.NewLogMailer()
	}

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	grievanceRepo := repository.NewGrievanceRepository(pool)
	proposalRepo := repository.NewProposalRepository(pool)
	collegeRepo := repository.NewCollegeRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	fundRepo := repository.NewFundRepository(pool)
	beneficiaryRepo := repository.NewBeneficiaryRepository(pool)
	eligibilityRepo := repository.NewEligibilityRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	// ======================
	// SERVICES
	// ======================
	hub := services.NewNotificationHub()
	notificationSvc := services.NewNotificationService(notificationRepo, hub)
	authSvc := services.NewAuthService(authRepo, otpRepo, mailer, emailValidator)
	grievanceSvc := services.NewGrievanceService(grievanceRepo, notificationSvc)
	proposalSvc := services.NewProposalService(proposalRepo, notificationSvc)
	courseSvc := services.NewCourseService(courseRepo, collegeRepo, registrationRepo, notificationSvc)
	fundSvc := services.NewFundService(fundRepo)
	schemeSvc := services.NewSchemeService(beneficiaryRepo, eligibilityRepo)
	statsSvc := services.NewStatsService(statsRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/portal")

	registerAuthRoutes(api, authSvc)
	registerGrievanceRoutes(api, grievanceSvc)
	registerProposalRoutes(api, proposalSvc)
	registerCourseRoutes(api, courseSvc)
	registerFundRoutes(api, fundSvc)
	registerSchemeRoutes(api, schemeSvc)
	registerNotificationRoutes(api, notificationSvc)
	registerAdminRoutes(api, statsSvc)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
