package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/GradGlobe-org/admin-panel-sub000/config"
	"github.com/GradGlobe-org/admin-panel-sub000/database"
	_ "github.com/GradGlobe-org/admin-panel-sub000/docs" // Swagger docs - auto-generated
	adminctrl "github.com/GradGlobe-org/admin-panel-sub000/internal/controller/admin"
	studentctrl "github.com/GradGlobe-org/admin-panel-sub000/internal/controller/student"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/logger"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/middleware"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/model"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/repository"
	"github.com/GradGlobe-org/admin-panel-sub000/internal/service"
)

// @title GradGlobe Exam API
// @version 1.0
// @description Exam assignment, test-taking and evaluation API for the GradGlobe admin panel.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewTestRepository,
			repository.NewCourseRepository,
			repository.NewTestStatusRepository,
			repository.NewAnswerRepository,
			repository.NewEvaluationRepository,
		),

		// Services
		fx.Provide(
			service.NewLogNotifier,
			service.NewJWTIdentityProvider,
			service.NewGeminiGrader,
			service.NewAssignmentService,
			service.NewAttemptService,
			service.NewEvaluationService,
			service.NewReportService,
			service.NewAdminTestService,
			service.NewAdminCourseService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminCourseController,
			studentctrl.NewStudentTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	identityProvider service.IdentityProvider,
	adminTestCtrl *adminctrl.AdminTestController,
	adminCourseCtrl *adminctrl.AdminCourseController,
	studentTestCtrl *studentctrl.StudentTestController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	adminAPIGroup.Use(middleware.Auth(identityProvider, service.RoleEmployee))
	{
		adminAPIGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminAPIGroup.GET("/tests", adminTestCtrl.ListTests)
		adminAPIGroup.GET("/tests/:test_id", adminTestCtrl.GetTest)

		adminAPIGroup.POST("/courses", adminCourseCtrl.CreateCourse)
		adminAPIGroup.POST("/courses/:course_id/tests", adminCourseCtrl.AttachTest)
		adminAPIGroup.POST("/courses/:course_id/enrollments", adminCourseCtrl.EnrollStudent)
	}

	studentAPIGroup := router.Group("/api/v1")
	studentAPIGroup.Use(middleware.Auth(identityProvider, service.RoleStudent))
	{
		studentAPIGroup.GET("/tests/:test_id/status", studentTestCtrl.GetStatus)
		studentAPIGroup.POST("/tests/:test_id/start", studentTestCtrl.StartOrResume)
		studentAPIGroup.PUT("/tests/:test_id/answers", studentTestCtrl.SaveAnswer)
		studentAPIGroup.POST("/tests/:test_id/submit", studentTestCtrl.Submit)

		studentAPIGroup.POST("/attempts/:attempt_id/evaluate", studentTestCtrl.Evaluate)
		studentAPIGroup.GET("/attempts/:attempt_id/report", studentTestCtrl.GetReport)
		studentAPIGroup.GET("/attempts/:attempt_id/summary", studentTestCtrl.GetSummary)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Student{},
		&model.Employee{},
		&model.Course{},
		&model.Test{},
		&model.TestSection{},
		&model.Question{},
		&model.Option{},
		&model.CourseTest{},
		&model.Enrollment{},
		&model.TestStatus{},
		&model.Answer{},
		&model.Evaluation{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
