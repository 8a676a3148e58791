package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/config"
	appHTTP "github.com/kerjakita/kerjakita-backend-go/internal/handler/http"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/cron"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/email"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/jwt"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/storage"
	"github.com/kerjakita/kerjakita-backend-go/internal/repository/postgresql"
	applicationService "github.com/kerjakita/kerjakita-backend-go/internal/service/application"
	serviceAuth "github.com/kerjakita/kerjakita-backend-go/internal/service/auth"
	contractService "github.com/kerjakita/kerjakita-backend-go/internal/service/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/file"
	interviewService "github.com/kerjakita/kerjakita-backend-go/internal/service/interview"
	jobService "github.com/kerjakita/kerjakita-backend-go/internal/service/job"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/match"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/notification"
	profileService "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
	resignationService "github.com/kerjakita/kerjakita-backend-go/internal/service/resignation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jobseekerRepo := postgresql.NewJobseekerRepository(db)
	recruiterRepo := postgresql.NewRecruiterRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	interviewRepo := postgresql.NewInterviewRepository(db)
	participantRepo := postgresql.NewParticipantRepository(db)
	resignationRepo := postgresql.NewResignationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	notifier := notification.NewNotifier(emailService)

	scorer, err := match.NewScorer(context.Background(), cfg.Match)
	if err != nil {
		log.Fatal("Failed to initialize match scorer:", err)
	}

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	profileSvc := profileService.NewProfileService(jobseekerRepo, recruiterRepo, userRepo)
	jobSvc := jobService.NewJobService(jobRepo)
	applicationSvc := applicationService.NewApplicationService(
		applicationRepo,
		jobRepo,
		jobseekerRepo,
		userRepo,
		scorer,
		notifier,
	)
	contractSvc := contractService.NewContractService(
		batchRepo,
		workerRepo,
		applicationRepo,
		recruiterRepo,
		userRepo,
		notifier,
	)
	interviewSvc := interviewService.NewInterviewService(
		interviewRepo,
		participantRepo,
		applicationRepo,
		jobseekerRepo,
		userRepo,
		notifier,
	)
	resignationSvc := resignationService.NewResignationService(
		resignationRepo,
		applicationRepo,
		workerRepo,
		jobseekerRepo,
		userRepo,
		notifier,
	)

	handlers := appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authSvc),
		Profile:     appHTTP.NewProfileHandler(profileSvc),
		Job:         appHTTP.NewJobHandler(jobSvc, profileSvc),
		Application: appHTTP.NewApplicationHandler(applicationSvc, profileSvc),
		Contract:    appHTTP.NewContractHandler(contractSvc, profileSvc),
		Interview:   appHTTP.NewInterviewHandler(interviewSvc, profileSvc),
		Resignation: appHTTP.NewResignationHandler(resignationSvc, profileSvc),
		Upload:      appHTTP.NewUploadHandler(fileService),
	}

	router := appHTTP.NewRouter(JWTService, handlers)

	scheduler := cron.NewScheduler()
	cron.NewInterviewJobs(interviewRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
	db.Close()
}
