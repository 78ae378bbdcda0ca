package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendlab/attendance-backend-go/internal/config"
	appHTTP "github.com/attendlab/attendance-backend-go/internal/handler/http"
	"github.com/attendlab/attendance-backend-go/internal/pkg/cron"
	"github.com/attendlab/attendance-backend-go/internal/pkg/database"
	"github.com/attendlab/attendance-backend-go/internal/pkg/email"
	"github.com/attendlab/attendance-backend-go/internal/pkg/evidence"
	"github.com/attendlab/attendance-backend-go/internal/pkg/facematch"
	"github.com/attendlab/attendance-backend-go/internal/pkg/geocode"
	"github.com/attendlab/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendlab/attendance-backend-go/internal/pkg/storage"
	"github.com/attendlab/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendlab/attendance-backend-go/internal/service/attendance"
	authService "github.com/attendlab/attendance-backend-go/internal/service/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

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

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	var verifier facematch.Verifier
	switch cfg.FaceMatch.Provider {
	case "openai":
		verifier = facematch.NewOpenAIVerifier(cfg.FaceMatch.APIKey, cfg.FaceMatch.Model, cfg.FaceMatch.Threshold)
	default:
		log.Fatal("Unsupported face match provider: ", cfg.FaceMatch.Provider)
	}

	resolver := evidence.NewResolver(
		evidence.NewMetadataExtractor(),
		evidence.NewOverlayExtractor(),
	)

	geocoder := geocode.NewNominatimClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		approvalRepo,
		employeeRepo,
		adminRepo,
		branchRepo,
		siteRepo,
		verifier,
		resolver,
		geocoder,
		fileStorage,
		emailService,
		cfg.App.BaseURL,
	)
	authSvc := authService.NewAuthService(employeeRepo, adminRepo, jwtService)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	approvalHandler := appHTTP.NewApprovalHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		approvalHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
