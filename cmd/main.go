package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/parishkeeper/parish-server/internal/api/grpc/health"
	grpcrouter "github.com/parishkeeper/parish-server/internal/api/grpc/router"
	grpcserver "github.com/parishkeeper/parish-server/internal/api/grpc/server"
	httpctx "github.com/parishkeeper/parish-server/internal/api/http/context"
	httprouter "github.com/parishkeeper/parish-server/internal/api/http/router"
	httpserver "github.com/parishkeeper/parish-server/internal/api/http/server"
	"github.com/parishkeeper/parish-server/internal/claimcode"
	"github.com/parishkeeper/parish-server/internal/config"
	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/metrics"
	"github.com/parishkeeper/parish-server/internal/model"
	"github.com/parishkeeper/parish-server/internal/password"
	"github.com/parishkeeper/parish-server/internal/repository/postgres"
	"github.com/parishkeeper/parish-server/internal/server"
	"github.com/parishkeeper/parish-server/internal/service"
	storage "github.com/parishkeeper/parish-server/internal/storage/minio"
	"github.com/parishkeeper/parish-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	sacramentRepo := postgres.NewSacramentRepository(db)
	donationRepo := postgres.NewDonationRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	districtRepo := postgres.NewDistrictRepository(db)
	announcementRepo := postgres.NewAnnouncementRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	m := metrics.New()
	hasher := password.NewHasher(cfg.Password.BcryptCost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	authService := service.NewAuth(userRepo, memberRepo, registrationRepo, hasher, tokenManager, m, logger)
	identityService := service.NewIdentity(tokenManager, userRepo, logger)
	userService := service.NewUser(userRepo, logger)
	memberService := service.NewMember(memberRepo, claimcode.NewGenerator(), cfg.Claim.CodeTTL, m, logger)
	sacramentService := service.NewSacrament(sacramentRepo, memberRepo, userRepo, storageClient, logger)
	donationService := service.NewDonation(donationRepo, memberRepo, logger)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			logger.Fatal("failed to bootstrap admin", "error", err)
		}
		if created {
			logger.Info("bootstrap admin created", "email", cfg.Admin.Email)
		}
	}

	httpHandler := httprouter.New(
		httprouter.Services{
			Auth:          authService,
			Identity:      identityService,
			Users:         userService,
			Members:       memberService,
			Sacraments:    sacramentService,
			Donations:     donationService,
			Events:        service.NewEvent(eventRepo),
			Attendance:    service.NewAttendance(attendanceRepo),
			Districts:     service.NewDistrict(districtRepo, memberRepo),
			Announcements: service.NewAnnouncement(announcementRepo),
			DB:            db,
		},
		httprouter.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		},
		httpctx.NewManager(),
		m,
		logger,
	).Register()

	readiness := health.NewReadiness(db, cfg.GRPC.CheckInterval, logger)
	go readiness.Run(ctx)

	servers := []model.Server{
		httpserver.NewHTTPServer(httpHandler, fmt.Sprintf(":%s", cfg.HTTP.Port)),
		grpcserver.NewGRPCServer(grpcrouter.New(readiness.Server(), logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}

	sl := server.NewSecurityLayer(cfg.TLS)

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
