package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"facturo/internal/config"
	"facturo/internal/email/noop"
	"facturo/internal/email/ses"
	"facturo/internal/extract/openai"
	"facturo/internal/handler"
	"facturo/internal/port"
	"facturo/internal/repository/postgres"
	"facturo/internal/router"
	"facturo/internal/service"
	s3storage "facturo/internal/storage/s3"
	"facturo/internal/supplier"

	_ "facturo/docs"
)

// @title Facturo API
// @version 1.0
// @description Invoice extraction and accounting allocation API for French accounting firms.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepo(db)
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	invRepo := postgres.NewInvoiceRepo(db)
	allocRepo := postgres.NewAllocationRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	aliasRepo := postgres.NewSupplierAliasRepo(db)
	accountRepo := postgres.NewLedgerAccountRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// Initialize extraction provider
	extractor := openai.NewExtractor(&cfg.Extractor)

	// Initialize services
	resolver := supplier.NewResolver(supplierRepo, aliasRepo)
	authSvc := service.NewAuthService(userRepo, orgRepo, cfg.JWT)
	orgSvc := service.NewOrganizationService(orgRepo)
	userSvc := service.NewUserService(userRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	invSvc := service.NewInvoiceService(invRepo, fileRepo, allocRepo, userRepo, s3Client, extractor, resolver, emailSender)
	allocSvc := service.NewAllocationService(allocRepo, invRepo)
	supplierSvc := service.NewSupplierService(supplierRepo, aliasRepo)
	exportSvc := service.NewExportService(allocRepo, invRepo, supplierRepo, accountRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	orgH := handler.NewOrganizationHandler(orgSvc)
	userH := handler.NewUserHandler(userSvc)
	fileH := handler.NewFileHandler(fileSvc)
	invoiceH := handler.NewInvoiceHandler(invSvc)
	allocH := handler.NewAllocationHandler(allocSvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, orgH, userH, fileH, invoiceH, allocH, supplierH, exportH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the extraction queue worker
	worker := service.NewExtractQueueWorker(invRepo, invSvc, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}

	// Wait for in-flight extractions to finish
	<-workerDone
	log.Println("Shutdown complete")
	return nil
}
