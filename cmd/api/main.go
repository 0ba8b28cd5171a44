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

	"github.com/joho/godotenv"
	"github.com/urep/registration-api/internal/config"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/urep/registration-api/internal/infrastructure/jwt"
	"github.com/urep/registration-api/internal/infrastructure/otpstore"
	"github.com/urep/registration-api/internal/infrastructure/qoreid"
	"github.com/urep/registration-api/internal/infrastructure/sms"
	transporthttp "github.com/urep/registration-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if the secret is missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Identity provider credentials are required: every verification needs a
	// bearer token, so a misconfiguration should fail at startup, not on the
	// first request.
	identityClient, err := qoreid.NewClient(cfg)
	if err != nil {
		log.Fatalf("identity provider: %v", err)
	}

	// SMS sender. Outside development every issued OTP must be dispatched, so
	// a missing gateway configuration is a startup failure like the identity
	// credentials above. In development the OTP is echoed, not dispatched.
	smsSender, err := sms.NewSender(cfg)
	if err != nil {
		if !cfg.IsDevelopment() {
			log.Fatalf("SMS sender: %v", err)
		}
		log.Printf("WARN: SMS sender not available: %v", err)
	}

	// In-memory OTP store with background expiry sweeping.
	otpStore := otpstore.New(domain.OTPSweepPeriod)
	defer otpStore.Close()

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		AdminRepo:        dynamo.NewAdminRepo(dynamoClient, cfg.DynamoTables.Admins),
		ProgrammeRepo:    dynamo.NewProgrammeRepo(dynamoClient, cfg.DynamoTables.Programmes),
		FormFieldRepo:    dynamo.NewFormFieldRepo(dynamoClient, cfg.DynamoTables.FormFields),
		RegistrationRepo: dynamo.NewRegistrationRepo(dynamoClient, cfg.DynamoTables.Registrations),
		ResponseRepo:     dynamo.NewResponseRepo(dynamoClient, cfg.DynamoTables.Responses),
		ProgramInfoRepo:  dynamo.NewProgramInfoRepo(dynamoClient, cfg.DynamoTables.ProgramInfo),
		IdentityClient:   identityClient,
		OTPStore:         otpStore,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
