package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/davinra/donasi-api/internal/config"
	"github.com/davinra/donasi-api/internal/logging"
	"github.com/davinra/donasi-api/internal/repository/postgres"
	"github.com/davinra/donasi-api/internal/service"
	transporthttp "github.com/davinra/donasi-api/internal/transport/http"
	"github.com/davinra/donasi-api/internal/transport/mail"
	"github.com/davinra/donasi-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	resetRepo := postgres.NewResetTokenRepo(db)
	donationRepo := postgres.NewDonationRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	mailer := mail.NewResetLinkMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.ResetBaseURL)

	auth := service.NewAuthService(
		userRepo, resetRepo, donationRepo, sessionRepo,
		jwtManager, mailer,
		cfg.ResetThrottle, cfg.ResetTokenTTL, cfg.SessionTTL,
	)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	api := e.Group("/api/v1")
	transporthttp.NewAuthHandler(auth).RegisterRoutes(api)
	transporthttp.NewWebHandler(auth).RegisterRoutes(e)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
