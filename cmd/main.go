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

	"github.com/cypresslabs/identity-server/internal/api/http/httpctx"
	"github.com/cypresslabs/identity-server/internal/api/http/router"
	"github.com/cypresslabs/identity-server/internal/config"
	"github.com/cypresslabs/identity-server/internal/hash"
	"github.com/cypresslabs/identity-server/internal/logger"
	"github.com/cypresslabs/identity-server/internal/model"
	"github.com/cypresslabs/identity-server/internal/repository/postgres"
	redisrepo "github.com/cypresslabs/identity-server/internal/repository/redis"
	"github.com/cypresslabs/identity-server/internal/server"
	"github.com/cypresslabs/identity-server/internal/service"
	"github.com/cypresslabs/identity-server/internal/snowflake"
	"github.com/cypresslabs/identity-server/internal/token"
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
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	accountRepo := postgres.NewAccountRepository(db)
	challengeRepo := redisrepo.NewChallengeRepository(redisClient)

	ids, err := snowflake.New(cfg.Snowflake.WorkerID)
	if err != nil {
		logger.Fatal("failed to initialize id generator", "error", err)
	}

	hasher := hash.NewBcrypt()
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	ctxMgr := httpctx.NewManager()

	identityService := service.NewIdentity(accountRepo, hasher, logger)
	verificationService := service.NewVerification(challengeRepo, logger, cfg.Verification.CodeWidth, cfg.Verification.TTL)
	userService := service.NewUser(accountRepo, identityService, verificationService, ids, hasher, tokenManager, logger)

	r := router.New(userService, accountRepo, tokenManager, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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
