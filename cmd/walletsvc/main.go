package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"momo-wallet/cmd/walletsvc/config"
	"momo-wallet/internal/momowallet"
	"momo-wallet/internal/momowallet/data/database"
	"momo-wallet/internal/momowallet/data/dbrepository"
	"momo-wallet/internal/momowallet/provider"
	"momo-wallet/internal/momowallet/service"
	"momo-wallet/pkg/logging"
	"momo-wallet/pkg/pgxstorage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(zapcore.InfoLevel)
	if err != nil {
		log.Fatal(err)
	}

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
	storage, err := pgxstorage.New(dbFactory)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	repository := dbrepository.New(storage, logger)
	transactionManager := pgxstorage.NewTransactionsManager(storage)

	tokenAuth := jwtauth.New(cfg.JWTConfig.Algorithm, []byte(cfg.JWTConfig.Secret), nil)

	gateways := provider.NewRegistry(
		provider.NewMTN(cfg.MTN, logger),
		provider.NewAirtel(cfg.Airtel, logger),
	)

	services := momowallet.Services{
		Withdrawals: service.NewWithdrawals(repository, gateways, logger),
		Callbacks:   service.NewCallbacks(transactionManager, repository, logger),
		Topups:      service.NewTopups(transactionManager, repository, logger),
		Wallet:      service.NewWallet(transactionManager, repository),
	}

	server := momowallet.NewServer(cfg.Server, tokenAuth, services, cfg.CallbackSecrets, logger)

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGABRT,
	)
	defer cancelCtx()

	if err := run(rootCtx, cfg, server, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(rootCtx context.Context, cfg *config.Config, server *momowallet.Server, logger *logging.ZapLogger) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}
