package momowallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/handlers"
	"momo-wallet/internal/momowallet/middleware"
	"momo-wallet/pkg/logging"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Services struct {
	Withdrawals handlers.WithdrawRequesterService
	Callbacks   handlers.DisbursementCallbackService
	Topups      TopupServices
	Wallet      WalletServices
}

type TopupServices interface {
	handlers.TopupRequesterService
	handlers.TopupCallbackService
}

type WalletServices interface {
	handlers.BalanceGettingService
	handlers.WithdrawalsGettingService
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	tokenAuth *jwtauth.JWTAuth,
	services Services,
	callbackSecrets map[data.Provider]string,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: createMux(
			tokenAuth,
			services,
			callbackSecrets,
			logger,
		),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	tokenAuth *jwtauth.JWTAuth,
	services Services,
	callbackSecrets map[data.Provider]string,
	logger *logging.ZapLogger,
) *chi.Mux {
	withdrawHandler := handlers.NewWithdrawRequesterHandler(services.Withdrawals, logger)
	balanceHandler := handlers.NewBalanceGettingHandler(services.Wallet, logger)
	withdrawalsHandler := handlers.NewWithdrawalsGettingHandler(services.Wallet, logger)
	topupHandler := handlers.NewTopupRequesterHandler(services.Topups, logger)
	callbackHandler := handlers.NewDisbursementCallbackHandler(services.Callbacks, callbackSecrets, logger)
	topupCallbackHandler := handlers.NewTopupCallbackHandler(services.Topups, callbackSecrets, logger)

	loggerContext := middleware.NewLoggerContext()
	panicRecover := middleware.NewPanicRecover(logger)

	router := chi.NewRouter()
	router.Use(loggerContext.CreateHandler)
	router.Use(panicRecover.CreateHandler)

	router.Route("/api/wallet", func(router chi.Router) {
		router.Group(func(router chi.Router) {
			router.Use(jwtauth.Verifier(tokenAuth))
			router.Use(jwtauth.Authenticator(tokenAuth))

			router.Post("/withdraw", withdrawHandler.ServeHTTP)
			router.Post("/topup", topupHandler.ServeHTTP)
			router.Get("/balance", balanceHandler.ServeHTTP)
			router.Get("/withdrawals", withdrawalsHandler.ServeHTTP)
		})

		// Provider-facing webhooks authenticate by HMAC, not by bearer token.
		router.Post("/disbursement-callback", callbackHandler.ServeHTTP)
		router.Post("/topup/callback", topupCallbackHandler.ServeHTTP)
	})

	return router
}
