package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-be/internal/analytics"
	"bakery-be/internal/auth"
	"bakery-be/internal/cart"
	"bakery-be/internal/chat"
	"bakery-be/internal/checkout"
	"bakery-be/internal/config"
	"bakery-be/internal/db"
	"bakery-be/internal/devicestore"
	"bakery-be/internal/favorite"
	"bakery-be/internal/giftcard"
	"bakery-be/internal/httpapi"
	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"
	"bakery-be/internal/middleware"
	"bakery-be/internal/notify"
	"bakery-be/internal/order"
	"bakery-be/internal/product"
	"bakery-be/internal/realtime"
	"bakery-be/internal/review"
	"bakery-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var (
	initDBFunc       = db.InitDB
	startServerFunc  = startServer
	startRealtimeFunc = startRealtime
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	srv, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer srv.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startRealtimeFunc(ctx, cfg, srv.hub, srv.metrics)

	addr := ":" + cfg.AppPort
	logger.L().Info("server running", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, srv.handler)
}

type server struct {
	handler  http.Handler
	hub      *realtime.Hub
	metrics  *metrics.Registry
	checkout *checkout.Service
}

// close waits for in-flight order notifications.
func (s *server) close() {
	s.checkout.Wait()
}

func newServer(cfg *config.Config, database *sql.DB) (*server, error) {
	reg := metrics.NewRegistry()
	hub := realtime.NewHub()
	tokens := auth.NewManager(cfg.JWTSecret, auth.DefaultTokenTTL)

	productRepo := product.NewRepository(database)
	orderRepo := order.NewRepository(database)

	carts, err := cart.NewRegistry(cfg.CartCacheSize, devicestore.Opener(cfg.CartStorageDir))
	if err != nil {
		return nil, err
	}

	notifier := notify.NewHTTPDispatcher(cfg.NotifyBaseURL, cfg.NotifyAPIKey)
	checkoutSvc := checkout.NewService(orderRepo, notifier, reg)

	router := httpapi.NewRouter(httpapi.Deps{
		Products:      product.NewService(productRepo),
		Orders:        order.NewService(orderRepo),
		Checkout:      checkoutSvc,
		Analytics:     analytics.NewService(orderRepo, productRepo),
		Favorites:     favorite.NewService(favorite.NewRepository(database)),
		Reviews:       review.NewService(review.NewRepository(database)),
		GiftCards:     giftcard.NewService(giftcard.NewRepository(database)),
		Chat:          chat.NewService(chat.NewRepository(database)),
		Users:         user.NewService(user.NewRepository(database), tokens),
		Carts:         carts,
		Metrics:       reg,
		Hub:           hub,
		AllowedOrigin: cfg.CORSOrigin,
		Health:        database.PingContext,
	})

	// request id → auth → rate limit → logging → CORS → routes
	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSOrigin)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.AuthMiddleware(tokens)(handler)
	handler = logger.RequestIDMiddleware(handler)

	return &server{handler: handler, hub: hub, metrics: reg, checkout: checkoutSvc}, nil
}

// startRealtime bridges Postgres change notifications into the hub until ctx ends.
func startRealtime(ctx context.Context, cfg *config.Config, hub *realtime.Hub, reg *metrics.Registry) {
	l := realtime.NewListener(db.BuildDSN(cfg), cfg.RealtimeChannel, hub, reg)
	l.OnReconnect = func() {
		for _, res := range realtime.KnownResources {
			hub.Publish(realtime.Event{Table: res, Action: "RESYNC"})
		}
	}

	go func() {
		if err := l.Run(ctx); err != nil {
			logger.L().Error("realtime listener exited", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()
}

func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
