package main

import (
	"context"
	"errors"
	"fmt"
	"itembox/itembox/config"
	"itembox/itembox/controllers"
	"itembox/itembox/routes"
	"itembox/itembox/security"
	"itembox/itembox/sources/psql"
	"itembox/itembox/sources/psql/dao"
	"itembox/itembox/sources/storage"
	"itembox/itembox/utils/logging"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	store, err := storage.NewFileStore(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("storage init error", zap.Error(err))
		os.Exit(1)
	}

	tokens, err := security.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)
	if err != nil {
		logging.ErrorLogger.Error("token manager init error", zap.Error(err))
		os.Exit(1)
	}

	userDAO := dao.NewUserDAO(db.DB, security.NewHasher(bcrypt.DefaultCost))
	itemDAO := dao.NewItemDAO(db.DB)

	r := routes.NewRouter(routes.Handlers{
		Auth:   controllers.NewAuthController(userDAO, tokens),
		Items:  controllers.NewItemsController(itemDAO),
		Images: controllers.NewImagesController(store, userDAO, itemDAO),
		Health: controllers.NewHealthController(db),
		Tokens: tokens,
		Users:  userDAO,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
