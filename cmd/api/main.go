package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/email"
	"storefront/internal/httpserver"
	cartrepo "storefront/internal/repository/cart"
	newsletterrepo "storefront/internal/repository/newsletter"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	adminsvc "storefront/internal/service/admin"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
	usersvc "storefront/internal/service/user"
	"storefront/internal/stockstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTTL, cfg.EmailTokenTTL)
	mailer := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	stream := stockstream.NewHub()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	newsletterRepo := newsletterrepo.NewPostgres(dbpool)

	productService := productsvc.New(productRepo, stream)
	cartService := cartsvc.New(cartRepo, productRepo)
	userService := usersvc.New(userRepo, tokens, mailer, cfg.FrontendURL)
	adminService := adminsvc.New(userRepo, productRepo, newsletterRepo, adminsvc.Settings{
		WelcomeMessage: "Welcome to the storefront admin panel",
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:    cartService,
		ProductSvc: productService,
		UserSvc:    userService,
		AdminSvc:   adminService,
		Newsletter: newsletterRepo,
		Stream:     stream,
		Tokens:     tokens,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
