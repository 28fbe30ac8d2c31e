package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gameminde/Zinouchawebsie/auth"
	orderControllers "github.com/Gameminde/Zinouchawebsie/controllers/order"
	"github.com/Gameminde/Zinouchawebsie/middleware"
	"github.com/Gameminde/Zinouchawebsie/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "create or update tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	log.Println("✅ Starting application...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(cfg, autoMigrate)
	if err != nil {
		return err
	}
	defer closeStore()

	// Login stays disabled (503) until Firebase is configured.
	var verifier auth.IdentityVerifier
	if cfg.Firebase.CredentialsJSON != "" {
		fb, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase)
		if err != nil {
			return fmt.Errorf("failed to initialise firebase: %w", err)
		}
		verifier = fb
	} else {
		log.Println("⚠️ Firebase is not configured, login is disabled")
	}

	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecurityHeaders)

	routes.SetupRoutes(r, routes.Deps{
		Store:           st,
		Sessions:        auth.NewSessionManager(cfg.Auth),
		Verifier:        verifier,
		Hub:             orderControllers.NewHub(),
		SuperAdminEmail: cfg.Auth.SuperAdminEmail,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
