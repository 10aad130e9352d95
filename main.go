package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/prostore-api/cache"
	"github.com/Kariqs/prostore-api/events"
	"github.com/Kariqs/prostore-api/initializers"
	"github.com/Kariqs/prostore-api/payments"
	"github.com/Kariqs/prostore-api/routes"
	"github.com/Kariqs/prostore-api/services"
	"github.com/Kariqs/prostore-api/storage"
	"github.com/Kariqs/prostore-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	shutdownTimeout = 10 * time.Second
	productCacheTTL = 5 * time.Minute
	productCacheLen = 256
)

var (
	cfg    initializers.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "prostore",
	Short:         "Prostore storefront API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = initializers.LoadEnv(); err != nil {
			return err
		}
		if logger, err = initializers.NewLogger(cfg); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := openDatabase()
		return err
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	db, err := initializers.ConnectToDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := initializers.SyncDatabase(db, logger); err != nil {
		return nil, err
	}
	return db, nil
}

func serve(ctx context.Context) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.UseJSONFieldNames()

	db, err := openDatabase()
	if err != nil {
		return err
	}

	productCache, err := newProductCache(ctx)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	var images services.ImageUploader
	if cfg.ImageBucket != "" {
		store, err := storage.NewImageStore(ctx, cfg.ImageBucket)
		if err != nil {
			return err
		}
		images = store
	} else {
		logger.Warn("No image bucket configured, product image uploads are disabled")
	}

	router := routes.NewRouter(routes.Dependencies{
		DB:     db,
		Log:    logger,
		Tokens: utils.NewTokenIssuer(cfg.JWTSecret, cfg.SessionMaxAge),
		Cache:  productCache,
		Events: publisher,
		Images: images,
		Payments: payments.NewPayPal(payments.Config{
			APIURL:    cfg.PayPal.APIURL,
			ClientID:  cfg.PayPal.ClientID,
			AppSecret: cfg.PayPal.AppSecret,
		}),
		Mailer: utils.NewMailer(utils.MailConfig{
			Address:      cfg.SMTP.Address,
			Host:         cfg.SMTP.Host,
			From:         cfg.SMTP.From,
			Password:     cfg.SMTP.Password,
			TemplatesDir: cfg.SMTP.TemplatesDir,
			ServerURL:    cfg.ServerURL,
		}),
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.SecureCookies,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newProductCache uses redis when REDIS_ADDR is set and an in-process LRU
// otherwise.
func newProductCache(ctx context.Context) (cache.Cache, error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(productCacheLen)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return cache.NewRedis(client, productCacheTTL), nil
}
