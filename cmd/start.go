package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"dropsync/core/config"
	"dropsync/core/database"
	"dropsync/core/loader"
	"dropsync/core/logger"
	authmw "dropsync/core/middleware/auth"
	"dropsync/core/middleware/rayid"
	"dropsync/core/security"
	"dropsync/core/storage"

	"dropsync/feature/account"
	accountmodels "dropsync/feature/account/models"
	"dropsync/feature/auth"
	authmodels "dropsync/feature/auth/models"
	"dropsync/feature/dashboard"
	"dropsync/feature/supplier"
	suppliermodels "dropsync/feature/supplier/models"
	"dropsync/feature/sync"
	syncmodels "dropsync/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "dropsync/docs/swagger"
)

// @title DropSync API
// @version 1.0
// @description API for syncing supplier stock feeds to eBay listings.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the DropSync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		// Every feature persists through it, so a failure here is fatal.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("name", cfg.Database.Name))

		if cfg.Database.AutoMigrate {
			err := db.AutoMigrate(
				&authmodels.User{},
				&accountmodels.EbayAccount{},
				&suppliermodels.SupplierFeed{},
				&syncmodels.SyncJob{},
			)
			if err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}

		// 4. Initialize Snapshot Storage (Optional)
		// When disabled, sync runs skip archiving and the snapshot
		// endpoints return 503.
		var archiver *storage.Archiver
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			archiver = storage.NewArchiver(store, cfg.Storage.Bucket, logg)
			if err := archiver.EnsureBucket(cmd.Context()); err != nil {
				logg.Fatal("Failed to prepare snapshot bucket", zap.Error(err))
			}
			logg.Info("Feed snapshot archive enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		tokens := security.NewTokenManager(cfg.Auth)
		authFeature := auth.NewFeature(db, tokens, logg)
		syncFeature := sync.NewFeature(db, archiver, logg)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(authFeature)
		mgr.Register(account.NewFeature(db, logg))
		mgr.Register(supplier.NewFeature(db, archiver, logg))
		mgr.Register(syncFeature)
		mgr.Register(dashboard.NewFeature(db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. CORS (dashboard dev servers send credentialed requests)
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.Origins(),
			AllowCredentials: true,
		}))

		// 3. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth
		// Register and login stay in front of the token middleware,
		// everything after it requires a valid bearer token for a user
		// that still exists and is active.
		authFeature.LoadPublic(app)
		app.Use(authmw.New(authmw.Config{Tokens: tokens}))
		app.Use(authFeature.RequireActiveUser())

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		// Let in-flight sync runs finish so job rows are not left in
		// running state.
		syncFeature.Drain()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
