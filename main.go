package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"lms_backend/internals/configs"
	database "lms_backend/internals/databases"
	"lms_backend/internals/helpers/storage"
	middlewares "lms_backend/internals/middlewares"
	routes "lms_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(serverConfig())

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	if _, err := database.SeedDefaultTeacher(database.DB); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	blob, err := storage.New()
	if err != nil {
		log.Fatalf("[ERROR] storage: %v", err)
	}

	routes.SetupRoutes(app, database.DB, blob)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.Port
	if port == "" {
		port = "5000"
	}

	go func() {
		log.Printf("[INFO] Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close()
}

// serverConfig only honours X-Forwarded-For when TRUSTED_PROXIES lists the
// proxies in front of the app; otherwise c.IP() is the socket peer.
func serverConfig() fiber.Config {
	cfg := fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          middlewares.ErrorHandler,
		BodyLimit:             (configs.MaxUploadMB + 1) * 1024 * 1024,
	}
	if len(configs.TrustedProxies) > 0 {
		cfg.ProxyHeader = fiber.HeaderXForwardedFor
		cfg.EnableTrustedProxyCheck = true
		cfg.TrustedProxies = configs.TrustedProxies
	}
	return cfg
}
