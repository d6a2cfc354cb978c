// Command blogapi runs the blog platform HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/blogapi/auth/jwt"
	"github.com/kbukum/blogapi/auth/password"
	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/blog/comments"
	"github.com/kbukum/blogapi/blog/posts"
	"github.com/kbukum/blogapi/blog/users"
	"github.com/kbukum/blogapi/config"
	"github.com/kbukum/blogapi/database"
	"github.com/kbukum/blogapi/logger"
	"github.com/kbukum/blogapi/server"
	"github.com/kbukum/blogapi/version"
)

func main() {
	var cfg Config
	if err := config.LoadConfig("blogapi", &cfg); err != nil {
		logger.NewDefault("blogapi").Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.NewDefault("blogapi").Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.New(&cfg.Log, cfg.App.Name)
	logger.SetGlobalLogger(log)

	log.Info("Starting blogapi", map[string]interface{}{
		"version":     version.Get().String(),
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.MigrateUp(); err != nil {
			log.Fatal("Failed to run migrations", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	tokens, err := jwt.NewService(&cfg.Auth.JWT, func() *authz.Claims {
		return &authz.Claims{}
	})
	if err != nil {
		log.Fatal("Failed to initialize token service", map[string]interface{}{
			"error": err.Error(),
		})
	}

	userStore := users.NewGormStore(db)
	postStore := posts.NewGormStore(db)
	commentStore := comments.NewGormStore(db)

	hasher := password.NewBcryptHasher()
	userService := users.NewService(userStore, hasher, tokens, log)
	postService := posts.NewService(postStore, log)
	commentService := comments.NewService(commentStore, postStore, log)

	verifier := authz.NewTokenVerifier(tokens)
	lookup := blog.NewAuthorLookup(postStore, commentStore)
	pipeline := authz.NewPipeline(verifier, lookup, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	registerRoutes(srv.GinEngine(), pipeline, handlers{
		users:    users.NewHandler(userService),
		posts:    posts.NewHandler(postService),
		comments: comments.NewHandler(commentService),
	}, cfg.App.Name)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", map[string]interface{}{
			"error": err.Error(),
		})
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
