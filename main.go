package main

import (
	"log"
	"net"
	"net/http"

	"Murmur/config"
	"Murmur/database"
	"Murmur/handlers"
	"Murmur/httpserver"
	"Murmur/logger"
	"Murmur/middleware"
	"Murmur/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/netutil"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	logger.Info("Initializing Murmur components...")

	services.InitTokenService(cfg)
	if err := services.InitUploadStore(cfg); err != nil {
		log.Fatal("Failed to initialize upload store:", err)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := database.SeedAdminUser(cfg); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging)

	// Public routes
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	r.Post("/signup", handlers.SignupHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Get("/all-posts", handlers.AllPostsHandler)
	r.Get("/posts/{id}/comments", handlers.ListCommentsHandler)

	// Uploaded images are publicly servable
	fs := http.FileServer(http.Dir(services.UploadsDir()))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/user", handlers.CurrentUserHandler)
		r.Put("/user", handlers.UpdateProfileHandler)
		r.Post("/user/photo", handlers.UploadProfilePhotoHandler)
		r.Post("/posts", handlers.CreatePostHandler)
		r.Get("/posts", handlers.MyPostsHandler)
		r.Post("/comments", handlers.CreateCommentHandler)

		// Moderation routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Put("/posts/{id}", handlers.UpdatePostHandler)
			r.Delete("/posts/{id}", handlers.DeletePostHandler)
			r.Delete("/comments/{id}", handlers.DeleteCommentHandler)
		})
	})

	addr := ":" + cfg.ServerPort
	logger.Info("Murmur is starting", "addr", addr, "environment", cfg.Environment, "debug", cfg.Debug)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("FATAL: Failed to listen on %s: %v", addr, err)
	}
	// Cap concurrent connections so a flood degrades to queueing, not OOM
	listener = netutil.LimitListener(listener, cfg.MaxConns)

	srv := httpserver.CreateServer(httpserver.DefaultConfig(addr), r)
	if err := srv.Serve(listener); err != nil {
		log.Fatalf("FATAL: Server failed: %v", err)
	}
}
