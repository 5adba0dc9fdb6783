package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/cinefiles/cinefiles-backend/internal/config"
	"github.com/cinefiles/cinefiles-backend/internal/database"
	"github.com/cinefiles/cinefiles-backend/internal/handlers"
	"github.com/cinefiles/cinefiles-backend/internal/middleware"
	"github.com/cinefiles/cinefiles-backend/internal/routes"
	"github.com/cinefiles/cinefiles-backend/internal/services"
	"github.com/cinefiles/cinefiles-backend/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.UsingDefaultSecrets() {
		log.Println("⚠️  WARNING: JWT secrets not set, using insecure defaults.")
		log.Println("   Set JWT_SECRET_KEY and JWT_REFRESH_SECRET_KEY in your environment.")
	}

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	tokens := utils.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cache := &services.CacheService{Client: redisClient}

	userService := &services.UserService{DB: db}
	listService := &services.ListService{DB: db}
	filterService := &services.FilterService{DB: db}
	catalogService := services.NewCatalogService(cfg.TMDBBaseURL, cfg.TMDBBearerToken, cache)
	newsService := services.NewNewsService(cfg.RedditBaseURL, cache)

	if cfg.TMDBBearerToken == "" {
		log.Println("⚠️  WARNING: TMDB_BEARER_TOKEN not set. Catalog endpoints will fail upstream.")
	}

	h := routes.Handlers{
		Auth:    &handlers.AuthHandler{Users: userService, Tokens: tokens},
		Lists:   &handlers.ListHandler{Lists: listService},
		Filters: &handlers.FilterHandler{Filters: filterService},
		Movies:  &handlers.MovieHandler{Catalog: catalogService},
		News:    &handlers.NewsHandler{News: newsService},
	}

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: security headers + in-process limiters on top of the Redis limiter
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + credential rate limiting)")
	}
	r.Use(middleware.RateLimit(redisClient))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h, middleware.RequireAuth(userService, tokens))

	log.Printf("🚀 CineFiles backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
