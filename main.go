package main

import (
	stdlog "log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/adapters/hasher"
	apphttp "github.com/lozanofamily/madrid-guide/adapters/http"
	"github.com/lozanofamily/madrid-guide/adapters/llm"
	"github.com/lozanofamily/madrid-guide/adapters/message_broker"
	"github.com/lozanofamily/madrid-guide/adapters/storage/memory"
	"github.com/lozanofamily/madrid-guide/adapters/storage/sqlite"
	"github.com/lozanofamily/madrid-guide/adapters/weather"
	"github.com/lozanofamily/madrid-guide/adapters/websocket"
	"github.com/lozanofamily/madrid-guide/config"
	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/usecase"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

func main() {
	gotenv.Load()
	cfg := config.Load()
	logger := log.With(zap.String("component", "main"))

	// Storage
	var store domain.TripStore
	switch cfg.StorageBackend {
	case "memory":
		store = memory.NewStore()
		logger.Info("using in-memory storage")
	default:
		sqliteStore, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			stdlog.Fatalf("opening sqlite store: %v", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		logger.Info("using sqlite storage", zap.String("path", cfg.SQLitePath))
	}

	// Chulapo's completion backend. Without a key the endpoint still
	// exists; it just answers 500 until one is configured.
	var completer domain.Completer
	switch cfg.ChatBackend {
	case "mock":
		completer = llm.NewMockCompleter()
		logger.Info("using mock chat backend")
	default:
		completer = llm.NewOpenRouterClient(cfg.OpenRouterAPIKey)
		if cfg.OpenRouterAPIKey == "" {
			logger.Warn("OPENROUTER_API_KEY not set, chat endpoint will refuse requests")
		}
	}
	assistant := usecase.NewAssistantService(completer)

	broker := message_broker.NewChannelMessageBroker()
	defer broker.Close()

	wall := usecase.NewWallService(store, broker)

	wsServer := websocket.NewServer(broker)
	go wsServer.RunHub()

	auth := apphttp.NewAuthHandler(hasher.New(), cfg.JWTSecret, cfg.FamilyPassword)
	chat := apphttp.NewChatHandler(assistant)
	trip := apphttp.NewTripHandler(store, wall, weather.NewClient())

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(middleware.BodyLimit("2MB"))

	// Live wall feed. Browsers cannot set headers on the upgrade request,
	// so the token rides in the query string.
	ws := e.Group("/ws")
	ws.Use(auth.JWTMiddleware)
	ws.GET("", wsServer.Handler)

	api := e.Group("/api/v1")

	// Public
	api.GET("/health", trip.HealthCheck)
	api.POST("/auth/unlock", auth.Unlock)

	// Everything else sits behind the family lock.
	protected := api.Group("", auth.JWTMiddleware)

	protected.POST("/chat", chat.Chat)

	protected.GET("/trip", trip.TripInfo)
	protected.GET("/weather", trip.Weather)

	protected.GET("/itinerary", trip.ListItinerary)
	protected.POST("/itinerary", trip.AddItineraryEvent)
	protected.PUT("/itinerary/:id", trip.UpdateItineraryStatus)
	protected.DELETE("/itinerary/:id", trip.DeleteItineraryEvent)

	protected.GET("/places", trip.ListPlaces)
	protected.POST("/places", trip.AddPlace)
	protected.DELETE("/places/:id", trip.DeletePlace)

	protected.GET("/restaurants", trip.ListRestaurants)
	protected.POST("/restaurants", trip.AddRestaurant)
	protected.PUT("/restaurants/:id/visited", trip.SetRestaurantVisited)
	protected.DELETE("/restaurants/:id", trip.DeleteRestaurant)

	protected.GET("/expenses", trip.ListExpenses)
	protected.GET("/expenses/summary", trip.ExpenseSummary)
	protected.POST("/expenses", trip.AddExpense)
	protected.DELETE("/expenses/:id", trip.DeleteExpense)

	protected.GET("/checklist", trip.ListChecklist)
	protected.PUT("/checklist", trip.UpsertChecklistEntry)

	protected.GET("/wall", trip.ListWallPosts)
	protected.POST("/wall", trip.AddWallPost)

	protected.GET("/photos", trip.ListPhotos)
	protected.POST("/photos", trip.AddPhoto)
	protected.DELETE("/photos/:id", trip.DeletePhoto)

	protected.GET("/safety", trip.ListSafetyContacts)
	protected.POST("/safety", trip.AddSafetyContact)
	protected.DELETE("/safety/:id", trip.DeleteSafetyContact)

	protected.GET("/pins", trip.ListMapPins)
	protected.POST("/pins", trip.AddMapPin)
	protected.DELETE("/pins/:id", trip.DeleteMapPin)

	logger.Info("starting server", zap.String("port", cfg.Port))
	stdlog.Fatal(e.Start(":" + cfg.Port))
}
