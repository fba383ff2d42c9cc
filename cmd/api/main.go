package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/famadiop1025/Bokkdej/internal/application/auth"
	"github.com/famadiop1025/Bokkdej/internal/application/billing"
	"github.com/famadiop1025/Bokkdej/internal/application/catalog"
	"github.com/famadiop1025/Bokkdej/internal/application/dish"
	appnotify "github.com/famadiop1025/Bokkdej/internal/application/notify"
	"github.com/famadiop1025/Bokkdej/internal/application/order"
	"github.com/famadiop1025/Bokkdej/internal/application/restaurant"
	infrakafka "github.com/famadiop1025/Bokkdej/internal/infrastructure/kafka"
	infranotify "github.com/famadiop1025/Bokkdej/internal/infrastructure/notify"
	infrapdf "github.com/famadiop1025/Bokkdej/internal/infrastructure/pdf"
	"github.com/famadiop1025/Bokkdej/internal/infrastructure/postgres"
	"github.com/famadiop1025/Bokkdej/internal/infrastructure/rediscache"
	httpRouter "github.com/famadiop1025/Bokkdej/internal/interfaces/http"
	"github.com/famadiop1025/Bokkdej/pkg/config"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	restaurantRepo := postgres.NewRestaurantRepository(pool)
	baseRepo := postgres.NewBaseRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	menuRepo := postgres.NewMenuItemRepository(pool)
	dishRepo := postgres.NewComposedDishRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	eventRepo := postgres.NewOrderEventRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache du catalogue résolu (réponses publiques uniquement)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	catalogCache := rediscache.NewCatalogCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)

	// Puits de notification — chacun n'est branché que s'il est configuré ;
	// le dispatcher ignore les puits nil.
	var push appnotify.PushSender
	if cfg.Notify.FCMServerKey != "" {
		push = infranotify.NewFCMClient(cfg.Notify.FCMEndpoint, cfg.Notify.FCMServerKey, 10*time.Second)
	}
	var sms appnotify.SMSSender
	if cfg.Notify.SMSEndpoint != "" {
		sms = infranotify.NewSMSClient(cfg.Notify.SMSEndpoint, cfg.Notify.SMSAPIKey, 10*time.Second)
	}
	var journal appnotify.EventPublisher
	var kafkaPublisher *infrakafka.Publisher
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kafkaPublisher = infrakafka.NewPublisher(brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		journal = kafkaPublisher
	}
	dispatcher := appnotify.NewDispatcher(push, sms, journal, 5*time.Second, log)

	countryCode := cfg.Notify.SMSCountryCode

	catalogUC := catalog.NewUseCase(baseRepo, ingredientRepo, menuRepo, catalogCache, log)
	dishUC := dish.NewUseCase(baseRepo, ingredientRepo, menuRepo, dishRepo)
	restaurantUC := restaurant.NewUseCase(restaurantRepo, menuRepo, catalogUC)
	cartUC := order.NewCartUseCase(txRunner, orderRepo, dishRepo, restaurantRepo, countryCode, log)
	statusUC := order.NewStatusUseCase(txRunner, orderRepo, userRepo, dispatcher, countryCode, log)
	queryUC := order.NewQueryUseCase(orderRepo, eventRepo, countryCode)
	billingUC := billing.NewUseCase(orderRepo, dishRepo, restaurantRepo, infrapdf.NewReceiptGenerator(), countryCode)
	authUC := auth.NewUseCase(userRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, countryCode, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bokkdej API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		DishUC:       dishUC,
		RestaurantUC: restaurantUC,
		CartUC:       cartUC,
		StatusUC:     statusUC,
		QueryUC:      queryUC,
		BillingUC:    billingUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	// Laisser partir les notifications en vol avant de quitter.
	dispatcher.Wait()

	log.Info().Msg("application arrêtée")
}
