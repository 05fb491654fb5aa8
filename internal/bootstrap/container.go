package bootstrap

import (
	"context"
	"log"
	"time"

	"stylista-be/internal/config"
	"stylista-be/internal/controller"
	"stylista-be/internal/pkg/logger"
	"stylista-be/internal/pkg/serverutils"
	"stylista-be/internal/repository/cache"
	"stylista-be/internal/repository/memory"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/internal/service"
	"stylista-be/internal/websocket"
	"stylista-be/pkg/assistant"
	"stylista-be/pkg/assistant/executor"
	"stylista-be/pkg/assistant/intent"
	"stylista-be/pkg/assistant/vocabulary"
	"stylista-be/pkg/llm/factory"
	pktNats "stylista-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChatbotController   controller.IChatbotController
	ProductController   controller.IProductController
	ShopperController   controller.IShopperController
	WebsocketController controller.IWebsocketController

	// JwtMiddleware guards every route except health and the websocket
	// handshake.
	JwtMiddleware fiber.Handler

	// Background workers started by main.
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

const redisPingTimeout = 3 * time.Second

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	turnLogger := logger.NewIsolatedLogger(cfg.App.AnalyticsLogPath)

	if cfg.App.JwtSecret == "" {
		log.Printf("[WARN] JWT_SECRET is empty; every authenticated request will be rejected")
	}

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	var closers []func()

	// NATS is optional; without it turns are pushed straight to websockets.
	var events service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	} else {
		events = natsPub
		closers = append(closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	} else {
		closers = append(closers, natsSub.Close)
	}

	// Redis is optional; a nil client disables the trending cache and the
	// cross-instance relay.
	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		closers = append(closers, func() { rdb.Close() })
	}

	wsHub := websocket.NewHub(rdb, sysLogger)

	// Model
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Ai.LLMApiKey,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Assistant
	vocab := vocabulary.Default()
	catalog := service.NewCatalogGateway(uowFactory, cache.NewTrendingCache(rdb, cfg.Assistant.TrendCacheTTL, sysLogger))
	shopAssistant := assistant.New(llmProvider, catalog, vocab, assistantConfig(cfg), sysLogger)

	// Services
	publisherService := service.NewPublisherService(cfg.App.TurnTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.TurnTopic, events, wsHub, turnLogger, sysLogger)

	var notificationService *service.NotificationService
	if natsSub != nil {
		notificationService = service.NewNotificationService(natsSub, wsHub, sysLogger)
	}

	shopperService := service.NewShopperService(uowFactory, memory.NewShopperCache(cfg.Assistant.ShopperCacheTTL), sysLogger)
	productService := service.NewProductService(uowFactory, catalog, vocab)
	chatbotService := service.NewChatbotService(
		uowFactory,
		shopAssistant,
		shopperService,
		publisherService,
		cfg.Ai.HistoryWindow,
		sysLogger,
	)

	return &Container{
		ChatbotController:   controller.NewChatbotController(chatbotService),
		ProductController:   controller.NewProductController(productService),
		ShopperController:   controller.NewShopperController(shopperService),
		WebsocketController: controller.NewWebsocketController(wsHub, cfg.App.JwtSecret, sysLogger),
		JwtMiddleware:       serverutils.NewJwtMiddleware(cfg.App.JwtSecret),

		ConsumerService:     consumerService,
		NotificationService: notificationService,
		WebSocketHub:        wsHub,
		Logger:              sysLogger,

		closers: closers,
	}
}

// Close releases broker connections and flushes logs.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}

// connectRedis returns nil when Redis does not answer a ping.
func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, continuing without it: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func assistantConfig(cfg *config.Config) assistant.Config {
	resolver := intent.DefaultResolverOptions()
	resolver.MaxRetries = cfg.Ai.MaxRetries
	resolver.AttemptTimeout = cfg.Ai.AttemptTimeout
	resolver.MaxTokens = cfg.Ai.MaxTokens
	resolver.Temperature = cfg.Ai.Temperature
	resolver.HistoryWindow = cfg.Ai.HistoryWindow

	exec := executor.DefaultOptions()
	exec.SearchLimit = cfg.Assistant.SearchLimit
	exec.TrendLimit = cfg.Assistant.TrendLimit
	exec.TrendDays = cfg.Assistant.TrendDays
	exec.RecommendCount = cfg.Assistant.RecommendCount

	return assistant.Config{Resolver: resolver, Executor: exec}
}
