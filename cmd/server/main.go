package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/belghachem/beehouse/internal/api/handler"
	"github.com/belghachem/beehouse/internal/api/router"
	"github.com/belghachem/beehouse/internal/config"
	"github.com/belghachem/beehouse/internal/infra/cache"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/infra/sms"
	"github.com/belghachem/beehouse/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	seed := flag.Bool("seed", false, "seed the shipping rate table and exit")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cf, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	gin.SetMode(cf.GinMode)

	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	shippingRepo := db.NewShippingRateRepo(dao)

	if *seed {
		count, err := shippingRepo.SeedDefaultRates(context.Background())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to seed shipping rates")
		}
		logger.Info().Int("rates", count).Msg("shipping rates seeded")
		return
	}

	var sharedCache cache.Cache
	if cf.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cf.RedisAddr,
			Password: cf.RedisPassword,
		})
		sharedCache = cache.NewRedisCache(redisClient, "beehouse")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, using in-process cache")
		sharedCache = cache.NewMemoryCache()
	}

	var sender sms.Sender
	if cf.SmsEnabled {
		sender = sms.NewTwilioSender(cf.SmsAccountSID, cf.SmsAuthToken, cf.SmsFromNumber, logger)
	} else {
		sender = sms.NewDisabledSender(logger)
	}

	cartRepo := db.NewCartRepo(dao)
	orderRepo := db.NewOrderRepo(dao)
	productRepo := db.NewProductRepo(dao)
	stopDeskRepo := db.NewStopDeskRepo(dao)
	userRepo := db.NewUserRepo(dao)
	wishlistRepo := db.NewWishlistRepo(dao)

	h := router.Handlers{
		Product:  handler.NewProductHandler(service.NewProductService(productRepo)),
		Cart:     handler.NewCartHandler(service.NewCartService(cartRepo, productRepo)),
		Wishlist: handler.NewWishlistHandler(service.NewWishlistService(wishlistRepo, productRepo)),
		Order:    handler.NewOrderHandler(service.NewOrderService(orderRepo, stopDeskRepo, sender, logger)),
		Shipping: handler.NewShippingHandler(service.NewShippingService(shippingRepo, sharedCache)),
		StopDesk: handler.NewStopDeskHandler(service.NewStopDeskService(stopDeskRepo)),
		User:     handler.NewUserHandler(service.NewUserService(userRepo, sharedCache, sender, logger)),
	}

	server := &http.Server{
		Addr:         ":" + cf.ServerPort,
		Handler:      router.SetupRouter(h, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cf.ServerPort).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
