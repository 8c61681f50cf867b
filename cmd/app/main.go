package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fooddelivery/cmd"
	httpadapter "fooddelivery/internal/adapters/in/http"
	redisin "fooddelivery/internal/adapters/in/redis"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	redisout "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})

	publisher := redisout.NewEventPublisher(redisClient, logger)
	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	sessionTTL := mustParseSessionTTL(configs.PaymentSessionTTL)
	jobManager := jobs.NewJobManager(app.CreateExpireStalePaymentsCommandHandler(), sessionTTL, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer := redisin.NewPaymentConsumer(
		redisClient,
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateExpirePaymentSessionCommandHandler(),
		logger,
	)
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go func() {
		if err := consumer.Run(consumerCtx); err != nil {
			logger.Error("payment consumer stopped", "error", err)
		}
	}()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:         goDotEnvVariable("REDIS_ADDR"),
		PaymentSessionTTL: goDotEnvVariable("PAYMENT_SESSION_TTL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderReceiptDTO{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	return gormDB
}

func mustParseSessionTTL(raw string) time.Duration {
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid PAYMENT_SESSION_TTL %q: %v", raw, err)
	}
	return ttl
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateExpirePaymentSessionCommandHandler(),
		app.CreateAssignCourierCommandHandler(),
		app.CreateVerifyDeliveryPinCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
