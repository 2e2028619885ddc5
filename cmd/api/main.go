package main

import (
	"marketcart/internal/config"
	"marketcart/internal/domain/model"
	"marketcart/internal/handler"
	"marketcart/internal/infra/cartstore"
	"marketcart/internal/infra/db"
	infraRepo "marketcart/internal/infra/repository"
	"marketcart/internal/server"
	"marketcart/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// .envが無くても環境変数があれば動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.PricingPlan{},
		&model.Farmer{},
		&model.Farm{},
		&model.Product{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	//カートストア（Redis）
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	store := cartstore.NewRedisCartStore(redisClient, cfg.CartTTL)

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	feeRepo := infraRepo.NewFeeRateGormRepository(gormDB)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(store, productRepo, feeRepo, logger)
	productUC := usecase.NewProductUsecase(productRepo)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	productH := handler.NewProductHandler(productUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, logger, cartH, productH)
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.GoEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
