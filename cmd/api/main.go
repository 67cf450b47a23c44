package main

import (
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/event"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Order{},
		&model.OrderItem{},
		&model.ContactMessage{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	contactRepo := infraRepo.NewContactMessageGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//注文イベント（ブローカー未設定ならnoop）
	var publisher usecase.OrderEventPublisher = event.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := event.NewKafkaPublisher(cfg.KafkaBrokers)
		defer func() { _ = kp.Close() }()
		publisher = kp
	}

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, profileRepo, authValidator)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, txManager, publisher, logger)
	profileUC := usecase.NewProfileUsecase(txManager)
	contactUC := usecase.NewContactUsecase(contactRepo)

	//Handler生成
	h := server.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		Order:   handler.NewOrderHandler(orderUC),
		User:    handler.NewUserHandler(profileUC),
		Product: handler.NewProductHandler(),
		Chat:    handler.NewChatHandler(),
		Contact: handler.NewContactHandler(contactUC),
	}

	e := server.New(cfg, logger, userRepo, h)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("starting api server")
	if err := server.Start(e, addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
