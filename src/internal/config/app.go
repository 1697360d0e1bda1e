package config

import (
	"wallet-service/src/internal/delivery/http"
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/delivery/http/route"
	"wallet-service/src/internal/gateway/chapa"
	"wallet-service/src/internal/gateway/messaging"
	"wallet-service/src/internal/gateway/notifier"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/repository"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/databases/mysql"
	kafkaPkgConfluent "wallet-service/src/pkg/kafka/confluent"
	"wallet-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkgConfluent.Producer
	Redis       redis.UniversalClient
	Chapa       *chapa.Client
	Notifier    notifier.Notifier
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	transactor := repository.NewTransactor(config.DB)
	walletRepository := repository.NewWalletRepository(config.DB)
	receiptRepository := repository.NewReceiptRepository(config.DB)
	chapaRepository := repository.NewChapaRepository(config.DB)
	bankRepository := repository.NewBankRepository(config.DB)
	planRepository := repository.NewPlanRepository(config.DB)
	subscriptionRepository := repository.NewSubscriptionRepository(config.DB)
	walletProducer := messaging.NewWalletProducer(config.Producer, config.Log)
	paymentProducer := messaging.NewPaymentProducer(config.Producer, config.Log)

	// setup use cases
	subscriptionUseCase := usecase.NewSubscriptionUseCase(config.Log, subscriptionRepository)
	walletUseCase := usecase.NewWalletUseCase(
		config.Log,
		config.Validate,
		walletRepository,
		transactor,
		config.Config,
		walletProducer,
	)
	receiptUseCase := usecase.NewReceiptUseCase(
		config.Log,
		config.Validate,
		receiptRepository,
		walletRepository,
		bankRepository,
		planRepository,
		subscriptionUseCase,
		transactor,
		config.Config,
		config.Redis,
		config.AsynqClient,
		walletProducer,
	)
	chapaUseCase := usecase.NewChapaUseCase(
		config.Log,
		config.Validate,
		chapaRepository,
		config.Chapa,
		config.Config,
		paymentProducer,
	)
	notificationUseCase := usecase.NewNotificationUseCase(config.Log, config.Notifier)

	// setup controllers
	walletController := http.NewWalletController(walletUseCase, config.Log)
	receiptController := http.NewReceiptController(receiptUseCase, config.Log)
	paymentController := http.NewPaymentController(chapaUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)
	adminMiddleware := middleware.VerifyAdminKey(config.Config)

	if config.Async != nil {
		config.Async.HandleFunc(model.TypeNotifySettlement, notificationUseCase.HandleSettlement)
	}

	routeConfig := route.RouteConfig{
		App:               config.App,
		WalletController:  walletController,
		ReceiptController: receiptController,
		PaymentController: paymentController,
		AuthMiddleware:    authMiddleware,
		AdminMiddleware:   adminMiddleware,
	}
	routeConfig.Setup()
}
