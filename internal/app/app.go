package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/karibbean/cart-service/config"
	"github.com/karibbean/cart-service/internal/adapter/httphandler"
	"github.com/karibbean/cart-service/internal/adapter/kafka"
	"github.com/karibbean/cart-service/internal/adapter/messenger"
	"github.com/karibbean/cart-service/internal/adapter/notifier"
	"github.com/karibbean/cart-service/internal/adapter/storage"
	"github.com/karibbean/cart-service/internal/core/service"
	"github.com/karibbean/cart-service/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	cartEvent schema.Serde
	order     schema.Serde
}

type producers struct {
	cartEvents kafka.CartEventsProducer
	orders     kafka.OrdersProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	producers  producers
	cartStore  storage.RedisCartStore
	sqldb      storage.SQLDB
	engine     *service.CartEngine
	checkout   *service.Checkout
	consumer   kafka.OrdersConsumer
	statsProc  *kafka.ProductStatsProcessor
	statsView  *kafka.ProductStatsView
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	cartEventSS := app.cfg.Broker.Topics.CartEvents + "-value"
	cartEventSerde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(cartEventSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	orderSS := app.cfg.Broker.Topics.Orders + "-value"
	orderSerde, err := schema.NewSerdeOrderV1(
		ctx,
		schema.SubjectOpt(orderSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.cartEvent = cartEventSerde
	app.serdes.order = orderSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers

	cartEventsProducer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, app.cfg.Broker.Topics.CartEvents),
		kafka.ProducerEncoderOpt(app.serdes.cartEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, app.cfg.Broker.Topics.Orders),
		kafka.ProducerEncoderOpt(app.serdes.order),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producers.cartEvents = cartEventsProducer
	app.producers.orders = ordersProducer

	cartStore, err := storage.NewRedisCartStore(
		ctx,
		app.cfg.CartStore.Addr,
		app.cfg.CartStore.Password,
		app.cfg.CartStore.DB,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.cartStore = cartStore

	sqldb, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	notices := notifier.NewSlogNotifier()

	engine := service.NewCartEngine(
		app.ctx,
		service.DefaultStockLedger(),
		app.cartStore,
		notices,
		app.cfg.CartStore.CartKey,
	)
	engine.AddObserver(kafka.NewCartEventsObserver(app.producers.cartEvents))
	app.engine = engine

	whatsApp := messenger.NewWhatsAppSubmitter(messenger.WhatsAppConfig{
		BaseURL:       app.cfg.Checkout.WhatsApp.BaseURL,
		APIVersion:    app.cfg.Checkout.WhatsApp.APIVersion,
		AccessToken:   app.cfg.Checkout.WhatsApp.AccessToken,
		PhoneNumberID: app.cfg.Checkout.WhatsApp.PhoneNumberID,
		Recipient:     app.cfg.Checkout.WhatsApp.Recipient,
		StoreName:     app.cfg.Checkout.StoreName,
	})

	email := messenger.NewEmailSubmitter(messenger.EmailConfig{
		BaseURL:    app.cfg.Checkout.Email.BaseURL,
		ServiceID:  app.cfg.Checkout.Email.ServiceID,
		TemplateID: app.cfg.Checkout.Email.TemplateID,
		PublicKey:  app.cfg.Checkout.Email.PublicKey,
		StoreName:  app.cfg.Checkout.StoreName,
	})

	app.checkout = service.NewCheckout(
		engine, notices, app.producers.orders, whatsApp, email,
	)

	archive := service.NewOrderArchive(storage.NewOrdersRepository(app.sqldb))

	consumer, err := kafka.NewOrdersConsumer(
		kafka.ConsumerClientOpt(
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.Orders,
			app.cfg.Broker.Consumers.OrderArchiverGroup,
		),
		kafka.ConsumerDecoderOpt(app.serdes.order),
		kafka.OrdersConsumerArchiverOpt(archive),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.consumer = consumer

	statsProc, err := kafka.NewProductStatsProcessor(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.CartEvents,
		app.cfg.Broker.Consumers.ProductStatsGroup,
		app.serdes.cartEvent,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.statsProc = statsProc

	statsView, err := kafka.NewProductStatsView(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Consumers.ProductStatsGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.statsView = statsView
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, app.engine)
	httphandler.RegisterCheckout(mux, app.checkout)
	httphandler.RegisterStats(mux, app.statsView)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(httphandler.ServerConfig{
		Addr:           app.cfg.HTTPServer.Addr,
		HandlerTimeout: app.cfg.HTTPServer.HandlerTimeout,
		IdleTimeout:    app.cfg.HTTPServer.IdleTimeout,
	}, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.consumer.Run(app.ctx)
	go app.statsProc.Run(app.ctx)
	go app.statsView.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.consumer.Close()
	app.statsProc.Close()
	app.producers.cartEvents.Close()
	app.producers.orders.Close()
	app.cartStore.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
