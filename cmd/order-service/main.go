package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/jcmexdev/order-taking/internal/coordinator/runlog"
	"github.com/jcmexdev/order-taking/internal/coordinator/runlog/sqlite"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/address"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/catalog"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/events"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/grpcapi"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/httpx"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/notify"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/shipping"
	"github.com/jcmexdev/order-taking/internal/order-service/app"
	"github.com/jcmexdev/order-taking/internal/pkg/cache"
	"github.com/jcmexdev/order-taking/internal/pkg/config"
	"github.com/jcmexdev/order-taking/internal/pkg/interceptors"
	"github.com/jcmexdev/order-taking/internal/pkg/metrics"
	"github.com/jcmexdev/order-taking/internal/pkg/telemetry"
)

const (
	addressCacheSize = 1024
	priceCacheSize   = 4096
)

func main() {
	configPath := flag.String("config", os.Getenv("ORDERSVC_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(telemetry.NewLogger(os.Stderr, cfg.App.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("order service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.App.Name, cfg.Tracing.Endpoint, cfg.Tracing.Environment)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	} else {
		telemetry.SetupPropagation()
	}

	cat, err := catalog.New(cfg.Catalog.Prices, cfg.Catalog.Promotions)
	if err != nil {
		return err
	}

	var (
		priceCache cache.Cache
		publisher  app.EventPublisher
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer rdb.Close()
		priceCache = cache.NewRedisCache(rdb, cfg.App.Name)
		publisher = events.NewRedisPublisher(rdb, cfg.Redis.EventsChannel)
	} else {
		priceCache = cache.NewMemoryCache(cfg.App.Name, priceCacheSize, cfg.Redis.PriceTTL)
	}
	prices := catalog.NewCachedPrices(priceCache, cfg.Redis.PriceTTL, cat.GetProductPrice)

	addresses, err := address.NewCachedChecker(address.NewChecker().CheckAddressExists, addressCacheSize)
	if err != nil {
		return err
	}

	var sender app.SendOrderAcknowledgment = notify.LogSender{}.SendOrderAcknowledgment
	if cfg.Rabbit.URL != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			return err
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		defer ch.Close()
		rabbit, err := notify.NewRabbitSender(ch, cfg.Rabbit.Exchange, cfg.Rabbit.AckQueue)
		if err != nil {
			return err
		}
		sender = rabbit.SendOrderAcknowledgment
	}

	var runLog runlog.Repository = runlog.NewMemoryRepository(runlog.WithMaxRuns(cfg.RunLog.MaxRuns))
	if cfg.RunLog.Path != "" {
		repo, err := sqlite.Open(cfg.RunLog.Path)
		if err != nil {
			return err
		}
		defer repo.Close()
		runLog = repo
	}

	m := metrics.New()
	opts := []app.Option{
		app.WithRunLog(runLog),
		app.WithRecorder(m),
		app.WithConcurrency(cfg.App.LineConcurrency),
	}
	if publisher != nil {
		opts = append(opts, app.WithPublisher(publisher))
	}
	workflow := app.NewWorkflow(app.Dependencies{
		CheckProductCodeExists:          cat.CheckProductCodeExists,
		CheckAddressExists:              addresses.CheckAddressExists,
		GetPricingFunction:              app.NewPricingFunction(prices.GetProductPrice, cat.GetPromotionPrice),
		CalculateShippingCost:           shipping.CalculateShippingCost,
		CreateOrderAcknowledgmentLetter: notify.CreateAcknowledgmentLetter,
		SendOrderAcknowledgment:         sender,
	}, opts...)

	httpSrv := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           httpx.NewRouter(httpx.NewHandler(workflow, runLog), m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.RequestIDServerInterceptor(),
			interceptors.LoggingServerInterceptor(),
		),
	)
	grpcapi.Register(grpcSrv, grpcapi.NewServer(workflow))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.App.HTTPAddr != "" {
		g.Go(func() error {
			slog.Info("order service HTTP running", "addr", cfg.App.HTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	if cfg.App.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.App.GRPCAddr)
		if err != nil {
			return err
		}
		g.Go(func() error {
			slog.Info("order service gRPC running", "addr", cfg.App.GRPCAddr)
			return grpcSrv.Serve(lis)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
