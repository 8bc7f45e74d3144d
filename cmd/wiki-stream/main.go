package main

import (
	// Go Internal Packages
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "wiki-stream/config"
	kafka "wiki-stream/kafka"
	metrics "wiki-stream/metrics"
	printer "wiki-stream/services/printer"
	utils "wiki-stream/utils"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/knadh/koanf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag. The offset-reset flag, when
// given, is returned as is and applied over the loaded configuration.
func LoadConfig() (*koanf.Koanf, string) {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()
	offsetResetMsg := `Where to start without a committed offset ("earliest" or "latest")`
	offsetReset := kingpin.Flag("offset-reset", offsetResetMsg).Enum("earliest", "latest")

	kingpin.Parse()

	return config.Load(*configPath), *offsetReset
}

// applyOffsetReset overrides the configured policy with the command line one.
func applyOffsetReset(conf kafka.ConsumerConfig, flag string) (kafka.ConsumerConfig, error) {
	if flag == "" {
		return conf, nil
	}
	reset, err := kafka.ParseOffsetReset(flag)
	if err != nil {
		return kafka.ConsumerConfig{}, err
	}
	return conf.WithOffsetReset(reset), nil
}

func main() {
	k, offsetReset := LoadConfig()

	// Unmarshalling and validating the config loaded
	appKonf, err := config.Unmarshal(k)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	consumerConf, err := appKonf.ConsumerConfig()
	if err == nil {
		consumerConf, err = applyOffsetReset(consumerConf, offsetReset)
	}
	if err != nil {
		log.Fatalf("Invalid kafka configuration: %v", err)
	}

	logger, err := utils.NewLogger(appKonf.Logger.Level, appKonf.Application)
	if err != nil {
		log.Fatalf("Cannot build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !appKonf.IsProdMode {
		logger.Debug("loaded config", zap.Any("config", k.All()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.New(appKonf.Metrics.Namespace)
	reg, err := metrics.NewRegistry(appMetrics)
	if err != nil {
		logger.Fatal("cannot register metrics", zap.Error(err))
	}
	kafkaMetrics := kprom.NewMetrics(appKonf.Metrics.Namespace,
		kprom.Registerer(reg),
		kprom.Gatherer(reg),
	)

	recordPrinter, err := printer.NewPrinter(os.Stdout, consumerConf.ValueFormat, appMetrics, logger)
	if err != nil {
		logger.Fatal("cannot create printer", zap.Error(err))
	}

	consumer, err := kafka.NewConsumer(ctx, consumerConf, recordPrinter, logger, kafka.WithHooks(kafkaMetrics))
	if err != nil {
		logger.Fatal("cannot create wikimedia consumer", zap.Error(err))
	}

	if err = run(ctx, appKonf, consumer, reg, logger); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
	logger.Info("consumer shut down")
}

type runner interface {
	Run(ctx context.Context) error
}

// run polls until ctx is canceled or the consumer fails, serving metrics
// alongside when enabled. A signal-driven shutdown is not an error.
func run(ctx context.Context, appKonf config.Config, consumer runner, gatherer prometheus.Gatherer, logger *zap.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return consumer.Run(gCtx)
	})

	if appKonf.Metrics.Enabled {
		srv := &http.Server{
			Addr:    appKonf.Metrics.Addr,
			Handler: metrics.NewRouter(gatherer, logger),
		}
		g.Go(func() error {
			return metrics.Serve(gCtx, srv, logger)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
