package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "wiki-stream/config"
	models "wiki-stream/models"
	opensearch "wiki-stream/repositories/opensearch"
	loader "wiki-stream/services/loader"
	utils "wiki-stream/utils"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

type options struct {
	ConfigPath  string
	File        string
	Index       string
	MappingPath string
	Format      string
	ChunkSize   int
}

func parseFlags(args []string) (options, error) {
	app := kingpin.New("opensearch-loader", "Bulk loads a CSV or JSON file into an OpenSearch index.")
	opts := options{}
	app.Flag("config", "Path to the application config file").Short('c').Default("config.yml").StringVar(&opts.ConfigPath)
	app.Flag("file", "Path to the CSV or JSON file to load").Short('f').Required().StringVar(&opts.File)
	app.Flag("index", "Index to load the documents into").Short('i').Required().StringVar(&opts.Index)
	app.Flag("mapping", "Path to a JSON file with the index mappings").StringVar(&opts.MappingPath)
	app.Flag("format", "File format, taken from the file extension when not set").EnumVar(&opts.Format, models.FormatCSV, models.FormatJSON)
	app.Flag("chunk-size", "Documents per bulk request, overrides opensearch.chunk_size").IntVar(&opts.ChunkSize)

	_, err := app.Parse(args)
	return opts, err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	// Unmarshalling and validating the config loaded
	appKonf, err := config.Unmarshal(config.Load(opts.ConfigPath))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = appKonf.OpenSearch.ChunkSize
	}

	logger, err := utils.NewLogger(appKonf.Logger.Level, "opensearch-loader")
	if err != nil {
		log.Fatalf("Cannot build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := opensearch.Connect(ctx, appKonf.OpenSearch)
	if err != nil {
		logger.Fatal("cannot connect to opensearch", zap.Error(err))
	}

	result, err := run(ctx, opts, opensearch.NewIndexRepository(client), logger)
	if err != nil {
		logger.Fatal("load failed", zap.Error(err), zap.Int("indexed", result.Indexed))
	}
	for _, f := range result.Failed {
		logger.Warn("document not indexed", zap.String("id", f.ID), zap.Int("status", f.Status), zap.String("reason", f.Reason))
	}
	logger.Info("load finished",
		zap.String("index", opts.Index),
		zap.Int("indexed", result.Indexed),
		zap.Int("failed", len(result.Failed)),
	)
}

// run reads the input file, makes sure the index exists and bulk loads the documents.
func run(ctx context.Context, opts options, indexer loader.DocumentIndexer, logger *zap.Logger) (models.BulkResult, error) {
	docs, err := loader.ReadDocuments(opts.File, opts.Format)
	if err != nil {
		return models.BulkResult{}, err
	}
	mapping, err := loader.ReadMapping(opts.MappingPath)
	if err != nil {
		return models.BulkResult{}, err
	}

	l := loader.NewLoader(indexer, opts.ChunkSize, logger)
	if _, err = l.EnsureIndex(ctx, opts.Index, mapping); err != nil {
		return models.BulkResult{}, err
	}

	logger.Info("loading documents", zap.String("file", opts.File), zap.Int("documents", len(docs)))
	return l.Load(ctx, opts.Index, docs)
}
