package loader

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	errors "wiki-stream/errors"
	models "wiki-stream/models"

	// External Packages
	"go.uber.org/zap"
)

//go:generate mockgen -source=loader.go -destination=./mocks/mock_loader.go -package=mocks

// DefaultChunkSize is the number of documents sent per bulk request.
const DefaultChunkSize = 1000

type DocumentIndexer interface {
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string, mapping json.RawMessage) error
	BulkIndex(ctx context.Context, index string, docs []models.Document) (models.BulkResult, error)
}

// Loader bulk loads documents into an index, chunkSize documents at a time.
type Loader struct {
	indexer   DocumentIndexer
	chunkSize int
	logger    *zap.Logger
}

func NewLoader(indexer DocumentIndexer, chunkSize int, logger *zap.Logger) *Loader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Loader{indexer: indexer, chunkSize: chunkSize, logger: logger}
}

// EnsureIndex creates index with the optional mapping unless it already
// exists, in which case the mapping is ignored. It reports whether the index
// was created.
func (l *Loader) EnsureIndex(ctx context.Context, index string, mapping json.RawMessage) (bool, error) {
	if index == "" {
		return false, errors.EmptyParamErr("index")
	}

	exists, err := l.indexer.IndexExists(ctx, index)
	if err != nil {
		return false, err
	}
	if exists {
		l.logger.Info("index already exists", zap.String("index", index))
		return false, nil
	}

	if err = l.indexer.CreateIndex(ctx, index, mapping); err != nil {
		return false, err
	}
	l.logger.Info("created index", zap.String("index", index), zap.Bool("mapping", len(mapping) > 0))
	return true, nil
}

// Load indexes docs in chunks. A failed bulk request stops the load and the
// counts of the chunks sent so far are returned with the error. Documents the
// cluster rejects inside a bulk response are counted as failed and the load
// goes on.
func (l *Loader) Load(ctx context.Context, index string, docs []models.Document) (models.BulkResult, error) {
	total := models.BulkResult{}
	if index == "" {
		return total, errors.EmptyParamErr("index")
	}

	for start := 0; start < len(docs); start += l.chunkSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		end := min(start+l.chunkSize, len(docs))
		result, err := l.indexer.BulkIndex(ctx, index, docs[start:end])
		if err != nil {
			l.logger.Error("bulk insert failed",
				zap.String("index", index),
				zap.Int("from", start),
				zap.Int("to", end),
				zap.Error(err),
			)
			return total, err
		}
		total.Merge(result)
		l.logger.Debug("indexed chunk", zap.Int("indexed", result.Indexed), zap.Int("failed", len(result.Failed)))
	}

	l.logger.Info("indexed documents",
		zap.String("index", index),
		zap.Int("indexed", total.Indexed),
		zap.Int("failed", len(total.Failed)),
	)
	return total, nil
}
