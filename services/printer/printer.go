package printer

import (
	// Go Internal Packages
	"bufio"
	"context"
	"encoding/json"
	"io"

	// Local Packages
	errors "wiki-stream/errors"
	metrics "wiki-stream/metrics"
	models "wiki-stream/models"

	// External Packages
	"go.uber.org/zap"
)

// decodeFunc checks that a value matches its declared format and returns the
// bytes to print.
type decodeFunc func(value []byte) ([]byte, error)

var decoders = map[string]decodeFunc{
	models.FormatString: decodeString,
	models.FormatJSON:   decodeJSON,
}

func decodeString(value []byte) ([]byte, error) { return value, nil }

func decodeJSON(value []byte) ([]byte, error) {
	if !json.Valid(value) {
		return nil, errors.New("value is not valid json")
	}
	return value, nil
}

// Printer writes one line per record, holding only the record value.
type Printer struct {
	w       io.Writer
	decode  decodeFunc
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPrinter(w io.Writer, valueFormat string, m *metrics.Metrics, logger *zap.Logger) (*Printer, error) {
	decode, ok := decoders[valueFormat]
	if !ok {
		return nil, errors.UnsupportedFormatErr(valueFormat)
	}
	return &Printer{w: w, decode: decode, metrics: m, logger: logger}, nil
}

// ProcessRecords prints the batch in order. A value that fails to decode stops
// the batch; lines for the records before it have already been written.
func (p *Printer) ProcessRecords(_ context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	bw := bufio.NewWriter(p.w)
	for _, record := range records {
		value, err := p.decode(record.Value)
		if err != nil {
			p.logger.Error("failed to decode record",
				zap.String("topic", record.Topic),
				zap.Int32("partition", record.Partition),
				zap.Int64("offset", record.Offset),
				zap.Error(err),
			)
			if flushErr := bw.Flush(); flushErr != nil {
				return errors.Wrap(flushErr, "failed to write records")
			}
			return errors.DecodeErr(record.Topic, record.Partition, record.Offset, err)
		}

		if _, err = bw.Write(value); err != nil {
			return errors.Wrap(err, "failed to write record")
		}
		if err = bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "failed to write record")
		}
		p.metrics.RecordsPrinted.WithLabelValues(record.Topic).Inc()
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write records")
	}
	return nil
}
