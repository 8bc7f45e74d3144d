package kafka

import (
	// Go Internal Packages
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	// Local Packages
	errors "wiki-stream/errors"
	models "wiki-stream/models"
	utils "wiki-stream/utils"

	// External Packages
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=consumer.go -destination=./mocks/mock_consumer.go -package=mocks

// ErrClientClosed is returned by Run when the client was closed underneath the poll loop.
var ErrClientClosed = errors.E(errors.Unavailable, "kafka client closed", kgo.ErrClientClosed)

// poller is the part of *kgo.Client the poll loop needs.
type poller interface {
	PollFetches(ctx context.Context) kgo.Fetches
	Close()
}

// RecordProcessor receives every non-empty batch in delivery order.
type RecordProcessor interface {
	ProcessRecords(ctx context.Context, records []models.Record) error
}

// State is the lifecycle state of a Consumer.
type State int32

const (
	StateSubscribed State = iota + 1
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateSubscribed:
		return "subscribed"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Consumer runs the poll loop of a single-topic group member.
type Consumer struct {
	client    poller
	config    ConsumerConfig
	processor RecordProcessor
	logger    *zap.Logger
	state     atomic.Int32
	closeOnce sync.Once
}

// Option adds franz-go client options on top of the ones derived from ConsumerConfig.
type Option func(opts []kgo.Opt) []kgo.Opt

// WithHooks attaches client hooks, e.g. kprom metrics.
func WithHooks(hooks ...kgo.Hook) Option {
	return func(opts []kgo.Opt) []kgo.Opt {
		return append(opts, kgo.WithHooks(hooks...))
	}
}

// WithClientOpts passes raw franz-go options through.
func WithClientOpts(extra ...kgo.Opt) Option {
	return func(opts []kgo.Opt) []kgo.Opt {
		return append(opts, extra...)
	}
}

// NewConsumer creates the client, subscribes it to conf.Topic and pings the
// seed brokers so an unreachable cluster fails here rather than in the first poll.
// Records are only fetched once Run is called.
func NewConsumer(ctx context.Context, conf ConsumerConfig, processor RecordProcessor, logger *zap.Logger, options ...Option) (*Consumer, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.ValidationFailedErr(err)
	}

	opts := append(conf.clientOpts(),
		kgo.OnPartitionsAssigned(func(_ context.Context, _ *kgo.Client, assigned map[string][]int32) {
			logger.Info("partitions assigned", zap.String("assignment", utils.FormatAssignment(assigned)))
		}),
		kgo.OnPartitionsLost(func(_ context.Context, _ *kgo.Client, lost map[string][]int32) {
			logger.Warn("partitions lost", zap.String("assignment", utils.FormatAssignment(lost)))
		}),
	)
	for _, o := range options {
		opts = o(opts)
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, errors.E(errors.Internal, "cannot create kafka client", err)
	}

	pingCtx := ctx
	if conf.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, conf.PingTimeout)
		defer cancel()
	}
	if err = client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, errors.E(errors.Unavailable, "cannot reach kafka brokers", err)
	}

	return newConsumer(client, conf, processor, logger), nil
}

func newConsumer(client poller, conf ConsumerConfig, processor RecordProcessor, logger *zap.Logger) *Consumer {
	if conf.PollTimeout <= 0 {
		conf.PollTimeout = DefaultPollTimeout
	}
	c := &Consumer{client: client, config: conf, processor: processor, logger: logger}
	c.state.Store(int32(StateSubscribed))
	return c
}

// State reports whether the consumer is still subscribed.
func (c *Consumer) State() State {
	return State(c.state.Load())
}

// Run polls the subscribed topic until ctx is canceled or an error occurs and
// hands every batch, in the order the client returned it, to the processor.
// The client is closed before Run returns, whatever the reason.
//
// Errors are not retried: a fetch error or a processor error ends the loop
// and is returned to the caller.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.Close()

	c.logger.Info("consumer subscribed",
		zap.String("topic", c.config.Topic),
		zap.String("group_id", c.config.GroupID),
		zap.Strings("brokers", c.config.Brokers),
		zap.String("offset_reset", string(c.config.OffsetReset)),
		zap.Duration("poll_timeout", c.config.PollTimeout),
	)

	for {
		// Check if the context is canceled before polling
		if ctx.Err() != nil {
			c.logger.Warn("polling stopped: context canceled")
			return ctx.Err()
		}

		records, err := c.poll(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}

		c.logger.Debug("polled records", zap.Int("count", len(records)))
		if err = c.processor.ProcessRecords(ctx, records); err != nil {
			return err
		}
	}
}

// poll waits up to the poll timeout for the next batch. A poll that times out
// yields an empty batch.
func (c *Consumer) poll(ctx context.Context) ([]models.Record, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.config.PollTimeout)
	defer cancel()

	fetches := c.client.PollFetches(pollCtx)

	// Handle client shutdown
	if fetches.IsClientClosed() {
		return nil, ErrClientClosed
	}

	// Parent context canceled while we were blocked
	if ctx.Err() != nil {
		c.logger.Warn("polling stopped: context canceled")
		return nil, ctx.Err()
	}

	var pollErr error
	fetches.EachError(func(topic string, partition int32, err error) {
		if pollErr != nil || errors.IsErr(err, context.DeadlineExceeded) || errors.IsErr(err, context.Canceled) {
			return
		}
		pollErr = classifyFetchErr(topic, partition, err)
	})
	if pollErr != nil {
		return nil, pollErr
	}

	records := make([]models.Record, 0, fetches.NumRecords())
	fetches.EachRecord(func(r *kgo.Record) {
		records = append(records, models.Record{
			Key:       r.Key,
			Value:     r.Value,
			Topic:     r.Topic,
			Partition: r.Partition,
			Offset:    r.Offset,
		})
	})
	return records, nil
}

// classifyFetchErr tags a fetch error with the kind of failure it represents.
func classifyFetchErr(topic string, partition int32, err error) error {
	msg := fmt.Sprintf("cannot fetch from %s/%d", topic, partition)

	var opErr *net.OpError
	switch {
	case errors.IsErr(err, kerr.UnknownTopicOrPartition),
		errors.IsErr(err, kerr.TopicAuthorizationFailed),
		errors.IsErr(err, kerr.GroupAuthorizationFailed):
		return errors.E(errors.Subscription, msg, err)
	case errors.As(err, &opErr):
		return errors.E(errors.Unavailable, msg, err)
	}
	return errors.E(errors.Internal, msg, err)
}

// Close releases the client. Only the first call has an effect.
func (c *Consumer) Close() {
	c.closeOnce.Do(func() {
		c.client.Close()
		c.state.Store(int32(StateTerminated))
		c.logger.Info("kafka client closed", zap.String("topic", c.config.Topic))
	})
}
