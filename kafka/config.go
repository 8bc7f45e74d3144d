package kafka

import (
	// Go Internal Packages
	"strings"
	"time"

	// Local Packages
	errors "wiki-stream/errors"
	models "wiki-stream/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
)

// Compiled-in connection settings of the wikimedia consumer.
const (
	DefaultBroker      = "localhost:9092"
	DefaultGroupID     = "consumer-opensearch"
	DefaultTopic       = "wikimedia"
	DefaultPollTimeout = 3000 * time.Millisecond
	DefaultPingTimeout = 10 * time.Second
)

// OffsetReset decides where the group starts reading a partition that has no
// committed offset.
type OffsetReset string

const (
	// OffsetEarliest starts from the oldest retained record.
	OffsetEarliest OffsetReset = "earliest"
	// OffsetLatest starts with records produced after the group joins.
	OffsetLatest OffsetReset = "latest"
)

// ParseOffsetReset accepts "earliest" or "latest" in any case.
func ParseOffsetReset(s string) (OffsetReset, error) {
	switch r := OffsetReset(strings.ToLower(strings.TrimSpace(s))); r {
	case OffsetEarliest, OffsetLatest:
		return r, nil
	}
	return "", errors.E(errors.Invalid, "unknown offset reset policy", errors.New(s))
}

func (r OffsetReset) offset() kgo.Offset {
	if r == OffsetEarliest {
		return kgo.NewOffset().AtStart()
	}
	return kgo.NewOffset().AtEnd()
}

// ConsumerConfig holds everything the consumer needs to connect, subscribe and
// poll. Build one with BuildConfig and adjust it before calling NewConsumer.
type ConsumerConfig struct {
	Brokers     []string
	GroupID     string
	Topic       string
	OffsetReset OffsetReset
	KeyFormat   string
	ValueFormat string
	PollTimeout time.Duration
	PingTimeout time.Duration
}

// BuildConfig returns the compiled-in consumer configuration.
func BuildConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers:     []string{DefaultBroker},
		GroupID:     DefaultGroupID,
		Topic:       DefaultTopic,
		OffsetReset: OffsetLatest,
		KeyFormat:   models.FormatString,
		ValueFormat: models.FormatString,
		PollTimeout: DefaultPollTimeout,
		PingTimeout: DefaultPingTimeout,
	}
}

// WithOffsetReset returns a copy of c that starts from r.
func (c ConsumerConfig) WithOffsetReset(r OffsetReset) ConsumerConfig {
	c.Brokers = append([]string(nil), c.Brokers...)
	c.OffsetReset = r
	return c
}

// Validate validates the consumer configuration
func (c ConsumerConfig) Validate() error {
	ve := errors.ValidationErrs()

	if len(c.Brokers) == 0 {
		ve.Add("brokers", "cannot be empty")
	}
	for _, b := range c.Brokers {
		if strings.TrimSpace(b) == "" {
			ve.Add("brokers", "cannot contain an empty address")
			break
		}
	}
	if c.GroupID == "" {
		ve.Add("group_id", "cannot be empty")
	}
	if c.Topic == "" {
		ve.Add("topic", "cannot be empty")
	}
	if strings.Contains(c.Topic, ",") {
		ve.Add("topic", "must name a single topic")
	}
	if c.OffsetReset != OffsetEarliest && c.OffsetReset != OffsetLatest {
		ve.Add("offset_reset", `must be "earliest" or "latest"`)
	}
	if !models.IsSupportedFormat(c.KeyFormat) {
		ve.Add("key_format", "unsupported format")
	}
	if !models.IsSupportedFormat(c.ValueFormat) {
		ve.Add("value_format", "unsupported format")
	}
	if c.PollTimeout <= 0 {
		ve.Add("poll_timeout", "must be positive")
	}

	return ve.Err()
}

// clientOpts maps the configuration onto franz-go options.
func (c ConsumerConfig) clientOpts() []kgo.Opt {
	return []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),                  // Connects to Kafka brokers
		kgo.ConsumerGroup(c.GroupID),                   // Specifies the consumer group
		kgo.ConsumeTopics(c.Topic),                     // Specifies a single topic to consume
		kgo.ConsumeResetOffset(c.OffsetReset.offset()), // Start position without a committed offset
	}
}
