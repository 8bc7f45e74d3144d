package kafka

import (
	// Go Internal Packages
	"testing"
	"time"

	// Local Packages
	errors "wiki-stream/errors"
	models "wiki-stream/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestBuildConfig(t *testing.T) {
	c := BuildConfig()

	assert.Equal(t, []string{"localhost:9092"}, c.Brokers)
	assert.Equal(t, "consumer-opensearch", c.GroupID)
	assert.Equal(t, "wikimedia", c.Topic)
	assert.Equal(t, OffsetLatest, c.OffsetReset)
	assert.Equal(t, models.FormatString, c.KeyFormat)
	assert.Equal(t, models.FormatString, c.ValueFormat)
	assert.Equal(t, 3000*time.Millisecond, c.PollTimeout)
	require.NoError(t, c.Validate())

	for _, b := range c.Brokers {
		assert.NotEmpty(t, b)
	}
}

func TestBuildConfig_ReturnsFreshCopies(t *testing.T) {
	a := BuildConfig()
	a.Brokers[0] = "elsewhere:9092"

	assert.Equal(t, DefaultBroker, BuildConfig().Brokers[0])
}

func TestWithOffsetReset(t *testing.T) {
	tests := []struct {
		name   string
		policy OffsetReset
		want   kgo.Offset
	}{
		{"earliest", OffsetEarliest, kgo.NewOffset().AtStart()},
		{"latest", OffsetLatest, kgo.NewOffset().AtEnd()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := BuildConfig()
			c := base.WithOffsetReset(tt.policy)

			assert.Equal(t, tt.policy, c.OffsetReset)
			assert.Equal(t, tt.want, c.OffsetReset.offset())
			require.NoError(t, c.Validate())

			// base stays as built
			assert.Equal(t, OffsetLatest, base.OffsetReset)
			c.Brokers[0] = "changed:9092"
			assert.Equal(t, DefaultBroker, base.Brokers[0])
		})
	}
}

func TestParseOffsetReset(t *testing.T) {
	tests := []struct {
		in      string
		want    OffsetReset
		wantErr bool
	}{
		{"earliest", OffsetEarliest, false},
		{"LATEST", OffsetLatest, false},
		{" Earliest \n", OffsetEarliest, false},
		{"", "", true},
		{"first", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOffsetReset(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			assert.Equal(t, errors.Invalid, errors.KindOf(err))
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestConsumerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ConsumerConfig)
		wantMsg string
	}{
		{"no brokers", func(c *ConsumerConfig) { c.Brokers = nil }, "brokers: cannot be empty"},
		{"blank broker", func(c *ConsumerConfig) { c.Brokers = []string{" "} }, "brokers: cannot contain an empty address"},
		{"no group", func(c *ConsumerConfig) { c.GroupID = "" }, "group_id: cannot be empty"},
		{"no topic", func(c *ConsumerConfig) { c.Topic = "" }, "topic: cannot be empty"},
		{"two topics", func(c *ConsumerConfig) { c.Topic = "a,b" }, "topic: must name a single topic"},
		{"bad offset", func(c *ConsumerConfig) { c.OffsetReset = "first" }, "offset_reset"},
		{"bad key format", func(c *ConsumerConfig) { c.KeyFormat = "avro" }, "key_format: unsupported format"},
		{"bad value format", func(c *ConsumerConfig) { c.ValueFormat = "" }, "value_format: unsupported format"},
		{"zero poll timeout", func(c *ConsumerConfig) { c.PollTimeout = 0 }, "poll_timeout: must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BuildConfig()
			tt.mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.Invalid, errors.KindOf(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClientOpts(t *testing.T) {
	assert.Len(t, BuildConfig().clientOpts(), 4)
}
