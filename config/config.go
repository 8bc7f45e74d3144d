package config

import (
	// Go Internal Packages
	"strings"
	"time"

	// Local Packages
	errors "wiki-stream/errors"
	kafka "wiki-stream/kafka"

	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// EnvPrefix is the prefix of environment variables that override the config.
// A double underscore separates levels: WIKI_STREAM_KAFKA__OFFSET_RESET -> kafka.offset_reset.
const EnvPrefix = "WIKI_STREAM_"

var DefaultConfig = []byte(`
application: "consumer-opensearch"

logger:
  level: "info"

is_prod_mode: false

metrics:
  enabled: false
  addr: ":2112"
  namespace: "wiki_stream"

kafka:
  brokers:
    - "localhost:9092"
  group_id: "consumer-opensearch"
  topic: "wikimedia"
  offset_reset: "latest"
  key_format: "string"
  value_format: "string"
  poll_timeout: "3000ms"
  ping_timeout: "10s"

opensearch:
  addresses:
    - "http://localhost:9200"
  username: ""
  password: ""
  insecure_skip_verify: true
  chunk_size: 1000
  timeout: "30s"
`)

type Config struct {
	Application string     `koanf:"application"`
	Logger      Logger     `koanf:"logger"`
	IsProdMode  bool       `koanf:"is_prod_mode"`
	Metrics     Metrics    `koanf:"metrics"`
	Kafka       Kafka      `koanf:"kafka"`
	OpenSearch  OpenSearch `koanf:"opensearch"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Metrics struct {
	Enabled   bool   `koanf:"enabled"`
	Addr      string `koanf:"addr"`
	Namespace string `koanf:"namespace"`
}

type Kafka struct {
	Brokers     []string      `koanf:"brokers"`
	GroupID     string        `koanf:"group_id"`
	Topic       string        `koanf:"topic"`
	OffsetReset string        `koanf:"offset_reset"`
	KeyFormat   string        `koanf:"key_format"`
	ValueFormat string        `koanf:"value_format"`
	PollTimeout time.Duration `koanf:"poll_timeout"`
	PingTimeout time.Duration `koanf:"ping_timeout"`
}

// OpenSearch is read by the opensearch-loader command only.
type OpenSearch struct {
	Addresses          []string      `koanf:"addresses"`
	Username           string        `koanf:"username"`
	Password           string        `koanf:"password"`
	InsecureSkipVerify bool          `koanf:"insecure_skip_verify"`
	ChunkSize          int           `koanf:"chunk_size"`
	Timeout            time.Duration `koanf:"timeout"`
}

// Load loads the default configuration and overrides it, in order, with the
// file at path (a missing file is skipped) and WIKI_STREAM_* environment variables.
func Load(path string) *koanf.Koanf {
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser())
	if path != "" {
		_ = k.Load(file.Provider(path), yaml.Parser())
	}
	_ = k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	return k
}

// envKeyValue maps WIKI_STREAM_KAFKA__BROKERS=a,b to kafka.brokers=[a b].
func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

// Unmarshal decodes k into a Config and validates it.
func Unmarshal(k *koanf.Koanf) (Config, error) {
	c := Config{}
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, errors.E(errors.Invalid, "cannot unmarshal config", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.ValidationFailedErr(err)
	}
	return c, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		ve.Add("metrics.addr", "cannot be empty when metrics are enabled")
	}
	if len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Kafka.GroupID == "" {
		ve.Add("kafka.group_id", "cannot be empty")
	}
	if c.Kafka.Topic == "" {
		ve.Add("kafka.topic", "cannot be empty")
	}
	if _, err := kafka.ParseOffsetReset(c.Kafka.OffsetReset); err != nil {
		ve.Add("kafka.offset_reset", `must be "earliest" or "latest"`)
	}
	if c.Kafka.PollTimeout <= 0 {
		ve.Add("kafka.poll_timeout", "must be positive")
	}
	if len(c.OpenSearch.Addresses) == 0 {
		ve.Add("opensearch.addresses", "cannot be empty")
	}
	if c.OpenSearch.ChunkSize <= 0 {
		ve.Add("opensearch.chunk_size", "must be positive")
	}

	return ve.Err()
}

// ConsumerConfig maps the kafka section onto the consumer configuration.
func (c *Config) ConsumerConfig() (kafka.ConsumerConfig, error) {
	reset, err := kafka.ParseOffsetReset(c.Kafka.OffsetReset)
	if err != nil {
		return kafka.ConsumerConfig{}, err
	}

	conf := kafka.ConsumerConfig{
		Brokers:     append([]string(nil), c.Kafka.Brokers...),
		GroupID:     c.Kafka.GroupID,
		Topic:       c.Kafka.Topic,
		OffsetReset: reset,
		KeyFormat:   c.Kafka.KeyFormat,
		ValueFormat: c.Kafka.ValueFormat,
		PollTimeout: c.Kafka.PollTimeout,
		PingTimeout: c.Kafka.PingTimeout,
	}
	return conf, conf.Validate()
}
