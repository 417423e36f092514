package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type TotalPolicy string

const (
	// PreserveWhenEmpty re-aggregates an omitted total only when the estimate
	// has at least one line item, otherwise the stored total is kept.
	PreserveWhenEmpty TotalPolicy = "preserve_when_empty"
	// Recompute always re-aggregates an omitted total, zero without items.
	Recompute TotalPolicy = "recompute"
)

func (p TotalPolicy) Valid() bool {
	switch p {
	case PreserveWhenEmpty, Recompute:
		return true
	default:
		return false
	}
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Workflow  WorkflowConfig  `mapstructure:"workflow"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"dbname"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type KafkaConfig struct {
	Broker             string        `mapstructure:"broker"`
	WorkflowTopic      string        `mapstructure:"workflow_topic"`
	ConsumerGroup      string        `mapstructure:"consumer_group"`
	OutboxPollInterval time.Duration `mapstructure:"outbox_poll_interval"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Format string `mapstructure:"format"`
}

// WorkflowConfig carries the behaviour switches of the approval workflow.
type WorkflowConfig struct {
	EstimateTotalPolicy         TotalPolicy `mapstructure:"estimate_total_policy"`
	LineItemCreateRequiresDraft bool        `mapstructure:"line_item_create_requires_draft"`
}

// DefaultWorkflow is what Load produces when no workflow variables are set.
func DefaultWorkflow() WorkflowConfig {
	return WorkflowConfig{
		EstimateTotalPolicy:         PreserveWhenEmpty,
		LineItemCreateRequiresDraft: true,
	}
}

// Load reads configuration from the environment. Call godotenv.Load first
// when a .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.workflow_topic", "procurement.workflow.v1")
	v.SetDefault("kafka.consumer_group", "go-procurement-audit")
	v.SetDefault("kafka.outbox_poll_interval", 3*time.Second)

	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("log.format", "console")

	def := DefaultWorkflow()
	v.SetDefault("workflow.estimate_total_policy", string(def.EstimateTotalPolicy))
	v.SetDefault("workflow.line_item_create_requires_draft", def.LineItemCreateRequiresDraft)
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	_ = v.BindEnv("server.port", "PORT")

	// Database
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.dbname", "DB_NAME")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("database.max_retries", "DB_MAX_RETRIES")

	// Redis
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")

	// Kafka
	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("kafka.workflow_topic", "KAFKA_WORKFLOW_TOPIC")
	_ = v.BindEnv("kafka.consumer_group", "KAFKA_CONSUMER_GROUP")
	_ = v.BindEnv("kafka.outbox_poll_interval", "OUTBOX_POLL_INTERVAL")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	_ = v.BindEnv("rate_limit.rps", "RATE_LIMIT_RPS")
	_ = v.BindEnv("rate_limit.burst", "RATE_LIMIT_BURST")

	_ = v.BindEnv("log.format", "LOG_FORMAT")

	// Workflow
	_ = v.BindEnv("workflow.estimate_total_policy", "ESTIMATE_TOTAL_POLICY")
	_ = v.BindEnv("workflow.line_item_create_requires_draft", "LINE_ITEM_CREATE_REQUIRES_DRAFT")
}

// Validate reports settings the API server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if !c.Workflow.EstimateTotalPolicy.Valid() {
		return fmt.Errorf("unknown ESTIMATE_TOTAL_POLICY %q", c.Workflow.EstimateTotalPolicy)
	}
	return nil
}
