package service

type Config struct {
	DatabaseUri                  string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns             int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns         int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime      int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN                    string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate       float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath                  string  `envconfig:"LOG_FILE_PATH"`
	AdminToken                   string  `envconfig:"ADMIN_TOKEN"`
	Host                         string  `envconfig:"HOST" default:"localhost:3000"`
	Port                         int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit             int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit              int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit               int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus             bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort               int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl                   string  `envconfig:"WEBHOOK_URL"`
	SeedOnStartup                bool    `envconfig:"SEED_ON_STARTUP" default:"false"`
	RabbitMQUri                  string  `envconfig:"RABBITMQ_URI"`
	RabbitMQTransactionExchange  string  `envconfig:"RABBITMQ_TRANSACTION_EXCHANGE" default:"comptahub_transaction"`
}
