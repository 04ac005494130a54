package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Secret     string `env:"SECRET,required"`

	HTTPAddress    string   `env:"HTTP_ADDRESS" envDefault:"0.0.0.0:9090"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqNotificationExchange string `env:"RABBITMQ_NOTIFICATION_EXCHANGE" envDefault:"notifications"`
	RabbitmqNotificationQueue    string `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"notifications.push"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY,required,unset"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER,required"`

	BcryptHasherCost int `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	SchedulerInterval  time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"1m"`
	SchedulerLookahead time.Duration `env:"SCHEDULER_LOOKAHEAD" envDefault:"10m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
