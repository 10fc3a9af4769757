// Package config loads settings from the Lambda environment (and an optional
// .env file for local runs) using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	// Region is the AWS region every client is built for.
	Region string `mapstructure:"AWS_REGION"`
	// ReadingsTable is the DynamoDB table keyed by device_timestamp_id.
	ReadingsTable   string `mapstructure:"DYNAMODB_READINGS_TABLE_NAME"`
	RawBucket       string `mapstructure:"S3_RAW_BUCKET_NAME"`
	ProcessedBucket string `mapstructure:"S3_PROCESSED_BUCKET_NAME"`
	// AlertTopicARN is the SNS topic for anomaly alerts; empty disables alerts.
	AlertTopicARN string `mapstructure:"SNS_TOPIC_ARN"`
	// CostPerKWh is the price per kWh in USD, as a decimal string.
	CostPerKWh string `mapstructure:"COST_PER_KWH_USD"`
	// APIGatewayURL is the websocket management endpoint; empty disables the live feed.
	APIGatewayURL    string `mapstructure:"API_GATEWAY_URL"`
	ConnectionsTable string `mapstructure:"WEBSOCKET_CONNECTIONS_TABLE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

// Load reads .env if present, then the environment. Env vars win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// A missing .env is normal inside Lambda.
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	v.AutomaticEnv()

	// The read API historically used DYNAMODB_TABLE_NAME.
	_ = v.BindEnv("DYNAMODB_READINGS_TABLE_NAME", "DYNAMODB_READINGS_TABLE_NAME", "DYNAMODB_TABLE_NAME")

	v.SetDefault("AWS_REGION", "eu-west-1")
	v.SetDefault("DYNAMODB_READINGS_TABLE_NAME", "SmartHomeReadings")
	v.SetDefault("S3_RAW_BUCKET_NAME", "smart-home-raw-data")
	v.SetDefault("S3_PROCESSED_BUCKET_NAME", "smart-home-processed-data")
	v.SetDefault("SNS_TOPIC_ARN", "")
	v.SetDefault("COST_PER_KWH_USD", "0.12")
	v.SetDefault("API_GATEWAY_URL", "")
	v.SetDefault("WEBSOCKET_CONNECTIONS_TABLE", "WebSocketConnections")
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.ReadingsTable == "" {
		return nil, errors.New("config: DYNAMODB_READINGS_TABLE_NAME must be set")
	}
	if cfg.RawBucket == "" || cfg.ProcessedBucket == "" {
		return nil, errors.New("config: S3_RAW_BUCKET_NAME and S3_PROCESSED_BUCKET_NAME must be set")
	}
	if _, err := cfg.Rate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Rate parses CostPerKWh. It must be a non-negative decimal.
func (c *Config) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.CostPerKWh)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("config: COST_PER_KWH_USD %q is not a number: %w", c.CostPerKWh, err)
	}
	if rate.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("config: COST_PER_KWH_USD must not be negative, got %s", rate)
	}
	return rate, nil
}

func (c *Config) AlertsEnabled() bool {
	return c.AlertTopicARN != ""
}

func (c *Config) LiveFeedEnabled() bool {
	return c.APIGatewayURL != ""
}
