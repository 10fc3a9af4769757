package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"smart-home-energy-analyzer/src/aggregate"
	"smart-home-energy-analyzer/src/alerts"
	"smart-home-energy-analyzer/src/api"
	"smart-home-energy-analyzer/src/archive"
	"smart-home-energy-analyzer/src/config"
	"smart-home-energy-analyzer/src/dispatch"
	"smart-home-energy-analyzer/src/dynamo"
	"smart-home-energy-analyzer/src/enrich"
	"smart-home-energy-analyzer/src/kinesis"
	"smart-home-energy-analyzer/src/logger"
	"smart-home-energy-analyzer/src/websocket"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

// app holds everything built once per cold start.
type app struct {
	pipeline    *kinesis.Pipeline
	api         *api.Handler
	connections *websocket.Connections
	logger      *slog.Logger
}

func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	rate, err := cfg.Rate()
	if err != nil {
		return nil, err
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	db := dynamo.NewClient(sess)
	s3Client := archive.NewClient(sess)

	store := dynamo.NewReadingStore(db, cfg.ReadingsTable, log)
	connections := websocket.NewConnections(db, cfg.ConnectionsTable, log)

	deps := kinesis.Deps{
		Enricher:  enrich.NewEnricher(rate, enrich.DefaultRules(), log),
		Store:     store,
		Processed: archive.NewWriter(s3Client, cfg.ProcessedBucket, archive.ProcessedCategory, log),
		Raw:       archive.NewWriter(s3Client, cfg.RawBucket, archive.RawCategory, log),
		Logger:    log,
	}

	if cfg.AlertsEnabled() {
		deps.Alerts = alerts.NewPublisher(alerts.NewClient(sess), cfg.AlertTopicARN, log)
	} else {
		log.Warn("SNS_TOPIC_ARN not set, anomaly alerts disabled")
	}

	if cfg.LiveFeedEnabled() {
		deps.Live = websocket.NewBroadcaster(connections, websocket.NewApiGWClient(sess, cfg.APIGatewayURL), log)
	}

	return &app{
		pipeline:    kinesis.NewPipeline(deps),
		api:         api.NewHandler(aggregate.NewEngine(store, log), log),
		connections: connections,
		logger:      log,
	}, nil
}

// handle picks the handler based on the event type.
func (a *app) handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	eventType, err := dispatch.DetectEventType(event)
	if err != nil {
		a.logger.Error("error detecting event type", "err", err)
		return nil, err
	}

	switch eventType {
	case dispatch.Kinesis:
		var kinesisEvent events.KinesisEvent
		if err := json.Unmarshal(event, &kinesisEvent); err != nil {
			return nil, fmt.Errorf("unmarshal kinesis event: %w", err)
		}
		result, err := a.pipeline.Handle(ctx, kinesisEvent)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"statusCode": 200,
			"body":       fmt.Sprintf("Processed %d records from Kinesis.", result.Received),
		}, nil

	case dispatch.WebSocket:
		var websocketEvent events.APIGatewayWebsocketProxyRequest
		if err := json.Unmarshal(event, &websocketEvent); err != nil {
			return nil, fmt.Errorf("unmarshal websocket event: %w", err)
		}
		return a.connections.Manage(ctx, websocketEvent)

	case dispatch.HTTP:
		var httpEvent events.APIGatewayProxyRequest
		if err := json.Unmarshal(event, &httpEvent); err != nil {
			return nil, fmt.Errorf("unmarshal api gateway event: %w", err)
		}
		return a.api.HandleHTTP(ctx, httpEvent)

	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	a, err := newApp(cfg, log)
	if err != nil {
		log.Error("failed to initialise", "err", err)
		os.Exit(1)
	}

	lambda.Start(a.handle)
}
