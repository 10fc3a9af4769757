package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

type EventType string

const (
	Kinesis   EventType = "kinesis"
	WebSocket EventType = "websocket"
	HTTP      EventType = "http"
)

// DetectEventType works out which trigger invoked the function.
func DetectEventType(event json.RawMessage) (EventType, error) {
	// Try parsing as a Kinesis event
	var kinesisEvent events.KinesisEvent
	if err := json.Unmarshal(event, &kinesisEvent); err == nil {
		if len(kinesisEvent.Records) > 0 && kinesisEvent.Records[0].EventSource == "aws:kinesis" {
			return Kinesis, nil
		}
	}

	// Websocket lifecycle events carry an eventType; REST proxy requests do not
	var websocketEvent events.APIGatewayWebsocketProxyRequest
	if err := json.Unmarshal(event, &websocketEvent); err == nil {
		if websocketEvent.RequestContext.EventType != "" {
			return WebSocket, nil
		}
	}

	var httpEvent events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &httpEvent); err == nil {
		if httpEvent.HTTPMethod != "" && httpEvent.Path != "" {
			return HTTP, nil
		}
	}

	return "", fmt.Errorf("unknown event type")
}
