package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
)

// Broadcast sends the readings as one JSON array to every connection.
// Per-connection failures are logged; gone connections are forgotten.
// It returns the number of connections that received the message.
func (b *Broadcaster) Broadcast(ctx context.Context, readings []types.EnrichedReading) (int, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	connections, err := b.connections.Active(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to retrieve connections: %v", types.ErrSinkWrite, err)
	}
	if len(connections) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(readings)
	if err != nil {
		return 0, fmt.Errorf("%w: marshal live readings: %v", types.ErrSinkWrite, err)
	}

	delivered := 0
	for _, conn := range connections {
		_, err := b.apiGateway.PostToConnectionWithContext(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(conn.ConnectionID),
			Data:         payload,
		})
		if err == nil {
			delivered++
			continue
		}

		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == apigatewaymanagementapi.ErrCodeGoneException {
			b.logger.Info("removing stale connection", "connection_id", conn.ConnectionID)
			if derr := b.connections.Delete(ctx, conn.ConnectionID); derr != nil {
				b.logger.Warn("failed to remove stale connection", "connection_id", conn.ConnectionID, "err", derr)
			}
			continue
		}

		b.logger.Warn("error sending to connection", "connection_id", conn.ConnectionID, "err", err)
	}

	return delivered, nil
}
