package websocket

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// WebSocketConnection represents a connection stored in DynamoDB
type WebSocketConnection struct {
	ConnectionID string `json:"connectionId" dynamodbav:"connectionId"`
}

// Active returns every stored connection.
func (c *Connections) Active(ctx context.Context) ([]WebSocketConnection, error) {
	var connections []WebSocketConnection

	err := c.db.ScanPagesWithContext(ctx, &dynamodb.ScanInput{TableName: aws.String(c.table)}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var batch []WebSocketConnection
		if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			c.logger.Warn("failed to unmarshal connections page", "table", c.table, "err", err)
			return true
		}
		connections = append(connections, batch...)
		return true
	})

	return connections, err
}
