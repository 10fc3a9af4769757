package websocket

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// Manage handles $connect and $disconnect for the live dashboard feed.
func (c *Connections) Manage(ctx context.Context, req events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := req.RequestContext.ConnectionID

	switch req.RequestContext.RouteKey {
	case "$connect":
		c.logger.Info("new connection", "connection_id", connectionID)
		if err := c.Store(ctx, connectionID); err != nil {
			return events.APIGatewayProxyResponse{StatusCode: 500, Body: "Failed to store connection"}, err
		}
		return events.APIGatewayProxyResponse{StatusCode: 200}, nil

	case "$disconnect":
		c.logger.Info("disconnected", "connection_id", connectionID)
		if err := c.Delete(ctx, connectionID); err != nil {
			return events.APIGatewayProxyResponse{StatusCode: 500, Body: "Failed to delete connection"}, err
		}
		return events.APIGatewayProxyResponse{StatusCode: 200}, nil

	default:
		return events.APIGatewayProxyResponse{StatusCode: 400, Body: "Invalid request"}, nil
	}
}

func (c *Connections) Store(ctx context.Context, connectionID string) error {
	item, err := dynamodbattribute.MarshalMap(WebSocketConnection{ConnectionID: connectionID})
	if err != nil {
		return err
	}
	_, err = c.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	return err
}

func (c *Connections) Delete(ctx context.Context, connectionID string) error {
	_, err := c.db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.table),
		Key:       map[string]*dynamodb.AttributeValue{"connectionId": {S: aws.String(connectionID)}},
	})
	return err
}
