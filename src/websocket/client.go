package websocket

import (
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi/apigatewaymanagementapiiface"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// NewApiGWClient targets the websocket API's management endpoint.
func NewApiGWClient(sess *session.Session, endpoint string) apigatewaymanagementapiiface.ApiGatewayManagementApiAPI {
	return apigatewaymanagementapi.New(sess, aws.NewConfig().WithEndpoint(endpoint))
}

// Connections tracks dashboard websocket connections in DynamoDB.
type Connections struct {
	db     dynamodbiface.DynamoDBAPI
	table  string
	logger *slog.Logger
}

func NewConnections(db dynamodbiface.DynamoDBAPI, table string, logger *slog.Logger) *Connections {
	return &Connections{db: db, table: table, logger: logger}
}

// Broadcaster pushes live readings to every connected dashboard.
type Broadcaster struct {
	connections *Connections
	apiGateway  apigatewaymanagementapiiface.ApiGatewayManagementApiAPI
	logger      *slog.Logger
}

func NewBroadcaster(connections *Connections, apiGateway apigatewaymanagementapiiface.ApiGatewayManagementApiAPI, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{connections: connections, apiGateway: apiGateway, logger: logger}
}
