package dynamo

import (
	"log/slog"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// NewClient builds a DynamoDB client from a shared session. Build it once
// per process and pass it to whatever needs it.
func NewClient(sess *session.Session) dynamodbiface.DynamoDBAPI {
	return dynamodb.New(sess)
}

// ReadingStore keeps enriched readings keyed by device_timestamp_id.
type ReadingStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	logger *slog.Logger
}

func NewReadingStore(client dynamodbiface.DynamoDBAPI, table string, logger *slog.Logger) *ReadingStore {
	return &ReadingStore{client: client, table: table, logger: logger}
}

func (s *ReadingStore) Table() string {
	return s.table
}
