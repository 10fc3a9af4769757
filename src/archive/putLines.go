package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

const (
	ProcessedCategory = "processed-energy-readings"
	RawCategory       = "raw-kinesis-payloads"
)

func NewClient(sess *session.Session) s3iface.S3API {
	return s3.New(sess)
}

// Writer stores one newline-delimited JSON object per call under a
// date-partitioned key with a random suffix.
type Writer struct {
	client   s3iface.S3API
	bucket   string
	category string
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewWriter(client s3iface.S3API, bucket, category string, logger *slog.Logger) *Writer {
	return &Writer{
		client:   client,
		bucket:   bucket,
		category: category,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// ObjectKey builds {category}/year=YYYY/month=MM/day=DD/{id}.jsonl from the UTC date.
func ObjectKey(category string, at time.Time, id string) string {
	return fmt.Sprintf("%s/%s/%s.jsonl", category, at.UTC().Format("year=2006/month=01/day=02"), id)
}

// PutLines uploads lines joined by "\n" and returns the object key. No
// object is written for an empty batch.
func (w *Writer) PutLines(ctx context.Context, lines [][]byte) (string, error) {
	if len(lines) == 0 {
		return "", nil
	}

	key := ObjectKey(w.category, w.now(), w.newID())
	body := bytes.Join(lines, []byte("\n"))

	_, err := w.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: s3://%s/%s: %v", types.ErrSinkWrite, w.bucket, key, err)
	}

	w.logger.Info("uploaded records to s3", "bucket", w.bucket, "key", key, "count", len(lines))

	return key, nil
}
