package archive

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API

	puts []*s3.PutObjectInput
	body []string
	err  error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.body = append(f.body, string(b))
	return &s3.PutObjectOutput{}, nil
}

func newTestWriter(client *fakeS3, category string) *Writer {
	w := NewWriter(client, "raw-bucket", category, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.now = func() time.Time { return time.Date(2024, 3, 7, 23, 30, 0, 0, time.FixedZone("PST", -8*3600)) }
	w.newID = func() string { return "0b1d6f1e" }
	return w
}

func TestPutLinesWritesPartitionedObject(t *testing.T) {
	client := &fakeS3{}
	w := newTestWriter(client, RawCategory)

	key, err := w.PutLines(context.Background(), [][]byte{[]byte(`{"a":1}`), []byte(`not json`)})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}

	wantKey := "raw-kinesis-payloads/year=2024/month=03/day=08/0b1d6f1e.jsonl"
	if key != wantKey {
		t.Fatalf("expected key %s, got %s", wantKey, key)
	}
	if len(client.puts) != 1 || *client.puts[0].Bucket != "raw-bucket" || *client.puts[0].Key != wantKey {
		t.Fatalf("unexpected put input %+v", client.puts)
	}
	if client.body[0] != "{\"a\":1}\nnot json" {
		t.Fatalf("unexpected body %q", client.body[0])
	}
}

func TestPutLinesSkipsEmptyBatch(t *testing.T) {
	client := &fakeS3{}
	key, err := newTestWriter(client, ProcessedCategory).PutLines(context.Background(), nil)
	if err != nil || key != "" {
		t.Fatalf("expected no-op, got %q %v", key, err)
	}
	if len(client.puts) != 0 {
		t.Fatalf("expected no upload")
	}
}

func TestPutLinesFailureIsSinkWrite(t *testing.T) {
	client := &fakeS3{err: errors.New("NoSuchBucket")}
	_, err := newTestWriter(client, ProcessedCategory).PutLines(context.Background(), [][]byte{[]byte("{}")})
	if !errors.Is(err, types.ErrSinkWrite) {
		t.Fatalf("expected sink write failure, got %v", err)
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	w := NewWriter(&fakeS3{}, "b", ProcessedCategory, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if w.newID() == w.newID() {
		t.Fatalf("expected distinct object suffixes")
	}
}
