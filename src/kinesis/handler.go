package kinesis

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"smart-home-energy-analyzer/src/enrich"
	"smart-home-energy-analyzer/src/types"
	"smart-home-energy-analyzer/src/validate"

	"github.com/aws/aws-lambda-go/events"
)

// ReadingWriter upserts stored records into the structured store.
type ReadingWriter interface {
	UpsertReadings(ctx context.Context, records []types.StoredRecord) error
}

// LineWriter writes one newline-delimited object per call.
type LineWriter interface {
	PutLines(ctx context.Context, lines [][]byte) (string, error)
}

type AlertPublisher interface {
	PublishAnomaly(ctx context.Context, r types.EnrichedReading) error
}

type LiveFeed interface {
	Broadcast(ctx context.Context, readings []types.EnrichedReading) (int, error)
}

// Deps are built once per process. Alerts and Live may be nil.
type Deps struct {
	Enricher  *enrich.Enricher
	Store     ReadingWriter
	Processed LineWriter
	Raw       LineWriter
	Alerts    AlertPublisher
	Live      LiveFeed
	Logger    *slog.Logger
}

type Pipeline struct {
	Deps
}

func NewPipeline(deps Deps) *Pipeline {
	return &Pipeline{Deps: deps}
}

// BatchResult summarises one invocation.
type BatchResult struct {
	Received       int            `json:"received"`
	Dispatched     int            `json:"dispatched"`
	Discarded      map[string]int `json:"discarded"`
	Anomalies      int            `json:"anomalies"`
	AlertsFailed   int            `json:"alerts_failed"`
	SinkFailures   []string       `json:"sink_failures"`
	ProcessedKey   string         `json:"processed_key,omitempty"`
	RawKey         string         `json:"raw_key,omitempty"`
	LiveDeliveries int            `json:"live_deliveries"`
}

// buffers accumulate one invocation's output per sink.
type buffers struct {
	stored    []types.StoredRecord
	processed [][]byte
	raw       [][]byte
	enriched  []types.EnrichedReading
	anomalies []types.EnrichedReading
}

// Handle runs decode, validate and enrich for every record, then flushes
// all sinks concurrently. A failing record or sink never fails the batch;
// redelivery from the stream is the only retry.
func (p *Pipeline) Handle(ctx context.Context, event events.KinesisEvent) (BatchResult, error) {
	result := BatchResult{Received: len(event.Records), Discarded: map[string]int{}}
	var buf buffers

	p.Logger.Info("received records from kinesis", "count", len(event.Records))

	for _, record := range event.Records {
		if ctx.Err() != nil {
			p.Logger.Warn("deadline reached, stopping batch", "processed", result.Dispatched, "err", ctx.Err())
			break
		}
		p.processRecord(record, &buf, &result)
	}

	p.flush(ctx, &buf, &result)

	p.Logger.Info("batch complete",
		"received", result.Received,
		"dispatched", result.Dispatched,
		"discarded", result.Discarded,
		"anomalies", result.Anomalies,
		"sink_failures", len(result.SinkFailures))

	return result, nil
}

func (p *Pipeline) processRecord(record events.KinesisEventRecord, buf *buffers, result *BatchResult) {
	// aws-lambda-go has already base64-decoded the payload.
	payload := record.Kinesis.Data
	sequence := record.Kinesis.SequenceNumber

	// Raw payloads are kept even when the record is discarded below.
	buf.raw = append(buf.raw, payload)

	reading, err := validate.ParseReading(payload)
	if err != nil {
		kind := types.FailureKind(err)
		result.Discarded[kind]++
		p.Logger.Warn("skipping record", "sequence", sequence, "reason", kind, "err", err)
		return
	}

	enriched := p.Enricher.Enrich(reading)

	line, err := json.Marshal(enriched)
	if err != nil {
		result.Discarded["MalformedPayload"]++
		p.Logger.Error("failed to marshal enriched reading", "sequence", sequence, "device_id", reading.DeviceID, "err", err)
		return
	}

	buf.stored = append(buf.stored, types.NewStoredRecord(enriched))
	buf.processed = append(buf.processed, line)
	buf.enriched = append(buf.enriched, enriched)
	if enriched.AnomalyDetected {
		buf.anomalies = append(buf.anomalies, enriched)
		result.Anomalies++
	}
	result.Dispatched++
}

func (p *Pipeline) flush(ctx context.Context, buf *buffers, result *BatchResult) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	sinkFailed := func(sink string, err error) {
		p.Logger.Error("sink flush failed", "sink", sink, "err", err)
		mu.Lock()
		result.SinkFailures = append(result.SinkFailures, sink)
		mu.Unlock()
	}

	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	if len(buf.stored) > 0 {
		run(func() {
			if err := p.Store.UpsertReadings(ctx, buf.stored); err != nil {
				sinkFailed("dynamodb", err)
			}
		})
	}

	if len(buf.processed) > 0 {
		run(func() {
			key, err := p.Processed.PutLines(ctx, buf.processed)
			if err != nil {
				sinkFailed("s3-processed", err)
				return
			}
			mu.Lock()
			result.ProcessedKey = key
			mu.Unlock()
		})
	}

	if len(buf.raw) > 0 {
		run(func() {
			key, err := p.Raw.PutLines(ctx, buf.raw)
			if err != nil {
				sinkFailed("s3-raw", err)
				return
			}
			mu.Lock()
			result.RawKey = key
			mu.Unlock()
		})
	}

	if p.Alerts != nil && len(buf.anomalies) > 0 {
		run(func() {
			failed := 0
			for _, r := range buf.anomalies {
				if err := p.Alerts.PublishAnomaly(ctx, r); err != nil {
					failed++
					p.Logger.Warn("error sending anomaly alert", "device_id", r.DeviceID, "err", err)
				}
			}
			mu.Lock()
			result.AlertsFailed = failed
			mu.Unlock()
		})
	}

	if p.Live != nil && len(buf.enriched) > 0 {
		run(func() {
			n, err := p.Live.Broadcast(ctx, buf.enriched)
			if err != nil {
				sinkFailed("websocket", err)
				return
			}
			mu.Lock()
			result.LiveDeliveries = n
			mu.Unlock()
		})
	}

	wg.Wait()
}
