package types

import "errors"

// Per-record failures. The record is skipped, the batch continues.
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMissingField     = errors.New("missing field")
	ErrInvalidNumeric   = errors.New("invalid numeric")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

var (
	ErrSinkWrite        = errors.New("sink write failure")
	ErrAlertPublish     = errors.New("alert publish failure")
	ErrAggregationQuery = errors.New("aggregation query failure")
)

// FailureKind returns a short label for logging and counters.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedPayload):
		return "MalformedPayload"
	case errors.Is(err, ErrMissingField):
		return "MissingField"
	case errors.Is(err, ErrInvalidNumeric):
		return "InvalidNumeric"
	case errors.Is(err, ErrInvalidTimestamp):
		return "InvalidTimestamp"
	case errors.Is(err, ErrSinkWrite):
		return "SinkWriteFailure"
	case errors.Is(err, ErrAlertPublish):
		return "AlertPublishFailure"
	case errors.Is(err, ErrAggregationQuery):
		return "AggregationQueryFailure"
	default:
		return "Unknown"
	}
}
