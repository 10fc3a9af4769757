package dispatch

import (
	"encoding/json"
	"testing"
)

func TestDetectEventType(t *testing.T) {
	cases := []struct {
		name  string
		event string
		want  EventType
	}{
		{"kinesis", `{"Records":[{"eventSource":"aws:kinesis","kinesis":{"data":"e30=","sequenceNumber":"1"}}]}`, Kinesis},
		{"websocket connect", `{"requestContext":{"routeKey":"$connect","eventType":"CONNECT","connectionId":"abc="}}`, WebSocket},
		{"rest request", `{"resource":"/data","path":"/data","httpMethod":"GET","requestContext":{"stage":"prod"}}`, HTTP},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectEventType(json.RawMessage(tc.event))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDetectEventTypeUnknown(t *testing.T) {
	for _, event := range []string{`{}`, `{"Records":[{"eventSource":"aws:sqs"}]}`, `[]`} {
		if _, err := DetectEventType(json.RawMessage(event)); err == nil {
			t.Fatalf("expected error for %s", event)
		}
	}
}
