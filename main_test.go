package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"smart-home-energy-analyzer/src/api"
	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-lambda-go/events"
)

type emptyDashboard struct{}

func (emptyDashboard) Dashboard(context.Context) (types.Dashboard, error) {
	return types.Dashboard{SmartSuggestions: []string{}}, nil
}

func newTestApp() *app {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &app{api: api.NewHandler(emptyDashboard{}, log), logger: log}
}

func TestHandleRoutesHTTPEvents(t *testing.T) {
	a := newTestApp()

	out, err := a.handle(context.Background(), json.RawMessage(`{"path":"/unknown","httpMethod":"GET"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, ok := out.(events.APIGatewayProxyResponse)
	if !ok {
		t.Fatalf("expected api gateway response, got %T", out)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	out, err = a.handle(context.Background(), json.RawMessage(`{"path":"/data","httpMethod":"GET"}`))
	if err != nil || out.(events.APIGatewayProxyResponse).StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for /data, got %v %v", out, err)
	}
}

func TestHandleRejectsUnknownEvents(t *testing.T) {
	if _, err := newTestApp().handle(context.Background(), json.RawMessage(`{"source":"aws.events"}`)); err == nil {
		t.Fatalf("expected error for unknown event")
	}
}
