package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-lambda-go/events"
)

// DataPath is the only route the dashboard calls.
const DataPath = "/data"

type DashboardSource interface {
	Dashboard(ctx context.Context) (types.Dashboard, error)
}

type Handler struct {
	source DashboardSource
	logger *slog.Logger
}

func NewHandler(source DashboardSource, logger *slog.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
}

func (h *Handler) HandleHTTP(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.Path {
	case DataPath:
		dashboard, err := h.source.Dashboard(ctx)
		if err != nil {
			h.logger.Error("error processing api request", "path", req.Path, "err", err)
			return respond(http.StatusInternalServerError, errorEnvelope{
				Error:   err.Error(),
				Message: "Failed to retrieve or process data for API.",
			}), nil
		}
		return respond(http.StatusOK, dashboard), nil

	default:
		return respond(http.StatusNotFound, errorEnvelope{
			Error:   "Not Found",
			Message: "Invalid API endpoint.",
		}), nil
	}
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(errorEnvelope{Error: err.Error(), Message: "Failed to encode response."})
	}

	headers := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(payload),
	}
}
