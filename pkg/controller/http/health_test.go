package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/courier/pkg/controller/http"
	"github.com/m-mizutani/courier/pkg/domain/model"
)

func TestHealthEndpoint(t *testing.T) {
	server, err := controller.NewServer(context.Background(), &mockWebhookUC{}, &mockDiagnosticsUC{},
		controller.WithAddr("localhost:0"),
	)
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "courier")
	gt.Value(t, status.Version).NotEqual("")
}

func TestRootEndpoint(t *testing.T) {
	server, err := controller.NewServer(context.Background(), &mockWebhookUC{}, &mockDiagnosticsUC{})
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)
	body, err := io.ReadAll(w.Body)
	gt.NoError(t, err)
	gt.String(t, string(body)).Contains("bot is running")
	gt.String(t, w.Header().Get("Content-Type")).Contains("text/plain")
}

func TestDiagnosticsEndpoint(t *testing.T) {
	diag := &mockDiagnosticsUC{
		report: &model.ConnectivityReport{
			GitHub:  "Logged in as: c4ps63",
			LLM:     "AI replied: works!",
			ClickUp: "Error: Token invalid",
		},
	}
	server, err := controller.NewServer(context.Background(), &mockWebhookUC{}, diag)
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	gt.Equal(t, len(body), 3)
	gt.Equal(t, body["github"], "Logged in as: c4ps63")
	gt.Equal(t, body["groq"], "AI replied: works!")
	gt.Equal(t, body["clickup"], "Error: Token invalid")
}
