package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/go-github/v57/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/domain/model"
	"github.com/m-mizutani/courier/pkg/utils/async"
	"github.com/m-mizutani/courier/pkg/utils/errutil"
)

// maxPayloadSize bounds the webhook body; GitHub caps deliveries at 25MB
const maxPayloadSize = 25 << 20

// WebhookHandler handles GitHub push webhooks
type WebhookHandler struct {
	webhookUC interfaces.WebhookUseCase
	pool      *async.Pool
}

// NewWebhookHandler creates a new WebhookHandler. A nil pool processes events inline.
func NewWebhookHandler(webhookUC interfaces.WebhookUseCase, pool *async.Pool) *WebhookHandler {
	return &WebhookHandler{
		webhookUC: webhookUC,
		pool:      pool,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	if err != nil {
		h.fail(ctx, w, goerr.Wrap(err, "failed to read request body"))
		return
	}
	defer r.Body.Close()

	var payload github.PushEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		h.fail(ctx, w, goerr.Wrap(err, "invalid JSON payload"))
		return
	}

	if !model.IsPush(&payload) {
		logger.Info("Ignoring non-push event", "event", r.Header.Get("X-GitHub-Event"))
		writeJSON(ctx, w, http.StatusOK, map[string]any{
			"status": "ignored",
			"reason": "Not a push event",
		})
		return
	}

	deliveryID := r.Header.Get("X-GitHub-Delivery")
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	event, err := model.NewPushEvent(deliveryID, &payload)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	logger.Info("Received GitHub push",
		"delivery_id", event.DeliveryID,
		"repository", event.Repository,
		"branch", event.Branch,
		"pusher", event.Pusher,
		"commit_count", len(event.Commits),
	)

	if h.pool != nil {
		h.enqueue(ctx, w, event)
		return
	}

	// an accepted delivery runs to completion even if the sender disconnects
	result, err := h.webhookUC.HandlePush(context.WithoutCancel(ctx), event)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"status":    "success",
		"processed": result.Processed,
	})
}

func (h *WebhookHandler) enqueue(ctx context.Context, w http.ResponseWriter, event *model.PushEvent) {
	ok := h.pool.Submit(ctx, func(ctx context.Context) error {
		_, err := h.webhookUC.HandlePush(ctx, event)
		return err
	})
	if !ok {
		err := goerr.New("queue full", goerr.V("delivery_id", event.DeliveryID))
		errutil.Handle(ctx, "Failed to queue push event", err)
		writeError(ctx, w, err, http.StatusServiceUnavailable)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"status":    "success",
		"processed": len(event.Commits),
		"async":     true,
	})
}

func (h *WebhookHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.Handle(ctx, "Webhook handler failed", err)
	writeError(ctx, w, err, http.StatusInternalServerError)
}
