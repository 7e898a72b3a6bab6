package http

import (
	"net/http"

	"github.com/picstash/picstash/internal/ingest"
	"github.com/picstash/picstash/internal/logger"
)

// EventHandler receives object-store notifications and feeds them to the
// ingestion pipeline.
type EventHandler struct {
	pipeline *ingest.Pipeline
	logg     *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(pipeline *ingest.Pipeline, logg *logger.Logger) *EventHandler {
	return &EventHandler{
		pipeline: pipeline,
		logg:     logg,
	}
}

type eventResponse struct {
	Received int `json:"received"`
}

// HandleS3Event handles POST /internal/events/s3. The body is the standard
// S3 notification shape, as emitted by both S3 and MinIO.
func (h *EventHandler) HandleS3Event(w http.ResponseWriter, r *http.Request) {
	var event ingest.Event
	if err := decodeJSON(r, &event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	h.logg.Info("received object-store event", "records", len(event.Records))
	h.pipeline.Process(r.Context(), &event)

	respondJSON(w, http.StatusOK, eventResponse{Received: len(event.Records)})
}
