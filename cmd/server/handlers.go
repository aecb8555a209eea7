package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/Ko-stant/robot-path-service/internal/protocol"
	"github.com/Ko-stant/robot-path-service/internal/store"
	"github.com/Ko-stant/robot-path-service/internal/web/views"
	"github.com/Ko-stant/robot-path-service/internal/ws"
)

const (
	enterPathRoute      = "/tibber-developer-test/enter-path"
	helloTimeout        = 3 * time.Second
	defaultHistoryLimit = 20
)

// marshalJSON is swapped in tests to exercise encoding failures.
var marshalJSON = json.Marshal

// Handlers serves the HTTP API around the path engine
type Handlers struct {
	engine       PathEngine
	store        store.Store
	broadcaster  Broadcaster
	hub          *ws.Hub
	metrics      *PerformanceMetrics
	logger       Logger
	maxBodyBytes int64
	historyLimit int
}

func NewHandlers(engine PathEngine, st store.Store, broadcaster Broadcaster, hub *ws.Hub, metrics *PerformanceMetrics, logger Logger, maxBodyBytes int64, historyLimit int) *Handlers {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Handlers{
		engine:       engine,
		store:        st,
		broadcaster:  broadcaster,
		hub:          hub,
		metrics:      metrics,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
		historyLimit: historyLimit,
	}
}

func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+enterPathRoute, h.handleEnterPath)
	mux.HandleFunc("POST /enter-path", h.handleEnterPath)
	mux.HandleFunc("GET /executions", h.handleListExecutions)
	mux.HandleFunc("GET /executions/{id}", h.handleGetExecution)
	mux.HandleFunc("GET /stream", h.handleStream)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleIndex)
	return mux
}

func (h *Handlers) handleEnterPath(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req protocol.RequestEnterPath
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit))
			return
		}
		h.writeError(w, fmt.Errorf("%w: %v", ErrMalformedRequest, err))
		return
	}

	result, err := h.engine.Execute(r.Context(), req)
	if err != nil {
		h.logger.Warn("enter-path failed", "commands", len(req.Commands), "err", err)
		h.writeError(w, err)
		return
	}

	h.broadcaster.BroadcastEvent(r.Context(), protocol.EventExecutionRecorded, result.Record)
	writeJSON(w, http.StatusOK, result.Record)
}

func (h *Handlers) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, &APIError{Status: http.StatusBadRequest, Code: "InvalidID", Message: "execution id must be a UUID"})
		return
	}
	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProtocolRecord(rec))
}

func (h *Handlers) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	limit := h.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, &APIError{Status: http.StatusBadRequest, Code: "InvalidLimit", Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	recs, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol.ExecutionList{Executions: toProtocolRecords(recs)})
}

func (h *Handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.logger.Warn("websocket accept failed", "err", err)
		return
	}

	recent, err := h.store.List(r.Context(), h.historyLimit)
	if err != nil {
		h.logger.Error("loading recent executions failed", "err", err)
	}
	hello, err := marshalJSON(protocol.PatchEnvelope{
		Sequence: 0,
		Type:     protocol.EventHello,
		Payload:  protocol.Hello{RecentExecutions: toProtocolRecords(recent)},
	})
	if err != nil {
		h.logger.Error("encoding hello failed", "err", err)
		_ = conn.Close(websocket.StatusInternalError, "hello failed")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), helloTimeout)
	err = conn.Write(ctx, websocket.MessageText, hello)
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "hello failed")
		return
	}

	h.hub.Serve(r.Context(), conn)
}

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context(), h.historyLimit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.HistoryPage(toProtocolRecords(recs)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.UpdateSystemMetrics()
	writeJSON(w, http.StatusOK, struct {
		Status      string          `json:"status"`
		Subscribers int             `json:"subscribers"`
		Metrics     MetricsSnapshot `json:"metrics"`
	}{
		Status:      "ok",
		Subscribers: h.hub.Len(),
		Metrics:     h.metrics.Snapshot(),
	})
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	}
	writeJSON(w, apiErr.Status, protocol.ErrorResponse{Code: apiErr.Code, Message: apiErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
