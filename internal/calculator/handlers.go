package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Handler serves the calculator endpoints over a session store.
type Handler struct {
	store *Store
}

// NewHandler returns a Handler backed by store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	sess, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.create", "session limit reached", err, statusFor(err), w)
		return
	}

	span.SetAttributes(attribute.String("calculator.session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(sess.ID, sess.State))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.get", "session not found", err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(sess.ID, sess.State))
}

// PressKeys handles POST /calculator/sessions/{id}/keys — applies the keys in
// order, creating a child span for every press.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.keys",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	keys, ok := decodeKeys(w, r.WithContext(ctx), span, "session.keys")
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("calculator.keys.count", len(keys)))

	sess, err := h.store.PressContext(ctx, id, keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.keys", "session not found", err, statusFor(err), w)
		return
	}

	span.SetAttributes(attribute.String("calculator.input", sess.State.Input()))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys applied",
		zap.String("session_id", id),
		zap.Int("keys", len(keys)),
		zap.String("input", sess.State.Input()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(sess.ID, sess.State))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.delete", "session not found", err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers — stateless
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate — runs the keys against a fresh
// calculator without creating a session.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	keys, ok := decodeKeys(w, r.WithContext(ctx), span, "evaluate")
	if !ok {
		return
	}

	st := PressTraced(ctx, New(), keys)

	span.SetAttributes(
		attribute.Int("calculator.keys.count", len(keys)),
		attribute.String("calculator.input", st.Input()),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator sequence evaluated",
		zap.Int("keys", len(keys)),
		zap.String("input", st.Input()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse("", st))
}

// Apply handles POST /calculator/apply — a single binary operation on decimal
// strings. An unrepresentable result is reported as the "Error" sentinel, not
// as an HTTP error.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.apply",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "apply", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	op, err := ParseOperator(req.Op)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "apply", "unknown operator", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", req.A),
		attribute.String("calculator.operator", string(op)),
		attribute.String("calculator.operand.b", req.B),
	)

	result := Apply(req.A, op, req.B)
	if result == ErrorSentinel {
		_, evalErr := Evaluate(req.A, op, req.B)
		span.RecordError(evalErr)
		errorCounter.Add(ctx, 1)
		logger.Warn("calculator operation failed",
			zap.String("operation", string(op)),
			zap.Error(evalErr),
			zap.String("request_id", requestID),
		)
	} else {
		span.SetAttributes(attribute.String("calculator.result", result))
	}
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, ApplyResponse{
		A:       req.A,
		Op:      op,
		B:       req.B,
		Result:  result,
		Display: FormatNumber(result),
	})
}

// decodeKeys reads a KeysRequest body and writes the error response itself
// when the body is unusable.
func decodeKeys(w http.ResponseWriter, r *http.Request, span trace.Span, opName string) ([]Key, bool) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return nil, false
	}

	keys, err := req.decode()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return nil, false
	}
	if len(keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no keys provided", fmt.Errorf("keys and sequence are empty"), http.StatusBadRequest, w)
		return nil, false
	}
	return keys, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnknownKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
