package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
)

// Server exposes the calculators over HTTP. Requests share no state; every
// handler builds its result from the request body alone.
type Server struct {
	Logger      *zap.Logger
	Version     string
	MaxBodySize int
	// Sink, when set, receives a snapshot of every successful calculation.
	Sink output.SnapshotSink

	now func() time.Time
}

// New creates a server. A nil logger discards logs.
func New(logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Logger: logger, Version: version, MaxBodySize: 1 << 20, now: time.Now}
}

type handlerFunc func(body []byte) (calculatorType string, inputs, result interface{}, err error)

// Handler routes requests.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	started := s.clock()
	path := string(ctx.Path())
	if path == "/api/version" {
		if !ctx.IsGet() {
			s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.respond(ctx, started, "version", nil, VersionResult{Version: s.Version}, false)
		return
	}

	var h handlerFunc
	switch path {
	case "/api/tax":
		h = handleTax
	case "/api/loan":
		h = handleLoan
	case "/api/yield":
		h = handleYield
	case "/api/ledger":
		h = handleLedger
	case "/api/ledger/edit":
		h = handleLedgerEdit
	case "/api/simulate":
		h = handleSimulate
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Unknown endpoint: "+path)
		return
	}
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	calculatorType, inputs, result, err := h(ctx.PostBody())
	if err != nil {
		s.Logger.Info("calculation rejected", zap.String("path", path), zap.Error(err))
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.respond(ctx, started, calculatorType, inputs, result, true)
}

func (s *Server) respond(ctx *fasthttp.RequestCtx, started time.Time, calculatorType string, inputs, result interface{}, persist bool) {
	snap := output.NewSnapshot(calculatorType, inputs, result)
	resp := Response{
		CalculationID:         snap.ID,
		CalculationStartedAt:  started.UTC().Format(time.RFC3339),
		CalculationDurationMs: s.clock().Sub(started).Milliseconds(),
		Outcome:               OutcomeSuccess,
		Result:                result,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.Logger.Error("failed to encode response", zap.String("calculation_id", snap.ID), zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "Result is not representable as JSON")
		return
	}
	if persist && s.Sink != nil {
		if path, err := s.Sink.Save(snap); err != nil {
			s.Logger.Warn("snapshot not saved", zap.String("calculation_id", snap.ID), zap.Error(err))
		} else {
			s.Logger.Debug("snapshot saved", zap.String("path", path))
		}
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
	s.Logger.Info("calculation complete",
		zap.String("calculation_id", snap.ID),
		zap.String("calculator", calculatorType),
		zap.Int64("duration_ms", resp.CalculationDurationMs))
}

func (s *Server) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "fincalc",
		MaxRequestBodySize: s.MaxBodySize,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()
	s.Logger.Info("calculation service listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.Logger.Info("shutting down calculation service")
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func decode(body []byte, v interface{}) error {
	if len(body) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func brackets(table domain.BracketTable) (domain.BracketTable, error) {
	if len(table) == 0 {
		return calculation.DefaultBracketTable(), nil
	}
	if err := calculation.ValidateBrackets(table); err != nil {
		return nil, err
	}
	return table, nil
}
