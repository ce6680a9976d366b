package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Payload is implemented by every expected response type; Validate is the
// shape check run before a response body is trusted.
type Payload interface {
	Validate() error
}

const maxResponseBytes = 4 << 20

// Executor is the single chokepoint performing HTTP calls. It parses JSON,
// enforces shape validation and tracks in-flight state. It never retries;
// callers decide retry policy.
type Executor struct {
	hc       *http.Client
	log      *zap.Logger
	inflight atomic.Int32
}

// NewExecutor builds an Executor with the given timeout. A nil logger is
// replaced with a nop logger.
func NewExecutor(timeout time.Duration, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		hc:  &http.Client{Timeout: timeout},
		log: log,
	}
}

// Loading reports whether any request is currently in flight.
func (e *Executor) Loading() bool {
	return e.inflight.Load() > 0
}

// Do sends the request and decodes the response into dst. A non-2xx status
// yields a *RequestError carrying the parsed error body; a 2xx body that
// fails dst.Validate yields a *TypeMismatchError. dst may be nil when no
// body is expected.
func (e *Executor) Do(ctx context.Context, req *Request, dst Payload) error {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", req.Method, req.URL, err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := e.hc.Do(httpReq)
	if err != nil {
		e.log.Warn("request failed", zap.String("method", req.Method), zap.String("url", req.URL), zap.Error(err))
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL, err)
	}

	e.log.Debug("request done",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		reqErr := &RequestError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, reqErr); err != nil || reqErr.Message == "" {
			reqErr.Message = http.StatusText(resp.StatusCode)
		}
		reqErr.StatusCode = resp.StatusCode
		return reqErr
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &TypeMismatchError{URL: req.URL, Reason: err}
	}
	if err := dst.Validate(); err != nil {
		return &TypeMismatchError{URL: req.URL, Reason: err}
	}
	return nil
}
