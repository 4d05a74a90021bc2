package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ajmoran/hexfray/internal/hexmap"
	"github.com/ajmoran/hexfray/internal/telemetry"
)

// Request asks the authority to validate one movement plan.
type Request struct {
	PlanID   uuid.UUID
	Start    hexmap.Axial
	Goal     hexmap.Axial
	Mode     string
	GridSize int
	Cells    []hexmap.CellState
}

// Result is the authority's verdict on a plan. Err is set when
// transport failed after retries; the session fails open on it and
// keeps its local plan.
type Result struct {
	PlanID   uuid.UUID
	Approved bool
	Path     []hexmap.Axial
	Err      error
}

// Client ships validation requests to the authority. Every request
// runs on its own goroutine so the caller never blocks.
type Client struct {
	baseURL        string
	http           *http.Client
	initialBackoff time.Duration
	maxTries       uint
}

// Option adjusts client behavior.
type Option func(*Client)

// WithTimeout overrides the per-attempt request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetry overrides the retry schedule. Tests shrink it so failing
// cases finish quickly.
func WithRetry(initial time.Duration, tries uint) Option {
	return func(c *Client) {
		c.initialBackoff = initial
		c.maxTries = tries
	}
}

// NewClient creates a client for the authority at baseURL. Defaults:
// 5s per attempt, 3 tries, exponential backoff starting at 1s.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		http:           &http.Client{Timeout: 5 * time.Second},
		initialBackoff: time.Second,
		maxTries:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate ships the request in the background and delivers exactly
// one Result on the returned channel before closing it.
func (c *Client) Validate(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- c.validate(ctx, req)
	}()
	return ch
}

func (c *Client) validate(ctx context.Context, req Request) Result {
	tracer := telemetry.Tracer("gateway")
	ctx, span := tracer.Start(ctx, "gateway.validate")
	defer span.End()
	span.SetAttributes(
		attribute.String("plan.id", req.PlanID.String()),
		attribute.String("game.mode", req.Mode),
	)

	body, err := json.Marshal(moveRequest{
		PlanID:   req.PlanID.String(),
		Start:    req.Start,
		Goal:     req.Goal,
		GameMode: req.Mode,
		GridSize: req.GridSize,
		Cells:    req.Cells,
	})
	if err != nil {
		return Result{PlanID: req.PlanID, Err: fmt.Errorf("encode plan: %w", err)}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialBackoff
	bo.Multiplier = 2.0

	operation := func() (*moveResponse, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/api/move_path", bytes.NewReader(body))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		// Server errors are worth retrying; anything else non-OK is a
		// malformed request on our side and retrying cannot fix it.
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("authority returned %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("authority refused request: %s", resp.Status))
		}

		var out moveResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		span.SetAttributes(attribute.Bool("plan.approved", false))
		return Result{PlanID: req.PlanID, Err: fmt.Errorf("validate plan: %w", err)}
	}

	approved := len(resp.ApprovedPath) > 0
	span.SetAttributes(attribute.Bool("plan.approved", approved))
	return Result{
		PlanID:   req.PlanID,
		Approved: approved,
		Path:     resp.ApprovedPath,
	}
}
