// Package planner talks to the external path-planning service over its three
// JSON endpoints: GET /map, POST /path and GET /randomize.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"github.com/google/uuid"

	"github.com/Garsondee/battlepath/internal/logx"
	"github.com/Garsondee/battlepath/internal/model"
)

var (
	// ErrNetworkFailure covers transport errors and non-2xx statuses.
	ErrNetworkFailure = errors.New("planner unreachable")
	// ErrBadResponse means the planner answered with a body we cannot decode.
	ErrBadResponse = errors.New("planner response malformed")
)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

// Client is a planner API client. It is safe for concurrent use.
type Client struct {
	base string
	hc   *client.Client
	log  *logx.Logger
}

// New returns a client for the API rooted at baseURL, e.g.
// http://127.0.0.1:5000/api.
func New(baseURL string, timeout time.Duration, log *logx.Logger) *Client {
	hc := client.New()
	if timeout > 0 {
		hc.SetTimeout(timeout)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   hc,
		log:  log,
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.base }

// FetchMap loads the current map.
func (c *Client) FetchMap(ctx context.Context) (*model.Grid, error) {
	var resp MapResponse
	if err := c.do(ctx, "GET", "/map", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Grid()
}

// ComputePath asks the planner for a path and risk field.
func (c *Client) ComputePath(ctx context.Context, req PathRequest) (*PathResponse, error) {
	var resp PathResponse
	if err := c.do(ctx, "POST", "/path", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Randomize asks the planner for a fresh set of threats.
func (c *Client) Randomize(ctx context.Context) ([]model.Threat, error) {
	var resp RandomizeResponse
	if err := c.do(ctx, "GET", "/randomize", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Enemies == nil {
		resp.Enemies = []model.Threat{}
	}
	return resp.Enemies, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	id := uuid.NewString()
	cfg := client.Config{
		Ctx: ctx,
		Header: map[string]string{
			RequestIDHeader: id,
			"Accept":        "application/json",
		},
	}
	if body != nil {
		cfg.Body = body
	}

	url := c.base + path
	start := time.Now()
	c.log.Debugf("planner %s %s id=%s", method, url, id)

	var (
		resp *client.Response
		err  error
	)
	switch method {
	case "POST":
		resp, err = c.hc.Post(url, cfg)
	default:
		resp, err = c.hc.Get(url, cfg)
	}
	if err != nil {
		c.log.Warnf("planner %s %s id=%s failed: %v", method, path, id, err)
		return fmt.Errorf("%w: %s %s: %v", ErrNetworkFailure, method, path, err)
	}
	status := resp.StatusCode()
	data := append([]byte(nil), resp.Body()...)
	resp.Close()

	c.log.Debugf("planner %s %s id=%s status=%d bytes=%d in %v", method, path, id, status, len(data), time.Since(start))
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: %s %s: HTTP %d", ErrNetworkFailure, method, path, status)
	}
	if err := json.Unmarshal(sanitize(data), out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrBadResponse, method, path, err)
	}
	return nil
}
