// Package http executes signed exchange requests over resty.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"krexchange/pkg/core"
)

// Client sends one request per call and returns the raw reply. It never
// retries; retry policy belongs to the caller.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
	mu     sync.RWMutex
	closed bool
}

// Config configures a Client.
type Config struct {
	BaseURL string            `validate:"required,url"`
	Timeout time.Duration     `validate:"min=1ms"`
	Headers map[string]string `validate:"omitempty"`
	Logger  zerolog.Logger    `validate:"-"`
}

var validate = validator.New()

// NewClient validates config and builds a resty-backed Client.
func NewClient(config *Config) (*Client, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	logger := config.Logger

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Do executes req. Public requests send their query parameters in insertion
// order; signed requests send their body bytes untouched.
func (c *Client) Do(ctx context.Context, req *core.SignedRequest) (*core.RawResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, fmt.Errorf("client is closed")
	}

	r := c.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}

	url := req.Endpoint
	if len(req.Query) > 0 {
		url += "?" + req.Query.Encode()
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	var resp *resty.Response
	var err error
	switch req.Method {
	case http.MethodGet:
		resp, err = r.Get(url)
	case http.MethodPost:
		resp, err = r.Post(url)
	default:
		return nil, fmt.Errorf("unsupported http method: %s", req.Method)
	}
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("endpoint", req.Endpoint).
			Msg("http request failed")
		return nil, fmt.Errorf("http request: %w", err)
	}

	return &core.RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
	}, nil
}
