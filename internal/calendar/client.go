package calendar

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventLister lists the events of one calendar day.
type EventLister interface {
	ListDay(ctx context.Context, calendarID string, w Window) ([]*calendar.Event, error)
}

// Client wraps the Google Calendar API service
type Client struct {
	service *calendar.Service
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint string
	rps      float64
	burst    int
}

// WithEndpoint points the client at a Calendar-compatible server, e.g. a test fake.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) { o.endpoint = endpoint }
}

// WithRateLimit caps outbound requests per second. A non-positive rps disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *clientOptions) {
		o.rps = rps
		o.burst = burst
	}
}

// NewClient creates a new Google Calendar API client on top of an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if o.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(o.endpoint))
	}

	srv, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	c := &Client{service: srv}
	if o.rps > 0 {
		burst := o.burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(o.rps), burst)
	}

	return c, nil
}

// ListDay returns the events of calendarID overlapping the window, with recurring
// events expanded into single instances and ordered by start time.
// Exactly one page is requested; no pagination is followed.
func (c *Client) ListDay(ctx context.Context, calendarID string, w Window) ([]*calendar.Event, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for upstream rate limit: %w", err)
		}
	}

	events, err := c.service.Events.List(calendarID).
		Context(ctx).
		TimeMin(w.TimeMin).
		TimeMax(w.TimeMax).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	return events.Items, nil
}
