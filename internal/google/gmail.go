package google

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"go.uber.org/zap"

	"dayplanner/internal/service"
	"dayplanner/internal/util"
	"dayplanner/pkg/circuitbreaker"
	"dayplanner/pkg/config"
	"dayplanner/pkg/metrics"
)

// GmailClient reads recent messages from the authenticated user's inbox.
// A redis-backed deduper skips message ids already fetched in a previous
// cycle so repeated polls do not refetch full metadata for every message.
type GmailClient struct {
	srv        *gmail.Service
	maxResults int64
	seen       *util.Deduper
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewGmailClient builds a client; seen may be nil, in which case every listed
// message is fetched and the database unique index alone handles duplicates.
func NewGmailClient(ctx context.Context, client *http.Client, cfg config.GoogleConfig, seen *util.Deduper, logger *zap.Logger) (*GmailClient, error) {
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	maxResults := int64(cfg.MaxResults)
	if maxResults <= 0 {
		maxResults = 50
	}

	return &GmailClient{
		srv:        srv,
		maxResults: maxResults,
		seen:       seen,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:     logger,
	}, nil
}

func (c *GmailClient) Messages(ctx context.Context) ([]service.IncomingEmail, error) {
	start := time.Now()
	var out []service.IncomingEmail

	err := c.breaker.Execute(func() error {
		res, err := c.srv.Users.Messages.List("me").
			MaxResults(c.maxResults).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("list messages: %w", err)
		}

		for _, m := range res.Messages {
			if c.seen != nil && !c.seen.AcquireOnce(ctx, "gmail", m.Id) {
				continue
			}

			detail, err := c.srv.Users.Messages.Get("me", m.Id).
				Format("metadata").
				MetadataHeaders("Subject", "From").
				Context(ctx).
				Do()
			if err != nil {
				return fmt.Errorf("get message %s: %w", m.Id, err)
			}

			subject, sender := "No Subject", "Unknown"
			if detail.Payload != nil {
				for _, h := range detail.Payload.Headers {
					switch h.Name {
					case "Subject":
						subject = h.Value
					case "From":
						sender = h.Value
					}
				}
			}

			out = append(out, service.IncomingEmail{
				MessageID: m.Id,
				Subject:   subject,
				Sender:    sender,
				Snippet:   detail.Snippet,
			})
		}
		return nil
	})

	metrics.ProviderFetchDuration.WithLabelValues("gmail").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return out, nil
}
