package google

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
	"go.uber.org/zap"

	"dayplanner/internal/model"
	"dayplanner/pkg/circuitbreaker"
	"dayplanner/pkg/metrics"
)

// ContactsClient reads the authenticated user's connections from the People
// API. Contacts without an email address are skipped since email is the
// dedup key.
type ContactsClient struct {
	srv     *people.Service
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewContactsClient(ctx context.Context, client *http.Client, logger *zap.Logger) (*ContactsClient, error) {
	srv, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}

	return &ContactsClient{
		srv:     srv,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:  logger,
	}, nil
}

func (c *ContactsClient) Contacts(ctx context.Context) ([]model.Contact, error) {
	start := time.Now()
	var out []model.Contact

	err := c.breaker.Execute(func() error {
		res, err := c.srv.People.Connections.List("people/me").
			PersonFields("names,emailAddresses,phoneNumbers").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("list connections: %w", err)
		}

		for _, p := range res.Connections {
			email := ""
			if len(p.EmailAddresses) > 0 {
				email = p.EmailAddresses[0].Value
			}
			if email == "" {
				continue
			}

			name := "Unknown"
			if len(p.Names) > 0 && p.Names[0].DisplayName != "" {
				name = p.Names[0].DisplayName
			}
			phone := ""
			if len(p.PhoneNumbers) > 0 {
				phone = p.PhoneNumbers[0].Value
			}

			out = append(out, model.Contact{Name: name, Email: email, Phone: phone})
		}
		return nil
	})

	metrics.ProviderFetchDuration.WithLabelValues("contacts").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return out, nil
}
