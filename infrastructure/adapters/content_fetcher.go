package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

// ContentFetcher sends a prepared request and returns the response body,
// classifying failures per the provider-error taxonomy: transport errors,
// timeouts, 429 and 5xx are transient, other non-OK statuses permanent.
type ContentFetcher interface {
	FetchContent(req *http.Request, op string) ([]byte, error)
}

type contentFetcher struct {
	logger outbound.LoggerPort
	client *http.Client
}

func NewContentFetcher(logger outbound.LoggerPort) ContentFetcher {
	return &contentFetcher{
		logger: logger,
		client: &http.Client{},
	}
}

func (c *contentFetcher) FetchContent(req *http.Request, op string) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
			"op":     op,
		})
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, domain.NewTransientError(op, err)
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			c.logger.Error(closeErr, "Failed to close the response body")
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		bodyPayload, _ := io.ReadAll(res.Body)
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"method":  req.Method,
			"URL":     req.URL.String(),
			"status":  res.StatusCode,
			"message": string(bodyPayload),
			"op":      op,
		})
		statusErr := fmt.Errorf("HTTP request returned non-OK status code: %d", res.StatusCode)
		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			return nil, domain.NewTransientError(op, statusErr)
		}
		return nil, domain.NewPermanentError(op, statusErr)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"method": req.Method,
			"URL":    req.URL.String(),
			"op":     op,
		})
		return nil, domain.NewTransientError(op, err)
	}

	return payload, nil
}
