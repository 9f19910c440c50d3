package inference

import (
	"context"
	"strings"

	"github.com/avast/retry-go"
)

// IsRetryableError determines if an error should trigger a retry
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Malformed completions are usually transient model output problems
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}
	if strings.Contains(errStr, "malformed completion") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// Do retries fn with exponential backoff until it succeeds, it returns an
// error IsRetryableError rejects, the context is cancelled, or
// maxRetryAttempts retries are exhausted. Only the last error comes back, so
// callers can match it with errors.Is.
func Do(ctx context.Context, maxRetryAttempts uint, fn func() error) error {
	return retry.Do(
		func() error {
			if err := fn(); err != nil {
				if !IsRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxRetryAttempts+1),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
