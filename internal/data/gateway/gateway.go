package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"moviepulse/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrUnauthenticated maps 401/403 answers from the remote API.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound maps 404 answers; callers usually degrade it to "absent".
	ErrNotFound = errors.New("not found")
)

// HTTPDoer is the slice of *http.Client the gateways need; tests stub it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies the bearer credential attached to every request.
type TokenSource interface {
	Token() (string, bool)
}

type Gateway struct {
	Relation     RelationGateway
	Review       ReviewGateway
	Notification NotificationGateway
}

func NewGateway(baseURL string, doer HTTPDoer, tokens TokenSource, log *zap.Logger) *Gateway {
	c := &client{
		baseURL: baseURL,
		doer:    doer,
		tokens:  tokens,
		log:     log,
	}
	return &Gateway{
		Relation:     newRelationGateway(c),
		Review:       newReviewGateway(c),
		Notification: newNotificationGateway(c),
	}
}

// client carries what every gateway call needs: base URL, transport,
// credential source.
type client struct {
	baseURL string
	doer    HTTPDoer
	tokens  TokenSource
	log     *zap.Logger
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Context token overrides the process-wide credential.
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok {
		token, ok = c.tokens.Token()
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	correlationID, ok := utils.GetCorrelationIDFromContext(ctx)
	if !ok {
		correlationID = utils.GenerateCorrelationID()
	}
	req.Header.Set("X-Request-Id", correlationID)

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthenticated)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}

	return nil
}
