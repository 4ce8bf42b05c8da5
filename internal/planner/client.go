// Package planner talks to the external plan-generation service. This side
// only builds the request payload and consumes the preview the service
// returns; the planning algorithm itself lives on the other end.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/internal/model"
)

// Client is the plan service HTTP client
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// NewClient creates a client for the given service URL
func NewClient(baseURL, userID string) *Client {
	return &Client{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GeneratePlan posts a request and returns the preview. A failure here is
// purely informational — nothing has been persisted, so the caller just
// surfaces the error to the user.
func (c *Client) GeneratePlan(ctx context.Context, req model.PlanRequest) (*model.PlanPreview, error) {
	if c.userID != "" && req.UserID == "" {
		req.UserID = c.userID
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/generate-plan", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Info("Requesting plan generation",
		logger.F("url", c.baseURL), logger.F("distribute", req.DistributeTasksAcrossDays))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plan service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("plan service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result model.PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode plan response: %w", err)
	}
	if !result.Success || result.Preview == nil {
		if result.Error != "" {
			return nil, fmt.Errorf("plan service error: %s", result.Error)
		}
		return nil, fmt.Errorf("plan service returned no preview")
	}
	return result.Preview, nil
}
