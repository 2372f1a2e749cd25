package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vitalmarket/supplements-service/internal/logs"
)

// Tag is the shape returned by the tags service for a single tag id.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type TagsClient struct {
	httpClient *http.Client
	baseURL    string
	logger     logs.Logger
}

func NewTagsClient(baseURL string, logger logs.Logger) *TagsClient {
	return &TagsClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// FetchTags resolves a batch of tag ids into full tag objects via
// GET {base}/tags/ids?ids=<comma-list>.
func (c *TagsClient) FetchTags(ctx context.Context, ids []int64) ([]Tag, error) {
	idList := make([]string, len(ids))
	for i, id := range ids {
		idList[i] = strconv.FormatInt(id, 10)
	}
	url := fmt.Sprintf("%s/tags/ids?ids=%s", c.baseURL, strings.Join(idList, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("failed to create request to tags-service", "error", err, "url", url)
		return nil, fmt.Errorf("could not create request to tags-service: %w", err)
	}

	c.logger.Debug("sending request to tags-service", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to send request to tags-service", "error", err, "url", url)
		return nil, fmt.Errorf("request to tags-service failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status code from tags-service", "status_code", resp.StatusCode, "url", url)
		return nil, fmt.Errorf("unexpected status code from tags-service: %d", resp.StatusCode)
	}

	var tags []Tag
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.logger.Error("failed to decode tags-service response", "error", err)
		return nil, fmt.Errorf("could not decode tags-service response: %w", err)
	}

	return tags, nil
}
