package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vitalmarket/supplements-service/internal/logs"
)

type ProductsClient struct {
	httpClient *http.Client
	baseURL    string
	logger     logs.Logger
}

func NewProductsClient(baseURL string, logger logs.Logger) *ProductsClient {
	return &ProductsClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// EvictCache asks the products service to drop its cached supplement
// data via DELETE {base}/products/cache.
func (c *ProductsClient) EvictCache(ctx context.Context) error {
	url := fmt.Sprintf("%s/products/cache", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		c.logger.Error("failed to create request to products-service", "error", err, "url", url)
		return fmt.Errorf("could not create request to products-service: %w", err)
	}

	c.logger.Debug("sending cache eviction request to products-service", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to send request to products-service", "error", err, "url", url)
		return fmt.Errorf("request to products-service failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("unexpected status code from products-service", "status_code", resp.StatusCode, "url", url)
		return fmt.Errorf("unexpected status code from products-service: %d", resp.StatusCode)
	}

	return nil
}
