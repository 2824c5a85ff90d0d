package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"product_service/internal/domain"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound   = errors.New("product service: not found")
	ErrBadRequest = errors.New("product service: bad request")
)

type ProductClient interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	// Create returns the stored product and the Location it can be fetched from.
	Create(ctx context.Context, product *domain.Product) (*domain.Product, string, error)
	Update(ctx context.Context, id int, product *domain.Product) error
	Delete(ctx context.Context, id int) error
}

type productHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewProductHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) ProductClient {
	return &productHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *productHTTPClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode product request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create product request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ProductClient: %s %s failed: %v", method, path, err)
		return nil, fmt.Errorf("failed to communicate with product service: %w", err)
	}
	return resp, nil
}

func (c *productHTTPClient) statusError(resp *http.Response, method, path string) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		c.log.Warnf("ProductClient: %s %s returned 404", method, path)
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case http.StatusBadRequest:
		c.log.Warnf("ProductClient: %s %s returned 400", method, path)
		return fmt.Errorf("%s %s: %w", method, path, ErrBadRequest)
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.log.Errorf("ProductClient: %s %s failed with status %d. Response body: %s", method, path, resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("product service returned status %d for %s %s", resp.StatusCode, method, path)
	}
}

func (c *productHTTPClient) List(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, http.MethodGet, "/products")
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	return products, nil
}

func (c *productHTTPClient) Get(ctx context.Context, id int) (*domain.Product, error) {
	path := fmt.Sprintf("/products/%d", id)
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, http.MethodGet, path)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product %d: %w", id, err)
	}
	if product.ID != id {
		c.log.Warnf("ProductClient: Mismatched product ID in response. Requested %d, got %d", id, product.ID)
	}
	return &product, nil
}

func (c *productHTTPClient) Create(ctx context.Context, product *domain.Product) (*domain.Product, string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/products", product)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, "", c.statusError(resp, http.MethodPost, "/products")
	}

	var created domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, "", fmt.Errorf("failed to decode created product: %w", err)
	}
	c.log.Infof("ProductClient: Created product ID %d", created.ID)
	return &created, resp.Header.Get("Location"), nil
}

func (c *productHTTPClient) Update(ctx context.Context, id int, product *domain.Product) error {
	path := fmt.Sprintf("/products/%d", id)
	resp, err := c.do(ctx, http.MethodPut, path, product)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return c.statusError(resp, http.MethodPut, path)
	}
	return nil
}

func (c *productHTTPClient) Delete(ctx context.Context, id int) error {
	path := fmt.Sprintf("/products/%d", id)
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return c.statusError(resp, http.MethodDelete, path)
	}
	return nil
}
