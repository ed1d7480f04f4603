package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
)

const (
	DefaultBaseURL              = "https://fakestoreapi.com"
	productsPath                = "products"
	responseBodyReadLimit int64 = 1024
)

// Source is the read-only provider of product listings.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// HTTPSource reads the product list from a Fake Store compatible REST endpoint.
type HTTPSource struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional source behavior.
type Option func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewHTTPSource builds a source against baseURL. The default client enforces no timeout;
// callers bound the fetch through the request context.
func NewHTTPSource(baseURL string, opts ...Option) *HTTPSource {
	source := &HTTPSource{
		baseURL:    strings.TrimSpace(baseURL),
		httpClient: &http.Client{},
	}
	if source.baseURL == "" {
		source.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		if opt != nil {
			opt(source)
		}
	}
	return source
}

// ListProducts performs the single GET against the products endpoint. Records that violate
// the product invariants (non-positive id, negative price) are dropped.
func (s *HTTPSource) ListProducts(ctx context.Context) ([]Product, error) {
	if s == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog source not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.buildURL(productsPath), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
	}

	var records []Product
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}

	products := make([]Product, 0, len(records))
	for _, p := range records {
		if !p.valid() {
			continue
		}
		p.Image = strings.TrimSpace(p.Image)
		p.Rating = p.Rating.normalized()
		products = append(products, p)
	}
	return products, nil
}

func (s *HTTPSource) buildURL(path string) string {
	trimmed := strings.TrimRight(s.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
