package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestHTTPSourceListProducts(t *testing.T) {
	const respBody = `[
		{"id":1,"title":"Backpack","price":109.95,"description":"Fits 15 inch laptops","category":"men's clothing","image":"https://img.test/1.jpg","rating":{"rate":3.9,"count":120},"extra":"ignored"},
		{"id":2,"title":"No Image","price":"22.30","description":"","category":"jewelery","rating":{"rate":7,"count":-3}},
		{"id":0,"title":"Broken","price":1,"category":"x"},
		{"id":3,"title":"Negative","price":-1,"category":"x"}
	]`

	var capturedURL, capturedAccept string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet {
			t.Fatalf("unexpected method %s", req.Method)
		}
		capturedURL = req.URL.String()
		capturedAccept = req.Header.Get("Accept")
		return jsonResponse(http.StatusOK, respBody), nil
	})

	source := NewHTTPSource("http://catalog.test/", WithHTTPClient(&http.Client{Transport: rt}))
	products, err := source.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if capturedURL != "http://catalog.test/products" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedAccept != "application/json" {
		t.Fatalf("unexpected accept header %q", capturedAccept)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 valid products, got %d", len(products))
	}

	first := products[0]
	if first.ID != 1 || first.Price.String() != "109.95" || !first.HasImage() {
		t.Fatalf("unexpected first product %+v", first)
	}
	if first.Rating.Rate != 3.9 || first.Rating.Count != 120 {
		t.Fatalf("unexpected rating %+v", first.Rating)
	}

	second := products[1]
	if second.HasImage() {
		t.Fatalf("expected missing image to be absent")
	}
	if second.Price.String() != "22.3" {
		t.Fatalf("unexpected price %s", second.Price)
	}
	if second.Rating.Rate != 5 || second.Rating.Count != 0 {
		t.Fatalf("expected rating to be clamped, got %+v", second.Rating)
	}
}

func TestHTTPSourceDependencyErrors(t *testing.T) {
	tests := []struct {
		name string
		rt   roundTripFunc
	}{
		{
			name: "transport failure",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		},
		{
			name: "non-200 status",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, "upstream down"), nil
			},
		},
		{
			name: "malformed body",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"not":"a list"}`), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := NewHTTPSource("http://catalog.test", WithHTTPClient(&http.Client{Transport: tc.rt}))
			products, err := source.ListProducts(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if products != nil {
				t.Fatalf("expected no products on failure")
			}
			if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
				t.Fatalf("expected dependency error, got %v", err)
			}
		})
	}
}

func TestNewHTTPSourceDefaults(t *testing.T) {
	source := NewHTTPSource("  ")
	if source.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", source.baseURL)
	}
	if source.httpClient == nil || source.httpClient.Timeout != 0 {
		t.Fatalf("expected default client without timeout")
	}
}
