// Package iouniprot finds taxon IDs of species names with UniProt
// taxonomy REST API.
package iouniprot

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

const (
	defaultBaseURL = "https://rest.uniprot.org"
	defaultTimeout = 60 * time.Second
)

// Config describes the UniProt client.
type Config struct {
	// BaseURL of UniProt REST API, for example https://rest.uniprot.org.
	BaseURL string
	// Timeout of one request. Ignored if HTTPClient is given.
	Timeout time.Duration
	// HTTPClient replaces the default client, mostly for tests.
	HTTPClient *http.Client
}

// Client is a taxonomy.NameService backed by UniProt.
type Client struct {
	baseURL string
	http    *http.Client
	enc     gnfmt.GNjson
}

type searchResponse struct {
	Results []struct {
		TaxonID        int    `json:"taxonId"`
		ScientificName string `json:"scientificName"`
	} `json:"results"`
}

// New creates a UniProt client.
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, http: client}
}

// TaxonID returns the taxon ID of the first taxonomy search result for
// the name. It returns taxonomy.ErrNotFound if there are no results.
func (c *Client) TaxonID(ctx context.Context, name string) (int, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("format", "json")
	endpoint := c.baseURL + "/taxonomy/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, RequestError(name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, RequestError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, StatusError(name, resp.StatusCode,
			strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, RequestError(name, err)
	}

	var res searchResponse
	if err = c.enc.Decode(data, &res); err != nil {
		return 0, DecodeError(name, err)
	}
	if len(res.Results) == 0 {
		return 0, taxonomy.ErrNotFound
	}
	return res.Results[0].TaxonID, nil
}

var _ taxonomy.NameService = (*Client)(nil)
