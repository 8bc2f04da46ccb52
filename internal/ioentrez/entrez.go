// Package ioentrez fetches lineages of taxon IDs from NCBI taxonomy
// database via E-utilities efetch.
package ioentrez

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnlineage/pkg/taxonomy"
)

const (
	defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	defaultTimeout = 60 * time.Second
)

// Config contains client settings. NCBI requires Email and Tool to
// identify who sends requests.
type Config struct {
	BaseURL string
	Email   string
	Tool    string
	// APIKey is optional, it raises the allowed request rate.
	APIKey  string
	Timeout time.Duration
	// HTTPClient replaces the default client, mostly for tests.
	HTTPClient *http.Client
}

// Client is a taxonomy.LineageService backed by NCBI taxonomy.
type Client struct {
	cfg  Config
	http *http.Client
}

type taxaSet struct {
	Taxa  []taxon `xml:"Taxon"`
	Error string  `xml:"ERROR"`
}

type taxon struct {
	TaxID   int    `xml:"TaxId"`
	Lineage string `xml:"Lineage"`
	AkaIDs  []int  `xml:"AkaTaxIds>TaxId"`
}

// New creates an E-utilities client.
func New(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, http: client}
}

// Lineages fetches records for all ids in one request. The service may
// return records in any order, skip unknown IDs, and answer merged IDs
// with their current ID.
func (c *Client) Lineages(
	ctx context.Context,
	ids []int,
) ([]taxonomy.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idStr := joinIDs(ids)
	set, err := c.efetch(ctx, idStr)
	if err != nil {
		return nil, err
	}
	if len(set.Taxa) == 0 && set.Error != "" {
		return nil, DecodeError(idStr, errors.New(set.Error))
	}

	res := make([]taxonomy.Record, len(set.Taxa))
	for i, t := range set.Taxa {
		res[i] = taxonomy.Record{
			TaxonID: t.TaxID,
			Aliases: t.AkaIDs,
			Lineage: strings.TrimSpace(t.Lineage),
		}
	}
	return res, nil
}

// Lineage fetches the lineage of one taxon ID. It returns
// taxonomy.ErrNotFound if NCBI has no record for it. Other <ERROR>
// answers, such as "Unable to obtain query", are service failures.
func (c *Client) Lineage(ctx context.Context, id int) (string, error) {
	idStr := strconv.Itoa(id)
	set, err := c.efetch(ctx, idStr)
	if err != nil {
		return "", err
	}
	if len(set.Taxa) > 0 {
		return strings.TrimSpace(set.Taxa[0].Lineage), nil
	}
	if set.Error != "" && !unknownID(set.Error) {
		return "", DecodeError(idStr, errors.New(set.Error))
	}
	return "", taxonomy.ErrNotFound
}

// unknownID is true for <ERROR> messages NCBI sends when none of the
// requested IDs exist.
func unknownID(msg string) bool {
	return strings.Contains(msg, "ID list is empty")
}

func (c *Client) efetch(ctx context.Context, ids string) (taxaSet, error) {
	var res taxaSet
	params := url.Values{}
	params.Set("db", "taxonomy")
	params.Set("id", ids)
	params.Set("retmode", "xml")
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	// POST keeps long ID lists out of the URL.
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.cfg.BaseURL+"/efetch.fcgi",
		strings.NewReader(params.Encode()),
	)
	if err != nil {
		return res, RequestError(ids, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, RequestError(ids, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return res, StatusError(ids, resp.StatusCode,
			strings.TrimSpace(string(body)))
	}

	if err = xml.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, DecodeError(ids, err)
	}
	return res, nil
}

func joinIDs(ids []int) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}
	return strings.Join(strs, ",")
}

var _ taxonomy.LineageService = (*Client)(nil)
