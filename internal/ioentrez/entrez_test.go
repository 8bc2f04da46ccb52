package ioentrez_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/ioentrez"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taxa = map[string]string{
	"9606": `<Taxon>
  <TaxId>9606</TaxId>
  <ScientificName>Homo sapiens</ScientificName>
  <Lineage>cellular organisms; Eukaryota; Opisthokonta; Metazoa; Chordata; Mammalia; Primates; Hominidae; Homo</Lineage>
  <LineageEx>
    <Taxon><TaxId>131567</TaxId><ScientificName>cellular organisms</ScientificName></Taxon>
  </LineageEx>
</Taxon>`,
	"562": `<Taxon>
  <TaxId>562</TaxId>
  <ScientificName>Escherichia coli</ScientificName>
  <Lineage>cellular organisms; Bacteria; Pseudomonadota; Gammaproteobacteria; Enterobacterales; Enterobacteriaceae; Escherichia</Lineage>
  <AkaTaxIds><TaxId>1637</TaxId><TaxId>662101</TaxId></AkaTaxIds>
</Taxon>`,
}

func newServer(t *testing.T, calls *[]string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "/efetch.fcgi", r.URL.Path)
			assert.Equal(t, "taxonomy", r.Form.Get("db"))
			assert.Equal(t, "xml", r.Form.Get("retmode"))
			assert.Equal(t, "me@example.org", r.Form.Get("email"))
			assert.Equal(t, "gnlineage", r.Form.Get("tool"))

			ids := r.Form.Get("id")
			*calls = append(*calls, ids)
			if ids == "500" {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			if ids == "7" {
				fmt.Fprint(w, `<eFetchResult><ERROR>Unable to obtain query #1</ERROR></eFetchResult>`)
				return
			}
			if ids == "0" {
				fmt.Fprint(w, `<eFetchResult><ERROR>ID list is empty!</ERROR></eFetchResult>`)
				return
			}
			var sb strings.Builder
			sb.WriteString(`<?xml version="1.0" ?><TaxaSet>`)
			// reversed order on purpose
			parts := strings.Split(ids, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				id := parts[i]
				if id == "1637" {
					id = "562"
				}
				sb.WriteString(taxa[id])
			}
			sb.WriteString(`</TaxaSet>`)
			fmt.Fprint(w, sb.String())
		}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(url string) *ioentrez.Client {
	return ioentrez.New(ioentrez.Config{
		BaseURL: url,
		Email:   "me@example.org",
		Tool:    "gnlineage",
	})
}

func TestLineages(t *testing.T) {
	var calls []string
	srv := newServer(t, &calls)
	c := newClient(srv.URL)

	recs, err := c.Lineages(context.Background(), []int{9606, 1637, 42})
	require.NoError(t, err)
	assert.Equal(t, []string{"9606,1637,42"}, calls)
	require.Len(t, recs, 2)

	assert.Equal(t, 562, recs[0].TaxonID)
	assert.True(t, recs[0].Matches(1637))
	assert.Equal(t, []int{1637, 662101}, recs[0].Aliases)
	assert.True(t, strings.HasPrefix(recs[0].Lineage, "cellular organisms; Bacteria"))
	assert.Equal(t, 9606, recs[1].TaxonID)
	assert.True(t, strings.HasSuffix(recs[1].Lineage, "Hominidae; Homo"))

	recs, err = c.Lineages(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, recs)
	assert.Len(t, calls, 1)
}

func TestLineage(t *testing.T) {
	var calls []string
	srv := newServer(t, &calls)
	c := newClient(srv.URL)
	ctx := context.Background()

	lin, err := c.Lineage(ctx, 9606)
	require.NoError(t, err)
	assert.Contains(t, lin, "Mammalia; Primates")

	_, err = c.Lineage(ctx, 42)
	assert.ErrorIs(t, err, taxonomy.ErrNotFound)

	_, err = c.Lineage(ctx, 500)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ServiceStatusError, gnErr.Code)

	_, err = c.Lineage(ctx, 0)
	assert.ErrorIs(t, err, taxonomy.ErrNotFound, "no correct IDs")
}

// An <ERROR> answer that does not say the ID is unknown is a failure,
// not a missing record, so the entry can be retried later.
func TestLineageServiceError(t *testing.T) {
	var calls []string
	srv := newServer(t, &calls)
	c := newClient(srv.URL)

	_, err := c.Lineage(context.Background(), 7)
	assert.False(t, errors.Is(err, taxonomy.ErrNotFound))
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ServiceDecodeError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "Unable to obtain query")
	assert.Equal(t, []string{"7"}, calls)
}

func TestLineagesServiceError(t *testing.T) {
	var calls []string
	srv := newServer(t, &calls)
	c := newClient(srv.URL)

	_, err := c.Lineages(context.Background(), []int{0})
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ServiceDecodeError, gnErr.Code)
}
