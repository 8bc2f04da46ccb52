package iouniprot_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iouniprot"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/taxonomy/search" {
				http.NotFound(w, r)
				return
			}
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			switch r.URL.Query().Get("query") {
			case "Platichthys flesus":
				w.Write([]byte(`{"results":[
					{"taxonId":8260,"scientificName":"Platichthys flesus"},
					{"taxonId":1,"scientificName":"root"}]}`))
			case "Bogus bogus":
				w.Write([]byte(`{"results":[]}`))
			case "Broken json":
				w.Write([]byte(`{"results":[`))
			default:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("server is down"))
			}
		}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTaxonID(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	c := iouniprot.New(iouniprot.Config{BaseURL: srv.URL + "/"})

	id, err := c.TaxonID(ctx, "Platichthys flesus")
	require.NoError(t, err)
	assert.Equal(t, 8260, id)

	_, err = c.TaxonID(ctx, "Bogus bogus")
	assert.ErrorIs(t, err, taxonomy.ErrNotFound)

	tests := []struct {
		msg  string
		name string
		code gn.ErrorCode
	}{
		{"bad json", "Broken json", errcode.ServiceDecodeError},
		{"server error", "Down", errcode.ServiceStatusError},
	}
	for _, v := range tests {
		_, err = c.TaxonID(ctx, v.name)
		require.Error(t, err, v.msg)
		assert.False(t, errors.Is(err, taxonomy.ErrNotFound), v.msg)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestTaxonIDUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := iouniprot.New(iouniprot.Config{BaseURL: url})
	_, err := c.TaxonID(context.Background(), "Homo sapiens")
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ServiceRequestError, gnErr.Code)
}

func TestTaxonIDCancelled(t *testing.T) {
	srv := newServer(t)
	c := iouniprot.New(iouniprot.Config{BaseURL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.TaxonID(ctx, "Platichthys flesus")
	assert.ErrorIs(t, err, context.Canceled)
}
