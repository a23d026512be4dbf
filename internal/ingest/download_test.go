package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPDownloader_FetchesSelectorURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("raw,csv,bytes"))
	}))
	defer srv.Close()

	dl := NewHTTPDownloader(srv.URL)
	payload, err := dl.Download(context.Background(), FullYear(2019))
	require.NoError(t, err)
	require.Equal(t, "/pp-2019.csv", gotPath)
	require.Equal(t, "raw,csv,bytes", string(payload))
}

func TestHTTPDownloader_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dl := NewHTTPDownloader(srv.URL)
	_, err := dl.Download(context.Background(), LatestMonthly())
	require.Error(t, err)
}

func TestHTTPDownloader_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dl := NewHTTPDownloader(srv.URL)
	_, err := dl.Download(ctx, LatestMonthly())
	require.Error(t, err)
}
