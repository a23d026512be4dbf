package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/landslurp/landslurp/internal/export"
	"github.com/landslurp/landslurp/internal/hashing"
	"github.com/landslurp/landslurp/internal/pricepaid"
	"github.com/landslurp/landslurp/internal/testutil"
)

type staticDownloader struct {
	payload []byte
	err     error
	calls   int
}

func (s *staticDownloader) Download(ctx context.Context, d Dataset) ([]byte, error) {
	s.calls++
	return s.payload, s.err
}

type staticPostcodes struct{}

func (staticPostcodes) Find(ctx context.Context, area, sector string) (*pricepaid.Point, error) {
	if area == "SW1A" {
		return &pricepaid.Point{Lat: 51.501, Long: -0.141}, nil
	}
	return nil, nil
}

func testPayload(n int) []byte {
	var b strings.Builder
	for i := 0; i < n; i++ {
		postcode := "SW1A 1AA"
		if i%3 == 0 {
			postcode = ""
		}
		fmt.Fprintf(&b, `"{TX-%d}","185000","2023-04-28 00:00","%s","T","N","F","12","","HIGH STREET","","LONDON","CAMDEN","GREATER LONDON","A","A"`, i, postcode)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func newTestOrchestrator(t *testing.T, dl Downloader, store *testutil.MemStore) *Orchestrator {
	t.Helper()
	ex, err := export.ForName("csv")
	require.NoError(t, err)
	return NewOrchestrator(dl, store, staticPostcodes{}, ex, nil)
}

func TestOrchestrator_IngestThenShortCircuit(t *testing.T) {
	payload := testPayload(10)
	wantHash := hashing.Sum(payload)
	dl := &staticDownloader{payload: payload}
	store := testutil.NewMemStore()
	o := newTestOrchestrator(t, dl, store)
	ctx := context.Background()

	res, err := o.Run(ctx, LatestMonthly())
	require.NoError(t, err)
	require.Equal(t, Completed, res.Outcome)
	require.Equal(t, wantHash, res.Hash)
	require.Equal(t, 10, res.Rows)

	// One chunk plus the marker.
	require.Len(t, store.Objects, 2)
	require.NotNil(t, store.Get(MarkerName(wantHash)))
	require.NotNil(t, store.Get(wantHash+"-part-0.csv"))

	// Second run over identical bytes does no work and writes nothing.
	before := len(store.Uploads)
	res, err = o.Run(ctx, LatestMonthly())
	require.NoError(t, err)
	require.Equal(t, NothingToDo, res.Outcome)
	require.Equal(t, wantHash, res.Hash)
	require.Zero(t, res.Rows)
	require.Equal(t, before, len(store.Uploads), "short-circuit must not write chunks")
}

func TestOrchestrator_ChunkContent(t *testing.T) {
	dl := &staticDownloader{payload: testPayload(4)}
	store := testutil.NewMemStore()
	o := newTestOrchestrator(t, dl, store)

	res, err := o.Run(context.Background(), LatestMonthly())
	require.NoError(t, err)

	chunk := string(store.Get(res.Hash + "-part-0.csv"))
	lines := strings.Split(strings.TrimSuffix(chunk, "\n"), "\n")
	require.Len(t, lines, 5, "header plus four rows")
	require.True(t, strings.HasPrefix(lines[0], "TransactionId,"))
	// Rows keep input order.
	require.Contains(t, lines[1], "{TX-0}")
	require.Contains(t, lines[4], "{TX-3}")
	// Row 0 has no postcode, row 1 does.
	require.NotContains(t, lines[1], `""type"":""Point""`)
	require.Contains(t, lines[2], `""type"":""Point""`)
}

func TestOrchestrator_MarkerWrittenLast(t *testing.T) {
	dl := &staticDownloader{payload: testPayload(6)}
	store := testutil.NewMemStore()
	o := newTestOrchestrator(t, dl, store)

	res, err := o.Run(context.Background(), LatestMonthly())
	require.NoError(t, err)

	last := store.Uploads[len(store.Uploads)-1]
	require.Equal(t, MarkerName(res.Hash), last, "marker must be the final write")
}

func TestOrchestrator_DownloadFailureIsFatal(t *testing.T) {
	dl := &staticDownloader{err: errors.New("connection reset")}
	o := newTestOrchestrator(t, dl, testutil.NewMemStore())

	_, err := o.Run(context.Background(), LatestMonthly())
	require.Error(t, err)
}

func TestOrchestrator_MalformedRowAbortsBeforeWrites(t *testing.T) {
	bad := append(testPayload(3), []byte(`"{BAD}","NaN","2023-04-28 00:00","","T","N","F","","","","","","","","A","A"`+"\n")...)
	dl := &staticDownloader{payload: bad}
	store := testutil.NewMemStore()
	o := newTestOrchestrator(t, dl, store)

	_, err := o.Run(context.Background(), LatestMonthly())
	require.Error(t, err)
	require.Empty(t, store.Uploads, "no chunk or marker may be written for a failed attempt")
}

func TestOrchestrator_StorageFailurePropagates(t *testing.T) {
	dl := &staticDownloader{payload: testPayload(3)}
	store := testutil.NewMemStore()
	store.UploadErr = errors.New("503 service unavailable")
	o := newTestOrchestrator(t, dl, store)

	_, err := o.Run(context.Background(), LatestMonthly())
	require.Error(t, err)
}

func TestDataset_FileNames(t *testing.T) {
	require.Equal(t, "pp-monthly-update-new-version.csv", LatestMonthly().FileName())
	require.Equal(t, "pp-2019.csv", FullYear(2019).FileName())
}
