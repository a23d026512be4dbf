package export

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

func makeRows(n int) []pricepaid.Enriched {
	rows := make([]pricepaid.Enriched, n)
	for i := range rows {
		rows[i] = pricepaid.Enriched{
			Transaction: pricepaid.Transaction{
				ID:             fmt.Sprintf("{TX-%d}", i),
				Price:          int64(100000 + i),
				DateOfTransfer: time.Date(2023, 4, 28, 0, 0, 0, 0, time.UTC),
				Town:           "LONDON",
				Build:          pricepaid.OldBuild,
				Contract:       pricepaid.Freehold,
			},
		}
	}
	return rows
}

// countingExporter records serialization order.
type countingExporter struct {
	serialized []string
}

func (c *countingExporter) Serialize(row pricepaid.Enriched) (string, error) {
	c.serialized = append(c.serialized, row.ID)
	return row.ID, nil
}
func (c *countingExporter) Assemble(records []string) string { return strings.Join(records, "|") }
func (c *countingExporter) Extension() string                { return "rec" }

func TestChunks_BoundaryAt25000(t *testing.T) {
	ex := &countingExporter{}
	chunks, err := Chunks(ex, "abc", makeRows(MaxChunkRows+1))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	first := strings.Split(chunks[0].Payload, "|")
	second := strings.Split(chunks[1].Payload, "|")
	if len(first) != MaxChunkRows {
		t.Errorf("first chunk has %d rows, want %d", len(first), MaxChunkRows)
	}
	if len(second) != 1 {
		t.Errorf("second chunk has %d rows, want 1", len(second))
	}
	// Chunk i holds rows [i*25000, (i+1)*25000) in input order.
	if first[0] != "{TX-0}" || first[len(first)-1] != fmt.Sprintf("{TX-%d}", MaxChunkRows-1) {
		t.Errorf("first chunk boundaries wrong: %s .. %s", first[0], first[len(first)-1])
	}
	if second[0] != fmt.Sprintf("{TX-%d}", MaxChunkRows) {
		t.Errorf("second chunk starts at %s", second[0])
	}
}

func TestChunks_Naming(t *testing.T) {
	ex := &countingExporter{}
	chunks, err := Chunks(ex, "deadbeef", makeRows(MaxChunkRows+1))
	if err != nil {
		t.Fatal(err)
	}
	if chunks[0].Name != "deadbeef-part-0.rec" || chunks[1].Name != "deadbeef-part-1.rec" {
		t.Errorf("chunk names = %q, %q", chunks[0].Name, chunks[1].Name)
	}
}

func TestChunks_Empty(t *testing.T) {
	chunks, err := Chunks(&countingExporter{}, "abc", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("got %d chunks for no rows, want 0", len(chunks))
	}
}

func TestForName(t *testing.T) {
	for _, name := range []string{"csv", "json"} {
		if _, err := ForName(name); err != nil {
			t.Errorf("builtin exporter %q missing: %v", name, err)
		}
	}
	if _, err := ForName("parquet"); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

func enrichedFixture() pricepaid.Enriched {
	pt := pricepaid.Terraced
	return pricepaid.Enriched{
		Transaction: pricepaid.Transaction{
			ID:             "{A1B2C3}",
			Price:          185000,
			DateOfTransfer: time.Date(2023, 4, 28, 0, 0, 0, 0, time.UTC),
			Postcode:       "SW1A 1AA",
			PropertyType:   &pt,
			Build:          pricepaid.OldBuild,
			Contract:       pricepaid.Freehold,
			Building:       "12",
			Street:         `THE "OLD" LANE`,
			Town:           "LONDON",
			District:       "CAMDEN",
			County:         "GREATER LONDON",
		},
		Geo: &pricepaid.Point{Lat: 51.501, Long: -0.141},
	}
}

func TestCSVExporter_QuotingRoundTrip(t *testing.T) {
	ex, _ := ForName("csv")
	rec, err := ex.Serialize(enrichedFixture())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(rec, `"THE ""OLD"" LANE"`) {
		t.Errorf("embedded quotes not doubled: %s", rec)
	}

	// A naive CSV reader must recover the original field values.
	fields := parseNaiveCSV(t, rec)
	if len(fields) != 14 {
		t.Fatalf("got %d fields, want 14", len(fields))
	}
	if fields[8] != `THE "OLD" LANE` {
		t.Errorf("street round-trip = %q", fields[8])
	}
	if fields[0] != "{A1B2C3}" || fields[1] != "185000" {
		t.Errorf("id/price = %q/%q", fields[0], fields[1])
	}
	if fields[13] != `{"type":"Point","coordinates":[-0.141,51.501]}` {
		t.Errorf("geo field = %q", fields[13])
	}
}

// parseNaiveCSV splits one all-quoted CSV record the simple way:
// strip outer quotes, undouble inner ones.
func parseNaiveCSV(t *testing.T, rec string) []string {
	t.Helper()
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(rec); i++ {
		ch := rec[i]
		switch {
		case ch == '"' && inQuotes && i+1 < len(rec) && rec[i+1] == '"':
			cur.WriteByte('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

func TestCSVExporter_HeaderAndAssemble(t *testing.T) {
	ex, _ := ForName("csv")
	rec, _ := ex.Serialize(enrichedFixture())
	payload := ex.Assemble([]string{rec})

	lines := strings.Split(strings.TrimSuffix(payload, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	wantHeader := "TransactionId,Price,DateOfTransfer,PostCode,PropertyType,Build,Contract,Building,Street,Locality,Town,District,County,Geo"
	if lines[0] != wantHeader {
		t.Errorf("header = %q", lines[0])
	}
	if cols := strings.Count(lines[0], ",") + 1; cols != 14 {
		t.Errorf("header has %d columns, want 14", cols)
	}
}

func TestCSVExporter_AbsentFields(t *testing.T) {
	ex, _ := ForName("csv")
	row := enrichedFixture()
	row.PropertyType = nil
	row.Geo = nil
	row.Postcode = ""

	rec, err := ex.Serialize(row)
	if err != nil {
		t.Fatal(err)
	}
	fields := parseNaiveCSV(t, rec)
	if fields[3] != "" || fields[4] != "" || fields[13] != "" {
		t.Errorf("absent fields not empty: postcode=%q type=%q geo=%q", fields[3], fields[4], fields[13])
	}
}

func TestJSONExporter_Row(t *testing.T) {
	ex, _ := ForName("json")
	rec, err := ex.Serialize(enrichedFixture())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`"TransactionId":"{A1B2C3}"`,
		`"Price":185000`,
		`"PropertyType":"Terraced"`,
		`"Geo":{"type":"Point","coordinates":[-0.141,51.501]}`,
	} {
		if !strings.Contains(rec, want) {
			t.Errorf("row missing %s: %s", want, rec)
		}
	}
}

func TestJSONExporter_OmitsAbsentFields(t *testing.T) {
	ex, _ := ForName("json")
	row := enrichedFixture()
	row.PropertyType = nil
	row.Geo = nil
	row.Postcode = ""
	row.Locality = ""

	rec, err := ex.Serialize(row)
	if err != nil {
		t.Fatal(err)
	}
	for _, absent := range []string{"PropertyType", "Geo", "PostCode", "Locality", "null"} {
		if strings.Contains(rec, absent) {
			t.Errorf("absent field %s still present: %s", absent, rec)
		}
	}
}

func TestJSONExporter_AssembleIsArray(t *testing.T) {
	ex, _ := ForName("json")
	recs := make([]string, 3)
	for i := range recs {
		recs[i] = strconv.Itoa(i)
	}
	payload := ex.Assemble(recs)
	if payload != "[0,1,2]" {
		t.Errorf("assembled payload = %q", payload)
	}
}
