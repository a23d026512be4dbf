package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

// csvHeader is the fixed column order of exported chunks.
const csvHeader = "TransactionId,Price,DateOfTransfer,PostCode,PropertyType,Build,Contract,Building,Street,Locality,Town,District,County,Geo"

// CSVExporter writes delimited text with every field double-quoted and
// embedded quotes doubled. The Geo column carries a GeoJSON point as an
// embedded JSON object inside its quoted field.
type CSVExporter struct{}

func (c *CSVExporter) Serialize(row pricepaid.Enriched) (string, error) {
	geo := ""
	if g := newGeoJSON(row.Geo); g != nil {
		encoded, err := g.encode()
		if err != nil {
			return "", err
		}
		geo = encoded
	}

	propertyType := ""
	if row.PropertyType != nil {
		propertyType = row.PropertyType.Description
	}

	fields := []string{
		row.ID,
		strconv.FormatInt(row.Price, 10),
		row.DateOfTransfer.UTC().Format(time.RFC3339),
		row.Postcode,
		propertyType,
		row.Build.Description,
		row.Contract.Description,
		row.Building,
		row.Street,
		row.Locality,
		row.Town,
		row.District,
		row.County,
		geo,
	}
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, ","), nil
}

func (c *CSVExporter) Assemble(records []string) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, rec := range records {
		b.WriteString(rec)
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *CSVExporter) Extension() string { return "csv" }

func init() {
	Register("csv", &CSVExporter{})
}
