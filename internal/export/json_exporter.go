package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

// JSONExporter renders each chunk as a JSON array of row objects.
// Absent fields are omitted entirely rather than emitted as null, and
// field names match the CSV header.
type JSONExporter struct{}

type jsonRow struct {
	TransactionID  string   `json:"TransactionId"`
	Price          int64    `json:"Price"`
	DateOfTransfer string   `json:"DateOfTransfer"`
	PostCode       string   `json:"PostCode,omitempty"`
	PropertyType   string   `json:"PropertyType,omitempty"`
	Build          string   `json:"Build"`
	Contract       string   `json:"Contract"`
	Building       string   `json:"Building,omitempty"`
	Street         string   `json:"Street,omitempty"`
	Locality       string   `json:"Locality,omitempty"`
	Town           string   `json:"Town,omitempty"`
	District       string   `json:"District,omitempty"`
	County         string   `json:"County,omitempty"`
	Geo            *geoJSON `json:"Geo,omitempty"`
}

func (j *JSONExporter) Serialize(row pricepaid.Enriched) (string, error) {
	propertyType := ""
	if row.PropertyType != nil {
		propertyType = row.PropertyType.Description
	}
	out := jsonRow{
		TransactionID:  row.ID,
		Price:          row.Price,
		DateOfTransfer: row.DateOfTransfer.UTC().Format(time.RFC3339),
		PostCode:       row.Postcode,
		PropertyType:   propertyType,
		Build:          row.Build.Description,
		Contract:       row.Contract.Description,
		Building:       row.Building,
		Street:         row.Street,
		Locality:       row.Locality,
		Town:           row.Town,
		District:       row.District,
		County:         row.County,
		Geo:            newGeoJSON(row.Geo),
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (j *JSONExporter) Assemble(records []string) string {
	return "[" + strings.Join(records, ",") + "]"
}

func (j *JSONExporter) Extension() string { return "json" }

func init() {
	Register("json", &JSONExporter{})
}
