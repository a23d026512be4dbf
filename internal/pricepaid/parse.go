package pricepaid

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Source column positions. The registry's price-paid CSV has no header
// row; rows are 16 positional columns, the last two (ppd category and
// record status) are carried by the file but not modelled here.
const (
	colID = iota
	colPrice
	colDate
	colPostcode
	colPropertyType
	colBuild
	colContract
	colPAON
	colSAON
	colStreet
	colLocality
	colTown
	colDistrict
	colCounty

	minColumns = colCounty + 1
)

var dateLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

// ParseAll decodes an entire raw price-paid payload into transactions.
// The whole dataset is held in memory for one enrichment pass; a row
// with an unparseable price or date fails the parse outright rather
// than being skipped.
func ParseAll(payload []byte) ([]Transaction, error) {
	r := csv.NewReader(bytes.NewReader(payload))
	r.FieldsPerRecord = -1

	var rows []Transaction
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pricepaid: line %d: %w", line, err)
		}
		tx, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("pricepaid: line %d: %w", line, err)
		}
		rows = append(rows, tx)
	}
	return rows, nil
}

func parseRecord(rec []string) (Transaction, error) {
	if len(rec) < minColumns {
		return Transaction{}, fmt.Errorf("short record: %d columns", len(rec))
	}

	price, err := strconv.ParseInt(rec[colPrice], 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("price %q: %w", rec[colPrice], err)
	}

	date, err := parseDate(rec[colDate])
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		ID:             rec[colID],
		Price:          price,
		DateOfTransfer: date,
		Postcode:       strings.TrimSpace(rec[colPostcode]),
		Build:          BuildTypeFromCode(rec[colBuild]),
		Contract:       ContractTypeFromCode(rec[colContract]),
		Building:       composeBuilding(rec[colPAON], rec[colSAON]),
		Street:         rec[colStreet],
		Locality:       rec[colLocality],
		Town:           rec[colTown],
		District:       rec[colDistrict],
		County:         rec[colCounty],
	}
	if pt, ok := PropertyTypeFromCode(rec[colPropertyType]); ok {
		tx.PropertyType = &pt
	}
	return tx, nil
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: unrecognized format", v)
}

// composeBuilding joins the primary and secondary addressable object
// names, either of which may be empty.
func composeBuilding(paon, saon string) string {
	return strings.TrimSpace(strings.TrimSpace(paon) + " " + strings.TrimSpace(saon))
}
