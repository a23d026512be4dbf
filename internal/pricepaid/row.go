// Package pricepaid models UK Land Registry price-paid transactions:
// the raw source schema, the small closed enumerations it carries, and
// the geo point attached to a row during enrichment.
package pricepaid

import "time"

// PropertyType is the dwelling classification carried by the source
// data as a single-character code. Codes outside the known set (the
// registry publishes "O" for other) have no mapping and are treated as
// absent.
type PropertyType struct {
	Code        string
	Description string
}

var (
	Detached     = PropertyType{"D", "Detached"}
	SemiDetached = PropertyType{"S", "Semi-Detached"}
	Terraced     = PropertyType{"T", "Terraced"}
	Flats        = PropertyType{"F", "Flats"}
)

// PropertyTypeFromCode maps a raw source code to its PropertyType.
// Unknown codes return ok=false.
func PropertyTypeFromCode(code string) (PropertyType, bool) {
	switch code {
	case "D":
		return Detached, true
	case "S":
		return SemiDetached, true
	case "T":
		return Terraced, true
	case "F":
		return Flats, true
	}
	return PropertyType{}, false
}

// BuildType distinguishes new builds from existing stock.
type BuildType struct {
	Code        string
	Description string
}

var (
	NewBuild = BuildType{"Y", "New Build"}
	OldBuild = BuildType{"N", "Old Build"}
)

// BuildTypeFromCode maps "Y" to NewBuild and anything else to OldBuild.
func BuildTypeFromCode(code string) BuildType {
	if code == "Y" {
		return NewBuild
	}
	return OldBuild
}

// ContractType is the tenure under which the property transferred.
type ContractType struct {
	Code        string
	Description string
}

var (
	Leasehold = ContractType{"L", "Leasehold"}
	Freehold  = ContractType{"F", "Freehold"}
)

// ContractTypeFromCode maps "L" to Leasehold and anything else to Freehold.
func ContractTypeFromCode(code string) ContractType {
	if code == "L" {
		return Leasehold
	}
	return Freehold
}

// Point is a resolved geographic coordinate. A zero lat or long is the
// upstream store's "no data" sentinel rather than a real position, so
// (0,0) never appears in a valid Point.
type Point struct {
	Lat  float64
	Long float64
}

// Valid reports whether p carries usable coordinates: both values
// strictly inside (-90, 90) and neither exactly zero.
func (p Point) Valid() bool {
	if p.Lat == 0 || p.Long == 0 {
		return false
	}
	if p.Lat <= -90 || p.Lat >= 90 {
		return false
	}
	if p.Long <= -90 || p.Long >= 90 {
		return false
	}
	return true
}

// Transaction is one price-paid sale as published by the registry.
// Optional string fields are empty when absent; PropertyType is nil
// when the source code has no mapping.
type Transaction struct {
	ID             string
	Price          int64
	DateOfTransfer time.Time
	Postcode       string
	PropertyType   *PropertyType
	Build          BuildType
	Contract       ContractType
	Building       string
	Street         string
	Locality       string
	Town           string
	District       string
	County         string
}

// Enriched pairs a source transaction with its resolved geo point.
// Geo is nil when the row had no postcode or resolution failed.
type Enriched struct {
	Transaction
	Geo *Point
}
