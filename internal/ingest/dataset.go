package ingest

import "fmt"

// DefaultSourceURL is where the registry publishes price-paid files.
const DefaultSourceURL = "http://prod.publicdata.landregistry.gov.uk.s3-website-eu-west-1.amazonaws.com"

// Dataset selects which published price-paid file to ingest: the
// rolling monthly update or a complete year.
type Dataset struct {
	year int
}

// LatestMonthly selects the current monthly update file.
func LatestMonthly() Dataset { return Dataset{} }

// FullYear selects the complete dataset for one year.
func FullYear(year int) Dataset { return Dataset{year: year} }

// FileName is the published object name for the selector.
func (d Dataset) FileName() string {
	if d.year == 0 {
		return "pp-monthly-update-new-version.csv"
	}
	return fmt.Sprintf("pp-%d.csv", d.year)
}

func (d Dataset) String() string {
	if d.year == 0 {
		return "latest-monthly"
	}
	return fmt.Sprintf("year-%d", d.year)
}
