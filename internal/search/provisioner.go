package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	// IndexName is the target search index for enriched transactions.
	IndexName      = "properties"
	dataSourceName = "properties-datasource"
	indexerName    = "properties-indexer"

	// hourlySchedule is the indexer cadence (ISO-8601 duration).
	hourlySchedule = "PT1H"
)

// Provisioner idempotently ensures the search index, its blob data
// source, and its scheduled indexer exist. It only acts when the index
// is missing; schema drift on an existing index is not reconciled.
type Provisioner struct {
	Client *Client

	// StorageConnectionString and Container identify the blob container
	// the indexer pulls exported chunks from.
	StorageConnectionString string
	Container               string

	// ParsingMode must match the exporter writing the chunks:
	// "delimitedText" for csv, "jsonArray" for json.
	ParsingMode string

	Logger *zap.Logger
}

// Ensure creates the index, data source, and hourly indexer when the
// target index does not already exist.
func (p *Provisioner) Ensure(ctx context.Context) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	existing, err := p.Client.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	for _, name := range existing {
		if name == IndexName {
			logger.Info("search index already provisioned", zap.String("index", IndexName))
			return nil
		}
	}

	logger.Info("provisioning search index", zap.String("index", IndexName))
	if err := p.Client.CreateOrUpdateIndex(ctx, PropertiesIndex(IndexName)); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if err := p.Client.CreateOrUpdateDataSource(ctx, DataSource{
		Name: dataSourceName,
		Type: "azureblob",
		Credentials: DataSourceCredential{
			ConnectionString: p.StorageConnectionString,
		},
		Container: DataSourceContainer{Name: p.Container},
	}); err != nil {
		return fmt.Errorf("create data source: %w", err)
	}

	parsingMode := p.ParsingMode
	if parsingMode == "" {
		parsingMode = "delimitedText"
	}
	indexer := Indexer{
		Name:            indexerName,
		DataSourceName:  dataSourceName,
		TargetIndexName: IndexName,
		Schedule:        IndexerSchedule{Interval: hourlySchedule},
		Parameters: IndexerParameters{
			Configuration: IndexerConfiguration{
				ParsingMode:              parsingMode,
				FirstLineContainsHeaders: parsingMode == "delimitedText",
			},
		},
	}
	if err := p.Client.CreateOrUpdateIndexer(ctx, indexer); err != nil {
		return fmt.Errorf("create indexer: %w", err)
	}

	logger.Info("search index provisioned",
		zap.String("index", IndexName),
		zap.String("indexer_schedule", hourlySchedule))
	return nil
}
