package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

// TableStore looks postcodes up in an Azure Storage table keyed by
// partition=area, row=sector, with numeric Lat/Long properties.
type TableStore struct {
	client *aztables.Client
}

// NewTableStore connects to the postcode table using the storage
// account connection string.
func NewTableStore(connectionString, table string) (*TableStore, error) {
	svc, err := aztables.NewServiceClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("postcode table client: %w", err)
	}
	return &TableStore{client: svc.NewClient(table)}, nil
}

func (s *TableStore) Find(ctx context.Context, area, sector string) (*pricepaid.Point, error) {
	resp, err := s.client.GetEntity(ctx, area, sector, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("postcode table get %s/%s: %w", area, sector, err)
	}

	var entity aztables.EDMEntity
	if err := json.Unmarshal(resp.Value, &entity); err != nil {
		return nil, fmt.Errorf("postcode table entity decode: %w", err)
	}

	lat, latOK := numericProperty(entity.Properties, "Lat")
	long, longOK := numericProperty(entity.Properties, "Long")
	if !latOK || !longOK {
		return nil, nil
	}
	return &pricepaid.Point{Lat: lat, Long: long}, nil
}

func numericProperty(props map[string]any, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
