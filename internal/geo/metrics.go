package geo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_geo_cache_hits_total",
		Help: "Postcode lookups served from the in-memory cache",
	})
	storeLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_geo_store_lookups_total",
		Help: "Postcode resolutions issued to the underlying store",
	})
	storeRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landslurp_geo_store_retries_total",
		Help: "Individual failed store calls, including retried ones",
	})
)
