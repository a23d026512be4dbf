package search

// Management API payloads, trimmed to the fields the provisioner sets.

type Index struct {
	Name       string      `json:"name"`
	Fields     []Field     `json:"fields"`
	Suggesters []Suggester `json:"suggesters,omitempty"`
}

type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Key         bool   `json:"key,omitempty"`
	Searchable  bool   `json:"searchable"`
	Filterable  bool   `json:"filterable"`
	Sortable    bool   `json:"sortable"`
	Facetable   bool   `json:"facetable"`
	Retrievable bool   `json:"retrievable"`
}

type Suggester struct {
	Name         string   `json:"name"`
	SearchMode   string   `json:"searchMode"`
	SourceFields []string `json:"sourceFields"`
}

type DataSource struct {
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	Credentials DataSourceCredential `json:"credentials"`
	Container   DataSourceContainer  `json:"container"`
}

type DataSourceCredential struct {
	ConnectionString string `json:"connectionString"`
}

type DataSourceContainer struct {
	Name string `json:"name"`
}

type Indexer struct {
	Name            string            `json:"name"`
	DataSourceName  string            `json:"dataSourceName"`
	TargetIndexName string            `json:"targetIndexName"`
	Schedule        IndexerSchedule   `json:"schedule"`
	Parameters      IndexerParameters `json:"parameters"`
}

type IndexerSchedule struct {
	Interval string `json:"interval"`
}

type IndexerParameters struct {
	Configuration IndexerConfiguration `json:"configuration"`
}

type IndexerConfiguration struct {
	ParsingMode              string `json:"parsingMode"`
	FirstLineContainsHeaders bool   `json:"firstLineContainsHeaders,omitempty"`
}

// suggestFields are the free-text address fields the autocomplete
// suggester draws terms from.
var suggestFields = []string{"Building", "Street", "Locality", "Town", "District", "County"}

// PropertiesIndex is the schema for enriched price-paid documents. The
// transaction id is the document key; categorical fields are filterable
// and facetable for the search layer's aggregations.
func PropertiesIndex(name string) Index {
	return Index{
		Name: name,
		Fields: []Field{
			{Name: "TransactionId", Type: "Edm.String", Key: true, Retrievable: true, Filterable: true},
			{Name: "Price", Type: "Edm.Int64", Retrievable: true, Filterable: true, Sortable: true, Facetable: true},
			{Name: "DateOfTransfer", Type: "Edm.DateTimeOffset", Retrievable: true, Filterable: true, Sortable: true},
			{Name: "PostCode", Type: "Edm.String", Retrievable: true, Searchable: true, Filterable: true, Sortable: true},
			{Name: "PropertyType", Type: "Edm.String", Retrievable: true, Filterable: true, Facetable: true},
			{Name: "Build", Type: "Edm.String", Retrievable: true, Filterable: true, Facetable: true},
			{Name: "Contract", Type: "Edm.String", Retrievable: true, Filterable: true, Facetable: true},
			{Name: "Building", Type: "Edm.String", Retrievable: true, Searchable: true},
			{Name: "Street", Type: "Edm.String", Retrievable: true, Searchable: true, Sortable: true},
			{Name: "Locality", Type: "Edm.String", Retrievable: true, Searchable: true, Filterable: true},
			{Name: "Town", Type: "Edm.String", Retrievable: true, Searchable: true, Filterable: true, Facetable: true},
			{Name: "District", Type: "Edm.String", Retrievable: true, Searchable: true, Filterable: true, Facetable: true},
			{Name: "County", Type: "Edm.String", Retrievable: true, Searchable: true, Filterable: true, Facetable: true},
			{Name: "Geo", Type: "Edm.GeographyPoint", Retrievable: true, Filterable: true, Sortable: true},
		},
		Suggesters: []Suggester{
			{Name: "suggester", SearchMode: "analyzingInfixMatching", SourceFields: suggestFields},
		},
	}
}
