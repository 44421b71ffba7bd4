package cfg

type Cfg struct {
	// Coda document configuration
	CodaAPIToken string
	CodaDocID    string
	CodaBaseURL  string

	// Application configuration
	SchemaFile         string
	Port               string
	BaseUrl            string
	WorkerCount        int
	RefreshInterval    int
	GeocodeConcurrency int
	GoogleMapsAPIKey   string
	APIAccessKey       string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
