package model

// VersionedRecord tags persisted records so the codec can reject payloads
// written by an incompatible version.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunConfig is the persisted description of one solver run.
type RunConfig struct {
	VersionedRecord
	RunID          string `json:"run_id"`
	CitiesPath     string `json:"cities_path,omitempty"`
	CityCount      int    `json:"city_count"`
	PopulationSize int    `json:"population_size"`
	Generations    int    `json:"generations"`
	MutationRate   int    `json:"mutation_rate"`
	Selection      string `json:"selection"`
	Seed           int64  `json:"seed"`
}

// BestTourRecord is the persisted best tour of a finished run.
type BestTourRecord struct {
	VersionedRecord
	RunID    string   `json:"run_id"`
	Labels   []string `json:"labels"`
	Distance float64  `json:"distance"`
}
