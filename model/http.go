package model

// PieceMetadata is the header of a parsed tune, as shown by `info`,
// returned by the HTTP service and stored in the catalog.
type PieceMetadata struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Composer      string   `json:"composer"`
	Key           string   `json:"key"`
	Meter         string   `json:"meter"`
	DefaultLength string   `json:"default_length"`
	Tempo         int      `json:"tempo"`
	Voices        []string `json:"voices"`
}

type ParseResponse struct {
	Piece           PieceMetadata `json:"piece"`
	TicksPerQuarter int           `json:"ticks_per_quarter"`
	BeatsPerMinute  float64       `json:"beats_per_minute"`
	Events          []Event       `json:"events"`
}

type ErrorResponse struct {
	Error  string `json:"detail"`
	Kind   string `json:"kind,omitempty"`
	Offset int    `json:"offset"`
}
