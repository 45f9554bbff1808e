package models

// SequenceCounter is the persisted shape of a sequence counter row.
// One row per document type; reset and increment happen in a single
// conditional upsert, never through read-modify-write in application code.
type SequenceCounter struct {
	CounterType string `json:"counterType"`
	Prefix      string `json:"prefix"`
	Year        int    `json:"year"`
	LastNumber  int64  `json:"lastNumber"`
}
