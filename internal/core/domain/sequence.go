package domain

import "fmt"

// SequenceCounter is the per-type monotonic source for document numbers.
// When the effective year differs from the stored year the counter resets to 1
// before issuing; within a year LastNumber only ever grows.
type SequenceCounter struct {
	Type       DocumentType `json:"type"`
	Prefix     string       `json:"prefix"`
	Year       int          `json:"year"`
	LastNumber int64        `json:"lastNumber"`
}

// FormatDocumentNumber renders a counter value as a document number, e.g.
// "OP-2026-0043". Numbers are zero-padded to 4 digits; past 9999 the width
// simply widens (10000 renders as "10000"), keeping numbers unique and ordered.
func FormatDocumentNumber(prefix string, year int, number int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, number)
}
