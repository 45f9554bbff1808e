package domain_test

import (
	"testing"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatDocumentNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		year   int
		number int64
		want   string
	}{
		{"first number of the year", "OP", 2026, 1, "OP-2026-0001"},
		{"zero padded to four digits", "COT", 2026, 43, "COT-2026-0043"},
		{"three digits", "OG", 2025, 999, "OG-2025-0999"},
		{"last padded value", "OP", 2026, 9999, "OP-2026-9999"},
		{"width widens past 9999", "OP", 2026, 10000, "OP-2026-10000"},
		{"far past the padding", "OP", 2026, 123456, "OP-2026-123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FormatDocumentNumber(tt.prefix, tt.year, tt.number))
		})
	}
}
