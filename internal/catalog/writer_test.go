package catalog

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentcompare/server/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func TestWriteExport(t *testing.T) {
	listings := []models.EnrichedListing{
		{
			Listing: models.Listing{
				Zone: "Navi", Area: "Kharghar", Region: "Navi Mumbai",
				RentMedian1BHK: intPtr(18000), RentMin1BHK: intPtr(14000), RentMax1BHK: intPtr(24000),
				DepositRatio: "2x",
			},
			Derived: models.Derived{GlobalRank: 1, Badge: "Budget"},
		},
		{
			Listing: models.Listing{Zone: "South", Area: "Worli", Region: "South Mumbai", DepositRatio: "n/a"},
			Derived: models.Derived{},
		},
	}

	var buf bytes.Buffer
	err := WriteExport(&buf, listings)
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, ExportColumns, records[0])

	// Raw numbers, no currency formatting.
	assert.Equal(t, []string{"1", "Navi", "Kharghar", "Navi Mumbai", "18000", "14000", "24000", "2x", "Budget"}, records[1])

	// Unranked row exports empty rank, rents and badge cells.
	assert.Equal(t, []string{"", "South", "Worli", "South Mumbai", "", "", "", "n/a", ""}, records[2])
}

// TestExportRoundTrip pins the round-trip property: re-parsing the export
// reproduces the same numeric rent and rank values with no drift.
func TestExportRoundTrip(t *testing.T) {
	listings := []models.EnrichedListing{
		{
			Listing: models.Listing{
				Zone: "Central", Area: "Dombivli", Region: "Central",
				RentMedian1BHK: intPtr(16000), RentMin1BHK: intPtr(12000), RentMax1BHK: intPtr(22000),
				DepositRatio: "2x-3x",
			},
			Derived: models.Derived{GlobalRank: 1, Badge: "Budget"},
		},
		{
			Listing: models.Listing{
				Zone: "South", Area: "Colaba", Region: "South Mumbai",
				RentMedian1BHK: intPtr(80000), RentMin1BHK: intPtr(65000), RentMax1BHK: intPtr(95000),
				DepositRatio: "6x",
			},
			Derived: models.Derived{GlobalRank: 2, Badge: "Budget"},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteExport(&buf, listings))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)

	header := map[string]int{}
	for i, name := range records[0] {
		header[name] = i
	}

	for i, l := range listings {
		row := records[i+1]

		rank, err := strconv.Atoi(row[header["rank"]])
		assert.NoError(t, err)
		assert.Equal(t, l.GlobalRank, rank)

		median, err := strconv.Atoi(row[header["median_1bhk"]])
		assert.NoError(t, err)
		assert.Equal(t, *l.RentMedian1BHK, median)

		low, err := strconv.Atoi(row[header["low"]])
		assert.NoError(t, err)
		assert.Equal(t, *l.RentMin1BHK, low)

		high, err := strconv.Atoi(row[header["high"]])
		assert.NoError(t, err)
		assert.Equal(t, *l.RentMax1BHK, high)

		assert.Equal(t, l.Badge, row[header["rank_badge"]])
		assert.Equal(t, l.DepositRatio, row[header["deposit_ratio"]])
	}
}
