package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"rentcompare/server/internal/models"
)

// ExportColumns is the derived-table output contract. Rent fields are raw
// numbers, never currency-formatted strings.
var ExportColumns = []string{
	"rank",
	"zone",
	"area",
	"region",
	"median_1bhk",
	"low",
	"high",
	"deposit_ratio",
	"rank_badge",
}

// WriteExport writes the enriched listings as a derived CSV table. Unranked
// rows export with empty rank and badge cells.
func WriteExport(w io.Writer, listings []models.EnrichedListing) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, l := range listings {
		rank := ""
		if l.GlobalRank > 0 {
			rank = strconv.Itoa(l.GlobalRank)
		}
		row := []string{
			rank,
			l.Zone,
			l.Area,
			l.Region,
			formatRent(l.RentMedian1BHK),
			formatRent(l.RentMin1BHK),
			formatRent(l.RentMax1BHK),
			l.DepositRatio,
			l.Badge,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatRent(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
