package snapshot

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"rentcompare/server/internal/models"
)

func intPtr(v int) *int {
	return &v
}

// stubSource returns canned rows and versions, failing when told to.
type stubSource struct {
	rows    []models.Listing
	version string
	err     error
}

func (s *stubSource) Load() ([]models.Listing, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.rows, s.version, nil
}

func TestBuildEnrichesAndRanks(t *testing.T) {
	rows := []models.Listing{
		{Zone: "South", Area: "Colaba", Region: "South Mumbai", RentMedian1BHK: intPtr(80000), DepositRatio: "6x"},
		{Zone: "Navi", Area: "Kharghar", Region: "Navi Mumbai", RentMedian1BHK: intPtr(18000), DepositRatio: "2x"},
		{Zone: "Central", Area: "Dombivli", Region: "Central", RentMedian1BHK: intPtr(16000), DepositRatio: ""},
	}

	snap := Build(rows, "v1", 1)

	assert.Equal(t, "v1", snap.Version)
	assert.Equal(t, int64(1), snap.Seq)
	assert.Len(t, snap.Listings, 3)

	byArea := map[string]models.EnrichedListing{}
	for _, l := range snap.Listings {
		byArea[l.Area] = l
	}

	assert.InDelta(t, 6.0, byArea["Colaba"].DepositMonthsMin, 0.0001)
	assert.InDelta(t, 2.0, byArea["Kharghar"].DepositMonthsMin, 0.0001)
	// Empty deposit text degrades to the default.
	assert.InDelta(t, 4.0, byArea["Dombivli"].DepositMonthsMin, 0.0001)

	assert.Equal(t, 0, byArea["Colaba"].ProximityScore)
	assert.Equal(t, 6, byArea["Kharghar"].ProximityScore)

	assert.Equal(t, 1, byArea["Dombivli"].GlobalRank)
	assert.Equal(t, 2, byArea["Kharghar"].GlobalRank)
	assert.Equal(t, 3, byArea["Colaba"].GlobalRank)
	assert.Equal(t, "Budget", byArea["Colaba"].Badge)
}

func TestStoreStartsWithEmptySnapshot(t *testing.T) {
	store := NewStore(&stubSource{}, logrus.New())

	snap := store.Current()
	assert.NotNil(t, snap)
	assert.Empty(t, snap.Listings)
	assert.Equal(t, int64(0), snap.Seq)
}

func TestStoreReloadReplacesSnapshot(t *testing.T) {
	source := &stubSource{
		rows:    []models.Listing{{Zone: "Navi", Area: "Vashi", Region: "Navi Mumbai", RentMedian1BHK: intPtr(28000)}},
		version: "v1",
	}
	store := NewStore(source, logrus.New())

	first, err := store.Reload()
	assert.NoError(t, err)
	assert.Equal(t, "v1", first.Version)
	assert.Equal(t, int64(1), first.Seq)
	assert.Len(t, store.Current().Listings, 1)

	// A reader holding the old snapshot keeps it across the reload.
	source.rows = append(source.rows, models.Listing{Zone: "Navi", Area: "Nerul", Region: "Navi Mumbai", RentMedian1BHK: intPtr(24000)})
	source.version = "v2"

	second, err := store.Reload()
	assert.NoError(t, err)
	assert.Equal(t, "v2", second.Version)
	assert.Equal(t, int64(2), second.Seq)
	assert.Len(t, second.Listings, 2)
	assert.Len(t, first.Listings, 1, "old snapshot must stay frozen")
}

func TestStoreReloadFailureKeepsCurrent(t *testing.T) {
	source := &stubSource{
		rows:    []models.Listing{{Zone: "Navi", Area: "Vashi", Region: "Navi Mumbai", RentMedian1BHK: intPtr(28000)}},
		version: "v1",
	}
	store := NewStore(source, logrus.New())

	_, err := store.Reload()
	assert.NoError(t, err)

	source.err = errors.New("catalog unavailable")
	_, err = store.Reload()
	assert.Error(t, err)

	snap := store.Current()
	assert.Equal(t, "v1", snap.Version, "failed reload must not replace the snapshot")
	assert.Len(t, snap.Listings, 1)
}
