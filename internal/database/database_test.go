package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentcompare/server/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(":memory:")
	assert.NoError(t, err)
	assert.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsertListings(t *testing.T) {
	db := newTestDatabase(t)

	batch := []*models.Listing{
		{Zone: "Navi", Area: "Vashi", Region: "Navi Mumbai", RentMedian1BHK: intPtr(28000), DepositRatio: "3x"},
		{Zone: "Navi", Area: "Nerul", Region: "Navi Mumbai", RentMedian1BHK: intPtr(24000), DepositRatio: "3x"},
	}
	assert.NoError(t, UpsertListings(db.GetDB(), batch))

	count, err := db.CountListings()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Upserting the same (zone, area) updates in place instead of
	// duplicating the row.
	update := []*models.Listing{
		{Zone: "Navi", Area: "Vashi", Region: "Navi Mumbai", RentMedian1BHK: intPtr(30000), DepositRatio: "4x"},
	}
	assert.NoError(t, UpsertListings(db.GetDB(), update))

	count, err = db.CountListings()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	listings, err := db.GetAllListings()
	assert.NoError(t, err)
	for _, l := range listings {
		if l.Area == "Vashi" {
			assert.Equal(t, 30000, *l.RentMedian1BHK)
			assert.Equal(t, "4x", l.DepositRatio)
		}
	}
}

func TestUpsertEmptyBatch(t *testing.T) {
	db := newTestDatabase(t)
	assert.NoError(t, UpsertListings(db.GetDB(), nil))
}

func TestLoadVersionIsStable(t *testing.T) {
	db := newTestDatabase(t)

	batch := []*models.Listing{
		{Zone: "South", Area: "Colaba", Region: "South Mumbai", RentMedian1BHK: intPtr(80000), DepositRatio: "6x"},
		{Zone: "Central", Area: "Dombivli", Region: "Central", DepositRatio: ""},
	}
	assert.NoError(t, UpsertListings(db.GetDB(), batch))

	rows1, v1, err := db.Load()
	assert.NoError(t, err)
	rows2, v2, err := db.Load()
	assert.NoError(t, err)

	assert.Equal(t, rows1, rows2)
	assert.Equal(t, v1, v2, "an unchanged table must fingerprint identically")

	// Changing a row changes the version.
	assert.NoError(t, UpsertListings(db.GetDB(), []*models.Listing{
		{Zone: "South", Area: "Colaba", Region: "South Mumbai", RentMedian1BHK: intPtr(82000), DepositRatio: "6x"},
	}))
	_, v3, err := db.Load()
	assert.NoError(t, err)
	assert.NotEqual(t, v1, v3)
}
