package database

import (
	"bytes"
	"fmt"
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"rentcompare/server/internal/catalog"
	"rentcompare/server/internal/models"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// GetDB exposes the underlying gorm handle for transactional callers.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

// GetAllListings returns every row of the input table in (zone, area) order.
func (d *Database) GetAllListings() ([]models.Listing, error) {
	var listings []models.Listing
	if err := d.db.Order("zone, area").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return listings, nil
}

// CountListings returns the number of rows in the input table.
func (d *Database) CountListings() (int64, error) {
	var count int64
	if err := d.db.Model(&models.Listing{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Load implements the snapshot source contract over the input table. The
// version is a fingerprint of the rows in their canonical CSV form, so an
// unchanged table reloads to an identical version.
func (d *Database) Load() ([]models.Listing, string, error) {
	listings, err := d.GetAllListings()
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	for _, l := range listings {
		fmt.Fprintf(&buf, "%s,%s,%s,%s,%s,%s,%s\n",
			l.Zone, l.Area, l.Region,
			rentKey(l.RentMedian1BHK), rentKey(l.RentMin1BHK), rentKey(l.RentMax1BHK),
			l.DepositRatio)
	}

	return listings, catalog.Fingerprint(buf.Bytes()), nil
}

func rentKey(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// UpsertListings inserts or updates a batch of catalog rows keyed on
// (zone, area) inside the caller's transaction.
func UpsertListings(tx *gorm.DB, batch []*models.Listing) error {
	if len(batch) == 0 {
		return nil
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "zone"}, {Name: "area"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"region",
			"rent_median_1bhk",
			"rent_min_1bhk",
			"rent_max_1bhk",
			"deposit_ratio",
		}),
	}).Create(batch).Error
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
