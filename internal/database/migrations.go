package database

import "rentcompare/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(&models.Listing{})
}
