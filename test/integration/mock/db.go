// Package mock provides in-process test doubles for integration tests.
package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pocketwatch/backend/internal/integration/persistence/remotestore/model"
)

// Db wraps an in-memory sqlite connection standing in for the remote
// postgres store.
type Db struct {
	DbConn *gorm.DB
}

// NewDb opens a fresh in-memory database with the remote store schema.
func NewDb() *Db {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(&model.TransactionModel{}, &model.SettingsModel{}); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{DbConn: dbConn}
}

// ClearDB removes all rows between scenarios.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Exec("DELETE FROM transactions").Error; err != nil {
		return err
	}
	return d.DbConn.Exec("DELETE FROM settings").Error
}
