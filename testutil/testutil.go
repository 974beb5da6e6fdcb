// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
)

// NewSQLStores opens a private in-memory sqlite database and returns stores backed by it.
func NewSQLStores(t *testing.T) *storage.Stores {
	t.Helper()
	if logging.Log == nil {
		logging.Log = logrus.New()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", gonanoid.Must(12))
	db, err := storage.OpenSQL(storage.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return storage.NewGormStores(db)
}
