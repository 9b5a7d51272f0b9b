// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"catalog-service/pkg/config"
	"catalog-service/pkg/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives for the duration of the test.
// The pool holds a single connection so every statement sees the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DBConfig{
		Driver:       "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NewLogger returns a logger that writes through t.Log
func NewLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
}
