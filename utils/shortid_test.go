package utils

import (
	"strings"
	"testing"

	"lms/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newShortidDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestNewHashShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		h := NewHash()
		assert.Len(t, h, HashLength)
		assert.True(t, strings.ContainsAny(h, "abcdef"),
			"hash %q must carry a letter so it cannot be read as a numeric id", h)
		seen[h] = true
	}
	assert.Greater(t, len(seen), 90, "candidates should rarely repeat")
}

func TestGenerateHashAvoidsExistingRows(t *testing.T) {
	db := newShortidDB(t)

	h, err := GenerateHash(db, "courses")
	require.NoError(t, err)
	assert.Len(t, h, HashLength)

	require.NoError(t, db.Table("courses").Create(map[string]interface{}{
		"name": "Taken", "hash": h,
	}).Error)

	h2, err := GenerateHash(db, "courses")
	require.NoError(t, err)
	assert.NotEqual(t, h, h2)
}

func TestGenerateHashUnknownTable(t *testing.T) {
	db := newShortidDB(t)

	_, err := GenerateHash(db, "no_such_table")
	assert.Error(t, err)
}
