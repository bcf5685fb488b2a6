// internal/database/seed_test.go
package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/resalex/backend/internal/config"
	"github.com/resalex/backend/internal/models"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.ChatMessage{}))

	t.Cleanup(func() {
		db.Migrator().DropTable(&models.ChatMessage{}, &models.Order{}, &models.Product{}, &models.User{})
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func TestSeedRootUserIdempotent(t *testing.T) {
	db := newSeedTestDB(t)
	cfg := config.RootConfig{Email: "root@example.com", Password: "changeme"}

	require.NoError(t, SeedRootUser(db, cfg))
	require.NoError(t, SeedRootUser(db, cfg))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleRoot).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var root models.User
	require.NoError(t, db.Where("username = ?", "root").First(&root).Error)
	assert.NoError(t, root.CheckPassword("changeme"))
	assert.True(t, root.IsActive)
}

func TestSeedDemoDataIdempotent(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, SeedDemoData(db))

	var users, products, orders int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(6), users)
	assert.Equal(t, int64(8), products)
	assert.NotZero(t, orders)

	// A second run adds nothing.
	require.NoError(t, SeedDemoData(db))

	var users2, products2, orders2 int64
	require.NoError(t, db.Model(&models.User{}).Count(&users2).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products2).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders2).Error)
	assert.Equal(t, users, users2)
	assert.Equal(t, products, products2)
	assert.Equal(t, orders, orders2)
}
