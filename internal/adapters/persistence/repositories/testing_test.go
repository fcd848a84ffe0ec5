package repositories

import (
	"testing"

	"equiptrack/internal/adapters/persistence/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

// seedUser inserts a user with the given role name.
func seedUser(t *testing.T, db *gorm.DB, email, roleName string) *models.User {
	t.Helper()

	role := &models.Role{Name: roleName}
	require.NoError(t, db.Where("name = ?", roleName).FirstOrCreate(role).Error)

	user := &models.User{
		Email:    email,
		Password: "x",
		RoleID:   role.ID,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedItem inserts an item with the given stock quantity.
func seedItem(t *testing.T, db *gorm.DB, name string, quantity int) *models.Item {
	t.Helper()

	item := &models.Item{Name: name, Quantity: quantity}
	require.NoError(t, db.Create(item).Error)
	return item
}

// itemQuantity reads the current stock for an item.
func itemQuantity(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()

	var item models.Item
	require.NoError(t, db.First(&item, itemID).Error)
	return item.Quantity
}
