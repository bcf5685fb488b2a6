// internal/services/services_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/resalex/backend/internal/config"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/utils"
)

var testDBCounter int

// newTestDB opens an isolated in-memory database with the full schema. Each
// call gets its own named database so tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.ChatMessage{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func testPagination() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 12, Sort: "created_at", Order: "desc"}
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Payment: config.PaymentConfig{
			Currency:       "usd",
			TimeoutSeconds: 5,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, seller *models.User, status models.ProductStatus, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:      fmt.Sprintf("Test Product %s", status),
		Brand:     "TestBrand",
		Category:  models.CategorySneakers,
		Condition: models.ConditionNew,
		Size:      "US 9",
		Price:     price,
		SellerID:  seller.ID,
		Status:    status,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// fakePaymentProvider records calls and returns scripted intents.
type fakePaymentProvider struct {
	createErr    error
	intentStatus string
	created      []int64
	lastMetadata map[string]string
}

func (f *fakePaymentProvider) CreatePaymentIntent(_ context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, amountMinorUnits)
	f.lastMetadata = metadata
	return &PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakePaymentProvider) GetPaymentIntent(_ context.Context, id string) (*PaymentIntent, error) {
	status := f.intentStatus
	if status == "" {
		status = "succeeded"
	}
	return &PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       status,
	}, nil
}

// fakeImageStore keeps stored blobs in memory and tracks deletions.
type fakeImageStore struct {
	stored  map[string][]byte
	deleted []string
	nextKey int
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{stored: make(map[string][]byte)}
}

func (f *fakeImageStore) Store(data []byte, suggestedName, contentType string) (*UploadResult, error) {
	f.nextKey++
	key := fmt.Sprintf("uploads/test_%d_%s", f.nextKey, suggestedName)
	f.stored[key] = data
	return &UploadResult{
		URL:      "https://cdn.test/" + key,
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (f *fakeImageStore) Delete(key string) error {
	delete(f.stored, key)
	f.deleted = append(f.deleted, key)
	return nil
}
