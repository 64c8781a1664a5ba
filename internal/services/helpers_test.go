package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"myground/internal/database"
	"myground/internal/models"
	"myground/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	db := newTestDB(t)
	return repository.NewRepository(db), db
}

func listingForm() models.PropertyForm {
	return models.PropertyForm{
		TransactionType:  models.TransactionSell,
		PropertyCategory: models.CategoryResidential,
		PropertySubType:  "Apartment",
		Title:            "Three bedroom apartment in Indiranagar",
		Description:      strings.Repeat("Corner unit with lots of light and a covered parking slot. ", 2),
		Location: models.Location{
			Country:     "India",
			State:       "Karnataka",
			City:        "Bengaluru",
			Area:        "Indiranagar",
			Pincode:     "560038",
			Coordinates: models.NewGeoPoint(77.64, 12.97),
		},
		Residential: &models.ResidentialDetails{BHK: 3, BuiltUpArea: decimal.NewFromInt(1650)},
		Pricing:     models.Pricing{ExpectedPrice: decimal.NewFromInt(18_500_000), Currency: "INR"},
		Media:       models.Media{Images: []string{"front.jpg", "hall.jpg", "kitchen.jpg"}},
		Legal: models.Legal{
			OwnershipType:    "FREEHOLD",
			TitleClear:       true,
			EncumbranceFree:  true,
			LitigationStatus: models.LitigationNone,
			ReraNumber:       "PRM/KA/RERA/1251/446/PR/171014/000123",
		},
	}
}
