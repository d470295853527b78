package models_test

import (
	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDatabaseNotFound() {
	err := suite.db.First(&models.VendorCacheEntry{}, uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "vendor cache entry")

	err = suite.db.First(&models.Category{}, uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "category matching your query")
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := suite.db.Create(&models.User{Email: "closed@example.com"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	err = suite.db.First(&models.User{}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestDatabaseUniqueConstraints() {
	user := suite.createTestUser("unique@example.com")
	category := suite.createTestCategory(user, "Groceries")

	tests := []struct {
		name  string
		model any
		err   error
	}{
		{"Duplicate user email", &models.User{Email: "UNIQUE@example.com", InboundAddress: "other@in.example.com"}, models.ErrUserEmailNotUnique},
		{"Duplicate inbound address", &models.User{Email: "new@example.com", InboundAddress: "unique@example.com"}, models.ErrInboundAddressNotUnique},
		{"Duplicate category name", &models.Category{UserID: user.ID, Name: "Groceries"}, models.ErrCategoryNameNotUnique},
		{"Duplicate budget", &models.Budget{UserID: user.ID, CategoryID: category.ID, Year: 2026, Month: 10}, models.ErrBudgetMonthNotUnique},
		{"Duplicate vendor", &models.VendorCacheEntry{UserID: user.ID, CategoryID: category.ID, VendorName: " ntuc  fairprice"}, models.ErrVendorCacheNotUnique},
	}

	suite.Require().Nil(suite.db.Create(&models.Budget{UserID: user.ID, CategoryID: category.ID, Year: 2026, Month: 10}).Error)
	suite.Require().Nil(suite.db.Create(&models.VendorCacheEntry{UserID: user.ID, CategoryID: category.ID, VendorName: "NTUC FAIRPRICE", HitCount: 1}).Error)

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.db.Create(tt.model).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestDatabaseForeignKey() {
	user := suite.createTestUser("fk@example.com")

	err := suite.db.Create(&models.Budget{UserID: user.ID, CategoryID: uuid.New(), Year: 2026, Month: 1, Amount: decimal.NewFromInt(10)}).Error
	suite.Assert().ErrorIs(err, models.ErrReferenceNotFound)
}

func (suite *TestSuiteStandard) TestDatabaseDuplicateEmail() {
	user := suite.createTestUser("dedup@example.com")
	category := suite.createTestCategory(user, "Groceries")
	emailID := "4ef9a417-02e9-4d39-ad75-9611e0fcc33c"

	suite.Require().Nil(suite.db.Create(&models.Transaction{UserID: user.ID, CategoryID: category.ID, ResendEmailID: &emailID, Source: models.SourceEmail}).Error)

	err := suite.db.Create(&models.Transaction{UserID: user.ID, CategoryID: category.ID, ResendEmailID: &emailID, Source: models.SourceEmail}).Error
	suite.Assert().ErrorIs(err, models.ErrDuplicateEmail)
}
