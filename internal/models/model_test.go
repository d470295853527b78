package models_test

import (
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestModelUUIDAndTimestamps() {
	user := suite.createTestUser("uuid@example.com")
	suite.Assert().NotEqual(uuid.Nil, user.ID)

	var found models.User
	suite.Require().Nil(suite.db.First(&found, user.ID).Error)
	suite.Assert().Equal(time.UTC, found.CreatedAt.Location())
	suite.Assert().Equal(time.UTC, found.UpdatedAt.Location())
}

func (suite *TestSuiteStandard) TestUserAddressesLowerCased() {
	user := models.User{Email: " Jane@Example.com ", InboundAddress: "Jane.Doe@In.Aura.Example"}
	suite.Require().Nil(suite.db.Create(&user).Error)

	suite.Assert().Equal("jane@example.com", user.Email)
	suite.Assert().Equal("jane.doe@in.aura.example", user.InboundAddress)
	suite.Assert().Equal(models.BudgetModeDirect, user.BudgetMode)
}

func (suite *TestSuiteStandard) TestUserBudgetModeInvalid() {
	err := suite.db.Create(&models.User{Email: "mode@example.com", InboundAddress: "mode@example.com", BudgetMode: "relative"}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetModeInvalid)
}

func (suite *TestSuiteStandard) TestUserEffectiveBudget() {
	salary := decimal.NewFromInt(5000)

	tests := []struct {
		name   string
		user   models.User
		amount decimal.Decimal
		want   decimal.Decimal
	}{
		{"Direct", models.User{BudgetMode: models.BudgetModeDirect, MonthlySalary: &salary}, decimal.NewFromInt(300), decimal.NewFromInt(300)},
		{"Percentage", models.User{BudgetMode: models.BudgetModePercentage, MonthlySalary: &salary}, decimal.NewFromInt(12), decimal.NewFromInt(600)},
		{"Percentage without salary", models.User{BudgetMode: models.BudgetModePercentage}, decimal.NewFromInt(12), decimal.Zero},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Assert().True(tt.want.Equal(tt.user.EffectiveBudget(tt.amount)), "expected %s, got %s", tt.want, tt.user.EffectiveBudget(tt.amount))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetValidation() {
	user := suite.createTestUser("budget@example.com")
	category := suite.createTestCategory(user, "Transport")

	err := suite.db.Create(&models.Budget{UserID: user.ID, CategoryID: category.ID, Year: 2026, Month: 13}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetMonthInvalid)

	err = suite.db.Create(&models.Budget{UserID: user.ID, CategoryID: category.ID, Year: 2026, Month: 2, Amount: decimal.NewFromInt(-1)}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNegative)

	err = suite.db.Create(&models.Budget{UserID: user.ID, CategoryID: category.ID, Year: 2026, Month: 2, Amount: decimal.Zero}).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestCategoryNameEmpty() {
	user := suite.createTestUser("category@example.com")

	err := suite.db.Create(&models.Category{UserID: user.ID, Name: "   "}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameEmpty)
}

func (suite *TestSuiteStandard) TestDefaultCategories() {
	user := suite.createTestUser("defaults@example.com")

	categories := models.DefaultCategories(user.ID)
	suite.Require().Nil(suite.db.Create(&categories).Error)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Category{}).Where(&models.Category{UserID: user.ID}).Count(&count).Error)
	suite.Assert().Equal(int64(len(categories)), count)

	for i, c := range categories {
		suite.Assert().True(c.IsDefault)
		suite.Assert().Equal(i, c.SortOrder)
	}
}

func (suite *TestSuiteStandard) TestTransactionDefaults() {
	user := suite.createTestUser("transaction@example.com")
	category := suite.createTestCategory(user, "Shopping")
	empty := " "

	transaction := models.Transaction{
		UserID:        user.ID,
		CategoryID:    category.ID,
		Vendor:        "  Uniqlo ",
		Amount:        decimal.NewFromFloat(39.9),
		ResendEmailID: &empty,
	}
	suite.Require().Nil(suite.db.Create(&transaction).Error)

	suite.Assert().Equal("Uniqlo", transaction.Vendor)
	suite.Assert().Equal(models.SourceManual, transaction.Source)
	suite.Assert().Equal(models.ConfidenceHigh, transaction.Confidence)
	suite.Assert().Nil(transaction.ResendEmailID)
	suite.Assert().False(transaction.Date.IsZero())
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	user := suite.createTestUser("validation@example.com")
	category := suite.createTestCategory(user, "Shopping")

	err := suite.db.Create(&models.Transaction{UserID: user.ID, CategoryID: category.ID, Confidence: "certain"}).Error
	suite.Assert().ErrorIs(err, models.ErrConfidenceInvalid)

	err = suite.db.Create(&models.Transaction{UserID: user.ID, CategoryID: category.ID, Source: "import"}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionSource)

	err = suite.db.Create(&models.Transaction{CategoryID: category.ID}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionNoUser)
}

func (suite *TestSuiteStandard) TestVendorCacheEntryNormalized() {
	user := suite.createTestUser("cache@example.com")
	category := suite.createTestCategory(user, "Groceries")

	entry := models.VendorCacheEntry{UserID: user.ID, CategoryID: category.ID, VendorName: "  ntuc   fairprice ", HitCount: 1}
	suite.Require().Nil(suite.db.Create(&entry).Error)
	suite.Assert().Equal("NTUC FAIRPRICE", entry.VendorName)

	err := suite.db.Create(&models.VendorCacheEntry{UserID: user.ID, CategoryID: category.ID, VendorName: "   "}).Error
	suite.Assert().ErrorIs(err, models.ErrVendorNameEmpty)
}
