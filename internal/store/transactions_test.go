package store_test

import (
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionsSeenEmail() {
	user := suite.createTestUser("seen@example.com")
	category := suite.createTestCategory(user, "Groceries", 0)
	s := store.NewTransactionStore(suite.db)
	emailID := "b2c8f0b6-6c0e-4b55-9f0a-54a3f4f4d6a1"

	seen, err := s.SeenEmail(suite.ctx, emailID)
	suite.Require().Nil(err)
	suite.Assert().False(seen)

	suite.Require().Nil(s.Create(suite.ctx, &models.Transaction{
		UserID:        user.ID,
		CategoryID:    category.ID,
		Amount:        decimal.NewFromFloat(45.2),
		ResendEmailID: &emailID,
		Source:        models.SourceEmail,
	}))

	seen, err = s.SeenEmail(suite.ctx, emailID)
	suite.Require().Nil(err)
	suite.Assert().True(seen)

	err = s.Create(suite.ctx, &models.Transaction{UserID: user.ID, CategoryID: category.ID, ResendEmailID: &emailID})
	suite.Assert().ErrorIs(err, models.ErrDuplicateEmail)
}

func (suite *TestSuiteStandard) TestTransactionsFindForUser() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	category := suite.createTestCategory(owner, "Groceries", 0)
	s := store.NewTransactionStore(suite.db)

	transaction := suite.createTestTransaction(models.Transaction{UserID: owner.ID, CategoryID: category.ID, Vendor: "NTUC FAIRPRICE"})

	found, err := s.FindForUser(suite.ctx, owner.ID, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("NTUC FAIRPRICE", found.Vendor)

	_, err = s.FindForUser(suite.ctx, other.ID, transaction.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateCategory() {
	user := suite.createTestUser("update@example.com")
	shopping := suite.createTestCategory(user, "Shopping", 0)
	groceries := suite.createTestCategory(user, "Groceries", 1)
	s := store.NewTransactionStore(suite.db)

	transaction := suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: shopping.ID})

	suite.Require().Nil(s.UpdateCategory(suite.ctx, transaction.ID, groceries.ID))

	found, err := s.FindForUser(suite.ctx, user.ID, transaction.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(groceries.ID, found.CategoryID)

	err = s.UpdateCategory(suite.ctx, uuid.New(), groceries.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsListInPeriod() {
	user := suite.createTestUser("period@example.com")
	category := suite.createTestCategory(user, "Groceries", 0)
	s := store.NewTransactionStore(suite.db)

	dates := []time.Time{
		time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		suite.createTestTransaction(models.Transaction{UserID: user.ID, CategoryID: category.ID, Date: d, Amount: decimal.NewFromInt(1)})
	}

	transactions, err := s.ListInPeriod(suite.ctx, user.ID, dates[1], dates[3])
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 2)
	suite.Assert().Equal(dates[1], transactions[0].Date)
	suite.Assert().Equal(dates[2], transactions[1].Date)
}
