package store_test

import (
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/store"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestVendorCacheLookupMiss() {
	user := suite.createTestUser("miss@example.com")
	s := store.NewVendorCacheStore(suite.db)

	_, ok, err := s.Lookup(suite.ctx, user.ID, "NTUC FAIRPRICE")
	suite.Require().Nil(err)
	suite.Assert().False(ok)

	_, ok, err = s.Lookup(suite.ctx, user.ID, "   ")
	suite.Require().Nil(err)
	suite.Assert().False(ok)
}

func (suite *TestSuiteStandard) TestVendorCacheUpsertCreates() {
	user := suite.createTestUser("create@example.com")
	groceries := suite.createTestCategory(user, "Groceries", 0)
	s := store.NewVendorCacheStore(suite.db)

	entry, err := s.Upsert(suite.ctx, user.ID, "ntuc fairprice", groceries.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("NTUC FAIRPRICE", entry.VendorName)
	suite.Assert().Equal(groceries.ID, entry.CategoryID)
	suite.Assert().Equal(1, entry.HitCount)

	found, ok, err := s.Lookup(suite.ctx, user.ID, " Ntuc  FairPrice ")
	suite.Require().Nil(err)
	suite.Require().True(ok)
	suite.Assert().Equal(entry.ID, found.ID)
}

func (suite *TestSuiteStandard) TestVendorCacheUpsertOverwrites() {
	user := suite.createTestUser("overwrite@example.com")
	shopping := suite.createTestCategory(user, "Shopping", 0)
	groceries := suite.createTestCategory(user, "Groceries", 1)
	s := store.NewVendorCacheStore(suite.db)

	first, err := s.Upsert(suite.ctx, user.ID, "NTUC FAIRPRICE", shopping.ID)
	suite.Require().Nil(err)
	suite.Require().Nil(s.RecordHit(suite.ctx, first.ID))
	suite.Require().Nil(s.RecordHit(suite.ctx, first.ID))

	second, err := s.Upsert(suite.ctx, user.ID, "ntuc fairprice", groceries.ID)
	suite.Require().Nil(err)

	suite.Assert().Equal(first.ID, second.ID, "Upsert must keep the existing entry")
	suite.Assert().Equal(groceries.ID, second.CategoryID)
	suite.Assert().Equal(1, second.HitCount, "Hit count must be reset when the mapping changes")

	var count int64
	suite.Require().Nil(suite.db.Model(&models.VendorCacheEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestVendorCacheIsPerUser() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	aliceCategory := suite.createTestCategory(alice, "Groceries", 0)
	bobCategory := suite.createTestCategory(bob, "Food & Dining", 0)
	s := store.NewVendorCacheStore(suite.db)

	_, err := s.Upsert(suite.ctx, alice.ID, "COLD STORAGE", aliceCategory.ID)
	suite.Require().Nil(err)
	_, err = s.Upsert(suite.ctx, bob.ID, "COLD STORAGE", bobCategory.ID)
	suite.Require().Nil(err)

	entries, err := s.List(suite.ctx, alice.ID)
	suite.Require().Nil(err)
	suite.Require().Len(entries, 1)
	suite.Assert().Equal(aliceCategory.ID, entries[0].CategoryID)
}

func (suite *TestSuiteStandard) TestVendorCacheRecordHit() {
	user := suite.createTestUser("hit@example.com")
	category := suite.createTestCategory(user, "Transport", 0)
	s := store.NewVendorCacheStore(suite.db)

	entry, err := s.Upsert(suite.ctx, user.ID, "GRAB", category.ID)
	suite.Require().Nil(err)

	// Lookups are free of side effects
	_, _, err = s.Lookup(suite.ctx, user.ID, "GRAB")
	suite.Require().Nil(err)

	suite.Require().Nil(s.RecordHit(suite.ctx, entry.ID))

	found, ok, err := s.Lookup(suite.ctx, user.ID, "GRAB")
	suite.Require().Nil(err)
	suite.Require().True(ok)
	suite.Assert().Equal(2, found.HitCount)

	err = s.RecordHit(suite.ctx, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestVendorCacheListOrder() {
	user := suite.createTestUser("list@example.com")
	category := suite.createTestCategory(user, "Food & Dining", 0)
	s := store.NewVendorCacheStore(suite.db)

	rare, err := s.Upsert(suite.ctx, user.ID, "YA KUN", category.ID)
	suite.Require().Nil(err)
	frequent, err := s.Upsert(suite.ctx, user.ID, "STARBUCKS", category.ID)
	suite.Require().Nil(err)
	suite.Require().Nil(s.RecordHit(suite.ctx, frequent.ID))

	entries, err := s.List(suite.ctx, user.ID)
	suite.Require().Nil(err)
	suite.Require().Len(entries, 2)
	suite.Assert().Equal(frequent.ID, entries[0].ID)
	suite.Assert().Equal(rare.ID, entries[1].ID)
}
