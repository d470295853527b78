package memory_test

import (
	"context"
	"errors"
	"time"

	"github.com/aura-finance/backend/internal/memory"
	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) correction(user models.User, vendor string, createdAt time.Time) models.Correction {
	return models.Correction{
		DefaultModel: models.DefaultModel{
			Timestamps: models.Timestamps{CreatedAt: createdAt},
		},
		UserID:        user.ID,
		TransactionID: uuid.New(),
		Vendor:        vendor,
		OldCategory:   "Shopping",
		NewCategory:   "Groceries",
	}
}

func (suite *TestSuiteStandard) TestRememberNormalizesVendor() {
	user := suite.createTestUser("normalize@example.com")
	s := memory.NewDatabaseStore(suite.db)

	suite.Require().Nil(s.Remember(suite.ctx, suite.correction(user, " ntuc   fairprice ", time.Now())))

	corrections, err := s.Recall(suite.ctx, user.ID, "NTUC FAIRPRICE", 10)
	suite.Require().Nil(err)
	suite.Require().Len(corrections, 1)
	suite.Assert().Equal("NTUC FAIRPRICE", corrections[0].Vendor)
}

func (suite *TestSuiteStandard) TestRecallOrder() {
	user := suite.createTestUser("order@example.com")
	other := suite.createTestUser("other@example.com")
	s := memory.NewDatabaseStore(suite.db)

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().Nil(s.Remember(suite.ctx, suite.correction(user, "GRAB", base)))
	suite.Require().Nil(s.Remember(suite.ctx, suite.correction(user, "NTUC FAIRPRICE", base.Add(time.Hour))))
	suite.Require().Nil(s.Remember(suite.ctx, suite.correction(user, "SHOPEE", base.Add(2*time.Hour))))
	suite.Require().Nil(s.Remember(suite.ctx, suite.correction(other, "NTUC FAIRPRICE", base.Add(3*time.Hour))))

	corrections, err := s.Recall(suite.ctx, user.ID, "ntuc fairprice", 10)
	suite.Require().Nil(err)
	suite.Require().Len(corrections, 3, "Corrections of other users must not be recalled")

	suite.Assert().Equal("NTUC FAIRPRICE", corrections[0].Vendor, "Corrections for the vendor come first")
	suite.Assert().Equal("SHOPEE", corrections[1].Vendor)
	suite.Assert().Equal("GRAB", corrections[2].Vendor)
}

func (suite *TestSuiteStandard) TestRecallLimit() {
	user := suite.createTestUser("limit@example.com")
	s := memory.NewDatabaseStore(suite.db)

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		suite.Require().Nil(s.Remember(suite.ctx, suite.correction(user, "GRAB", base.Add(time.Duration(i)*time.Minute))))
	}

	corrections, err := s.Recall(suite.ctx, user.ID, "GRAB", 2)
	suite.Require().Nil(err)
	suite.Assert().Len(corrections, 2)

	corrections, err = s.Recall(suite.ctx, user.ID, "GRAB", 0)
	suite.Require().Nil(err)
	suite.Assert().Len(corrections, 0)
}

type fakePublisher struct {
	err       error
	published []models.Correction
}

func (f *fakePublisher) PublishCorrection(_ context.Context, correction models.Correction) error {
	f.published = append(f.published, correction)
	return f.err
}

func (suite *TestSuiteStandard) TestPublishingStore() {
	user := suite.createTestUser("publish@example.com")
	p := &fakePublisher{}
	s := memory.NewPublishingStore(memory.NewDatabaseStore(suite.db), p)

	suite.Require().Nil(s.Remember(suite.ctx, suite.correction(user, "GRAB", time.Now())))
	suite.Require().Len(p.published, 1)
	suite.Assert().Equal("GRAB", p.published[0].Vendor)

	corrections, err := s.Recall(suite.ctx, user.ID, "GRAB", 10)
	suite.Require().Nil(err)
	suite.Assert().Len(corrections, 1)
}

func (suite *TestSuiteStandard) TestPublishingStorePublishFailure() {
	user := suite.createTestUser("publishfail@example.com")
	p := &fakePublisher{err: errors.New("channel closed")}
	s := memory.NewPublishingStore(memory.NewDatabaseStore(suite.db), p)

	suite.Assert().Nil(s.Remember(suite.ctx, suite.correction(user, "GRAB", time.Now())), "A failed publish must not fail the correction")

	corrections, err := s.Recall(suite.ctx, user.ID, "GRAB", 10)
	suite.Require().Nil(err)
	suite.Assert().Len(corrections, 1)
}

func (suite *TestSuiteStandard) TestPublishingStoreRememberFailure() {
	p := &fakePublisher{}
	s := memory.NewPublishingStore(memory.NewDatabaseStore(suite.db), p)

	sqlDB, _ := suite.db.DB()
	sqlDB.Close()

	suite.Assert().NotNil(s.Remember(suite.ctx, models.Correction{UserID: uuid.New(), Vendor: "GRAB"}))
	suite.Assert().Len(p.published, 0, "Nothing is published when the correction was not stored")
}
