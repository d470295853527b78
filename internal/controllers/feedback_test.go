package controllers_test

import (
	"net/http"
	"testing"

	"github.com/aura-finance/backend/internal/agent"
	"github.com/aura-finance/backend/internal/controllers"
	"github.com/aura-finance/backend/internal/httperror"
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/pipeline"
	"github.com/aura-finance/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestProposeCategory() {
	user := suite.createTestUser("propose@in.aura.example")
	shopping := suite.category(user, "Shopping")
	groceries := suite.category(user, "Groceries")
	transaction := suite.createTestTransaction(user, models.Transaction{CategoryID: shopping.ID, Amount: decimal.NewFromInt(45), Vendor: "NTUC FAIRPRICE"})

	suite.agent.proposal = agent.Proposal{
		CategoryID:   groceries.ID,
		CategoryName: groceries.Name,
		Reasoning:    "NTUC FairPrice is a supermarket",
	}

	r := suite.request(http.MethodPost, "http://example.com/feedback", pipeline.ProposeRequest{
		TransactionID: transaction.ID,
		FeedbackText:  "This was groceries",
	}, suite.login(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var proposal controllers.ProposalResponse
	test.DecodeResponse(suite.T(), &r, &proposal)
	suite.Assert().Equal(groceries.ID, proposal.Data.CategoryID)
	suite.Assert().Equal("Groceries", proposal.Data.CategoryName)
	suite.Assert().Equal("NTUC FairPrice is a supermarket", proposal.Data.Reasoning)

	// Proposing does not change anything
	var unchanged models.Transaction
	suite.Require().Nil(suite.db.Where("id = ?", transaction.ID).First(&unchanged).Error)
	suite.Assert().Equal(shopping.ID, unchanged.CategoryID)
}

func (suite *TestSuiteStandard) TestProposeCategoryFails() {
	user := suite.createTestUser("fails@in.aura.example")
	other := suite.createTestUser("other@in.aura.example")
	transaction := suite.createTestTransaction(user, models.Transaction{CategoryID: suite.category(user, "Shopping").ID, Amount: decimal.NewFromInt(1), Vendor: "SHOP"})
	othersTransaction := suite.createTestTransaction(other, models.Transaction{CategoryID: suite.category(other, "Shopping").ID, Amount: decimal.NewFromInt(1), Vendor: "SHOP"})

	tests := []struct {
		name     string
		body     any
		agentErr error
		status   int
		kind     httperror.Kind
	}{
		{"No transaction", pipeline.ProposeRequest{FeedbackText: "wrong"}, nil, http.StatusBadRequest, httperror.KindValidation},
		{"No feedback", pipeline.ProposeRequest{TransactionID: transaction.ID, FeedbackText: " "}, nil, http.StatusBadRequest, httperror.KindValidation},
		{"Unknown transaction", pipeline.ProposeRequest{TransactionID: uuid.New(), FeedbackText: "wrong"}, nil, http.StatusNotFound, httperror.KindNotFound},
		{"Transaction of another user", pipeline.ProposeRequest{TransactionID: othersTransaction.ID, FeedbackText: "wrong"}, nil, http.StatusNotFound, httperror.KindNotFound},
		{"Agent unavailable", pipeline.ProposeRequest{TransactionID: transaction.ID, FeedbackText: "wrong"}, agent.ErrUnavailable, http.StatusServiceUnavailable, httperror.KindUpstream},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.agent.err = tt.agentErr

			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/feedback", tt.body, suite.login(user))
			test.AssertHTTPStatus(t, &r, tt.status)
			suite.Assert().Equal(tt.kind, test.DecodeError(t, &r).Kind)
		})
	}
}

func (suite *TestSuiteStandard) TestApproveCategory() {
	user := suite.createTestUser("approve@in.aura.example")
	shopping := suite.category(user, "Shopping")
	groceries := suite.category(user, "Groceries")
	transaction := suite.createTestTransaction(user, models.Transaction{CategoryID: shopping.ID, Amount: decimal.NewFromInt(45), Vendor: "NTUC FAIRPRICE"})

	r := suite.request(http.MethodPost, "http://example.com/feedback/approve", pipeline.ApproveRequest{
		TransactionID: transaction.ID,
		NewCategoryID: groceries.ID,
		Vendor:        "ntuc fairprice",
		Reasoning:     "Supermarket",
	}, suite.login(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var approval controllers.ApprovalResponse
	test.DecodeResponse(suite.T(), &r, &approval)
	suite.Assert().True(approval.Data.TransactionUpdated)
	suite.Assert().True(approval.Data.VendorCacheUpdated)
	suite.Assert().True(approval.Data.MemoryStored)
	suite.Assert().Empty(approval.Data.Errors)

	r = suite.request(http.MethodGet, "http://example.com/transactions/"+transaction.ID.String(), "", suite.login(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(groceries.ID, updated.Data.CategoryID)

	r = suite.request(http.MethodGet, "http://example.com/vendor-cache", "", suite.login(user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var entries controllers.VendorCacheListResponse
	test.DecodeResponse(suite.T(), &r, &entries)
	suite.Require().Len(entries.Data, 1)
	suite.Assert().Equal("NTUC FAIRPRICE", entries.Data[0].VendorName)
	suite.Assert().Equal(groceries.ID, entries.Data[0].CategoryID)

	var corrections []models.Correction
	suite.Require().Nil(suite.db.Where("user_id = ?", user.ID).Find(&corrections).Error)
	suite.Require().Len(corrections, 1)
	suite.Assert().Equal("Shopping", corrections[0].OldCategory)
	suite.Assert().Equal("Groceries", corrections[0].NewCategory)
}

func (suite *TestSuiteStandard) TestApproveCategoryFails() {
	user := suite.createTestUser("approvefails@in.aura.example")
	other := suite.createTestUser("other@in.aura.example")
	transaction := suite.createTestTransaction(user, models.Transaction{CategoryID: suite.category(user, "Shopping").ID, Amount: decimal.NewFromInt(1), Vendor: "SHOP"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"No transaction", pipeline.ApproveRequest{NewCategoryID: suite.category(user, "Health").ID}, http.StatusBadRequest},
		{"No category", pipeline.ApproveRequest{TransactionID: transaction.ID}, http.StatusBadRequest},
		{"Category of another user", pipeline.ApproveRequest{TransactionID: transaction.ID, NewCategoryID: suite.category(other, "Health").ID}, http.StatusNotFound},
		{"Broken JSON", `{"transactionId": 1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/feedback/approve", tt.body, suite.login(user))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
