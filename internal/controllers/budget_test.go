package controllers_test

import (
	"net/http"
	"testing"

	"github.com/aura-finance/backend/internal/controllers"
	"github.com/aura-finance/backend/internal/httperror"
	"github.com/aura-finance/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSetBudget() {
	user := suite.createTestUser("budget@in.aura.example")
	groceries := suite.category(user, "Groceries")
	headers := suite.login(user)

	r := suite.request(http.MethodPut, "http://example.com/budgets", controllers.BudgetEditable{
		CategoryID: groceries.ID,
		Year:       2026,
		Month:      10,
		Amount:     decimal.NewFromInt(400),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var first controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &first)
	suite.Assert().True(decimal.NewFromInt(400).Equal(first.Data.Amount))
	suite.Assert().True(decimal.NewFromInt(400).Equal(first.Data.EffectiveAmount))

	// Setting the budget again replaces the amount
	r = suite.request(http.MethodPut, "http://example.com/budgets", controllers.BudgetEditable{
		CategoryID: groceries.ID,
		Year:       2026,
		Month:      10,
		Amount:     decimal.NewFromInt(350),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var second controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &second)
	suite.Assert().Equal(first.Data.ID, second.Data.ID)
	suite.Assert().True(decimal.NewFromInt(350).Equal(second.Data.Amount))

	// The year defaults to the current one
	r = suite.request(http.MethodGet, "http://example.com/budgets", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var budgets controllers.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &budgets)
	suite.Require().Len(budgets.Data, 1)
	suite.Assert().Equal(second.Data.ID, budgets.Data[0].ID)

	r = suite.request(http.MethodGet, "http://example.com/budgets?year=2026&month=9", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &budgets)
	suite.Assert().Len(budgets.Data, 0)
}

func (suite *TestSuiteStandard) TestBudgetPercentageMode() {
	user := suite.createTestUser("percent@in.aura.example")
	groceries := suite.category(user, "Groceries")
	headers := suite.login(user)

	r := suite.request(http.MethodPatch, "http://example.com/auth/me", map[string]any{"budgetMode": "percentage", "monthlySalary": 5000}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPut, "http://example.com/budgets", controllers.BudgetEditable{
		CategoryID: groceries.ID,
		Year:       2026,
		Month:      10,
		Amount:     decimal.NewFromInt(10),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var budget controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &budget)
	suite.Assert().True(decimal.NewFromInt(10).Equal(budget.Data.Amount))
	suite.Assert().True(decimal.NewFromInt(500).Equal(budget.Data.EffectiveAmount), "Effective amount is %s", budget.Data.EffectiveAmount)
}

func (suite *TestSuiteStandard) TestSetBudgetFails() {
	jane := suite.createTestUser("jane@in.aura.example")
	john := suite.createTestUser("john@in.aura.example")
	groceries := suite.category(jane, "Groceries")
	johnsGroceries := suite.category(john, "Groceries")

	tests := []struct {
		name   string
		body   controllers.BudgetEditable
		status int
		kind   httperror.Kind
	}{
		{"No category", controllers.BudgetEditable{Year: 2026, Month: 10, Amount: decimal.NewFromInt(1)}, http.StatusBadRequest, httperror.KindValidation},
		{"No year", controllers.BudgetEditable{CategoryID: groceries.ID, Month: 10, Amount: decimal.NewFromInt(1)}, http.StatusBadRequest, httperror.KindValidation},
		{"Month 13", controllers.BudgetEditable{CategoryID: groceries.ID, Year: 2026, Month: 13, Amount: decimal.NewFromInt(1)}, http.StatusBadRequest, httperror.KindValidation},
		{"Negative amount", controllers.BudgetEditable{CategoryID: groceries.ID, Year: 2026, Month: 10, Amount: decimal.NewFromInt(-1)}, http.StatusBadRequest, httperror.KindValidation},
		{"Unknown category", controllers.BudgetEditable{CategoryID: uuid.New(), Year: 2026, Month: 10, Amount: decimal.NewFromInt(1)}, http.StatusNotFound, httperror.KindNotFound},
		{"Category of another user", controllers.BudgetEditable{CategoryID: johnsGroceries.ID, Year: 2026, Month: 10, Amount: decimal.NewFromInt(1)}, http.StatusNotFound, httperror.KindNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPut, "http://example.com/budgets", tt.body, suite.login(jane))
			test.AssertHTTPStatus(t, &r, tt.status)
			suite.Assert().Equal(tt.kind, test.DecodeError(t, &r).Kind)
		})
	}
}

func (suite *TestSuiteStandard) TestGetBudgetsInvalidQuery() {
	user := suite.createTestUser("query@in.aura.example")

	for _, query := range []string{"?month=13", "?year=twenty"} {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, "http://example.com/budgets"+query, "", suite.login(user))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
