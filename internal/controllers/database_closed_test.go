package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aura-finance/backend/internal/httperror"
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/test"
)

// TestDatabaseClosed verifies that a broken database results in an
// internal error for every endpoint that needs it.
func (suite *TestSuiteStandard) TestDatabaseClosed() {
	user := suite.createTestUser("closed@in.aura.example")
	headers := suite.login(user)

	suite.CloseDB()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/auth/me", http.StatusInternalServerError},
		{http.MethodGet, "/categories", http.StatusInternalServerError},
		{http.MethodGet, "/transactions", http.StatusInternalServerError},
		{http.MethodGet, "/healthz", http.StatusInternalServerError},
		{http.MethodPost, "/auth/dev-login", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := test.Request(suite.controller, t, tt.method, "http://example.com"+tt.path, "", headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			e := test.DecodeError(t, &r)
			suite.Assert().Equal(httperror.KindInternal, e.Kind)
			suite.Assert().True(strings.HasPrefix(e.Message, models.ErrGeneral.Error()), e.Message)
		})
	}
}
