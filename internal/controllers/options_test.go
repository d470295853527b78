package controllers_test

import (
	"net/http"
	"testing"

	"github.com/aura-finance/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestOptions() {
	id := uuid.New().String()

	tests := []struct {
		path  string
		allow string
	}{
		{"/webhooks/resend", "OPTIONS, POST"},
		{"/auth/dev-login", "OPTIONS, POST"},
		{"/auth/me", "OPTIONS, GET, PATCH"},
		{"/auth/logout", "OPTIONS, POST"},
		{"/vendor-cache", "OPTIONS, GET"},
		{"/feedback", "OPTIONS, POST"},
		{"/feedback/approve", "OPTIONS, POST"},
		{"/dashboard/summary", "OPTIONS, GET"},
		{"/dashboard/alerts", "OPTIONS, GET"},
		{"/categories", "OPTIONS, GET, POST"},
		{"/categories/" + id, "OPTIONS, GET, PATCH"},
		{"/budgets", "OPTIONS, GET, PUT"},
		{"/transactions", "OPTIONS, GET, POST"},
		{"/transactions/" + id, "OPTIONS, GET, PATCH"},
		{"/healthz", "OPTIONS, GET"},
		{"/version", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodOptions, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}
