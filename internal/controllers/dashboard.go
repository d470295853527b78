package controllers

import (
	"fmt"
	"net/http"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/dashboard"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type SummaryResponse struct {
	Data dashboard.Summary `json:"data"` // Spending in the period
}

type AlertListResponse struct {
	Data []dashboard.Alert `json:"data"` // Categories that used most or all of their budget
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", co.OptionsDashboardSummary)
	r.GET("/summary", co.authenticate(), co.GetDashboardSummary)

	r.OPTIONS("/alerts", co.OptionsDashboardAlerts)
	r.GET("/alerts", co.authenticate(), co.GetDashboardAlerts)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/dashboard/summary [options]
func (co Controller) OptionsDashboardSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/dashboard/alerts [options]
func (co Controller) OptionsDashboardAlerts(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get spending summary
// @Description	Returns the spending and budgets of the logged in user in a week, month or year.
// @Description	Selectors that are not set default to the current period.
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	httperror.Error
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			period	query		string	false	"Period kind, one of week, month, year. Defaults to month"
// @Param			year	query		int		false	"Year. For weeks, the ISO year"
// @Param			month	query		int		false	"Month, 1 to 12"
// @Param			week	query		int		false	"ISO week"
// @Router			/dashboard/summary [get]
func (co Controller) GetDashboardSummary(c *gin.Context) {
	var q dashboard.Query
	err := c.ShouldBindQuery(&q)
	if err != nil {
		abort(c, fmt.Errorf("%w: %w", httputil.ErrInvalidQuery, err))
		return
	}

	summary, err := co.Dashboard.Summary(c.Request.Context(), auth.User(c).ID, q, co.now())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: summary})
}

// @Summary		Get budget alerts
// @Description	Returns the categories that used at least 80% of their budget in the current month
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	AlertListResponse
// @Failure		401	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/dashboard/alerts [get]
func (co Controller) GetDashboardAlerts(c *gin.Context) {
	alerts, err := co.Dashboard.Alerts(c.Request.Context(), auth.User(c).ID, co.now())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{Data: alerts})
}
