package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errBudgetYearMissing = errors.New("the year field must be set")

// BudgetEditable sets the budget of a category for one month.
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Year       int             `json:"year" example:"2026"`
	Month      int             `json:"month" example:"10" minimum:"1" maximum:"12"`
	Amount     decimal.Decimal `json:"amount" example:"400" minimum:"0"` // In percentage mode, the percentage of the monthly salary
}

// Budget is the spending ceiling for a category in a month.
type Budget struct {
	ID              uuid.UUID       `json:"id" example:"0d3b1e6a-6f3e-4a8e-b0a4-8f0c3f9b2c11"`
	CategoryID      uuid.UUID       `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Year            int             `json:"year" example:"2026"`
	Month           int             `json:"month" example:"10"`
	Amount          decimal.Decimal `json:"amount" example:"10"`           // The amount as set by the user
	EffectiveAmount decimal.Decimal `json:"effectiveAmount" example:"500"` // The amount in the currency, depends on the budget mode
}

func newBudget(user models.User, b models.Budget) Budget {
	return Budget{
		ID:              b.ID,
		CategoryID:      b.CategoryID,
		Year:            b.Year,
		Month:           b.Month,
		Amount:          b.Amount,
		EffectiveAmount: user.EffectiveBudget(b.Amount),
	}
}

type BudgetResponse struct {
	Data Budget `json:"data"` // Data for the budget
}

type BudgetListResponse struct {
	Data []Budget `json:"data"` // List of budgets
}

type BudgetQueryFilter struct {
	Year  int `form:"year"`  // Year of the budgets. Defaults to the current year
	Month int `form:"month"` // Only return budgets for this month
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBudgets)
	r.GET("", co.authenticate(), co.GetBudgets)
	r.PUT("", co.authenticate(), co.SetBudget)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/budgets [options]
func (co Controller) OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get budgets
// @Description	Returns the budgets of the logged in user for a year
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		400		{object}	httperror.Error
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			year	query		int	false	"Year. Defaults to the current year"
// @Param			month	query		int	false	"Only return budgets for this month"
// @Router			/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		abort(c, fmt.Errorf("%w: %w", httputil.ErrInvalidQuery, err))
		return
	}

	if filter.Year == 0 {
		filter.Year = co.now().In(time.UTC).Year()
	}

	if filter.Month < 0 || filter.Month > 12 {
		abort(c, models.ErrBudgetMonthInvalid)
		return
	}

	user := auth.User(c)
	budgets, err := co.Budgets.ListForYears(c.Request.Context(), user.ID, filter.Year)
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		if filter.Month != 0 && b.Month != filter.Month {
			continue
		}
		data = append(data, newBudget(user, b))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// @Summary		Set budget
// @Description	Sets the budget of a category for a month. An existing budget for the month is replaced.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httperror.Error
// @Failure		401		{object}	httperror.Error
// @Failure		404		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/budgets [put]
func (co Controller) SetBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		abort(c, err)
		return
	}

	if editable.CategoryID == uuid.Nil {
		abort(c, errCategoryIDMissing)
		return
	}

	if editable.Year == 0 {
		abort(c, errBudgetYearMissing)
		return
	}

	user := auth.User(c)
	_, err = co.Categories.FindForUser(c.Request.Context(), user.ID, editable.CategoryID)
	if err != nil {
		abort(c, err)
		return
	}

	budget, err := co.Budgets.Upsert(c.Request.Context(), models.Budget{
		UserID:     user.ID,
		CategoryID: editable.CategoryID,
		Year:       editable.Year,
		Month:      editable.Month,
		Amount:     editable.Amount,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(user, budget)})
}
