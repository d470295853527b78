// Package dashboard aggregates persisted transactions and budgets into
// spending summaries and budget alerts.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/store"
	"github.com/aura-finance/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Query selects the period of a summary. Zero selectors default to the
// period containing the current time.
type Query struct {
	Period types.PeriodKind `form:"period" example:"month"`
	Year   int              `form:"year" example:"2026"`
	Month  int              `form:"month" example:"10"`
	Week   int              `form:"week" example:"42"`
}

// CategorySummary is the spending of a single category.
type CategorySummary struct {
	CategoryID  uuid.UUID       `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Name        string          `json:"name" example:"Groceries"`
	Icon        string          `json:"icon" example:"shopping-cart"`
	Color       string          `json:"color" example:"#22c55e"`
	Spent       decimal.Decimal `json:"spent" example:"45.2"`
	Budgeted    decimal.Decimal `json:"budgeted" example:"400"`
	PercentUsed decimal.Decimal `json:"percentUsed" example:"11.3"`
}

// Summary is the spending of a user in a period.
type Summary struct {
	Period        types.Period      `json:"period"`
	TotalSpent    decimal.Decimal   `json:"totalSpent" example:"1204.5"`
	TotalBudgeted decimal.Decimal   `json:"totalBudgeted" example:"2500"`
	PercentUsed   decimal.Decimal   `json:"percentUsed" example:"48.18"`
	Categories    []CategorySummary `json:"categories"`
}

// swagger:enum AlertLevel
type AlertLevel string

const (
	AlertWarning    AlertLevel = "warning"
	AlertOverBudget AlertLevel = "over_budget"
)

// Alert flags a category that used most or all of its budget.
type Alert struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	CategoryName string          `json:"categoryName" example:"Groceries"`
	Level        AlertLevel      `json:"level" example:"warning"`
	Spent        decimal.Decimal `json:"spent" example:"340"`
	Budgeted     decimal.Decimal `json:"budgeted" example:"400"`
	PercentUsed  decimal.Decimal `json:"percentUsed" example:"85"`
	Message      string          `json:"message" example:"You have used 85% of your Groceries budget"`
}

var (
	hundred         = decimal.NewFromInt(100)
	warningRatio    = decimal.NewFromFloat(0.8)
	overBudgetRatio = decimal.NewFromInt(1)
)

// Aggregator computes summaries. It does not call any external service.
type Aggregator struct {
	users        store.Users
	categories   store.Categories
	budgets      store.Budgets
	transactions store.Transactions
}

func NewAggregator(users store.Users, categories store.Categories, budgets store.Budgets, transactions store.Transactions) Aggregator {
	return Aggregator{
		users:        users,
		categories:   categories,
		budgets:      budgets,
		transactions: transactions,
	}
}

// Summary returns the spending of the user in the period selected by the query.
func (a Aggregator) Summary(ctx context.Context, userID uuid.UUID, q Query, now time.Time) (Summary, error) {
	period, err := types.ResolvePeriod(q.Period, q.Year, q.Month, q.Week, now)
	if err != nil {
		return Summary{}, err
	}

	d, err := a.load(ctx, userID, period)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Period:        period,
		TotalSpent:    decimal.Zero,
		TotalBudgeted: decimal.Zero,
		Categories:    []CategorySummary{},
	}

	for _, c := range d.categories {
		spent := d.spent[c.ID]
		budgeted := d.budgeted[c.ID]

		s.TotalSpent = s.TotalSpent.Add(spent)
		s.TotalBudgeted = s.TotalBudgeted.Add(budgeted)

		if spent.IsZero() && budgeted.IsZero() {
			continue
		}

		s.Categories = append(s.Categories, CategorySummary{
			CategoryID:  c.ID,
			Name:        c.Name,
			Icon:        c.Icon,
			Color:       c.Color,
			Spent:       spent,
			Budgeted:    budgeted,
			PercentUsed: percent(spent, budgeted),
		})
	}

	s.PercentUsed = percent(s.TotalSpent, s.TotalBudgeted)
	return s, nil
}

// Alerts returns the categories that used at least 80% of their budget in
// the month containing now. Categories without a budget never alert.
func (a Aggregator) Alerts(ctx context.Context, userID uuid.UUID, now time.Time) ([]Alert, error) {
	period, err := types.ResolvePeriod(types.PeriodMonth, 0, 0, 0, now)
	if err != nil {
		return nil, err
	}

	d, err := a.load(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	alerts := []Alert{}
	for _, c := range d.categories {
		budgeted := d.budgeted[c.ID]
		if !budgeted.IsPositive() {
			continue
		}

		spent := d.spent[c.ID]
		ratio := spent.Div(budgeted)

		var level AlertLevel
		switch {
		case ratio.GreaterThanOrEqual(overBudgetRatio):
			level = AlertOverBudget
		case ratio.GreaterThanOrEqual(warningRatio):
			level = AlertWarning
		default:
			continue
		}

		used := percent(spent, budgeted)
		alerts = append(alerts, Alert{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Level:        level,
			Spent:        spent,
			Budgeted:     budgeted,
			PercentUsed:  used,
			Message:      message(level, c.Name, spent, budgeted, used),
		})
	}

	return alerts, nil
}

func message(level AlertLevel, category string, spent, budgeted, used decimal.Decimal) string {
	if level == AlertOverBudget {
		return fmt.Sprintf("You are over your %s budget: %s spent of %s", category, spent.StringFixed(2), budgeted.StringFixed(2))
	}

	return fmt.Sprintf("You have used %s%% of your %s budget", used.String(), category)
}

// percent returns part as percentage of total, rounded to two places. It is
// zero when total is zero.
func percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

type data struct {
	categories []models.Category
	spent      map[uuid.UUID]decimal.Decimal
	budgeted   map[uuid.UUID]decimal.Decimal
}

// load reads everything a summary of the period needs concurrently.
func (a Aggregator) load(ctx context.Context, userID uuid.UUID, period types.Period) (data, error) {
	var (
		user         models.User
		categories   []models.Category
		budgets      []models.Budget
		transactions []models.Transaction
	)

	months := period.Months()
	years := make([]int, 0, len(months))
	for _, m := range months {
		if len(years) == 0 || years[len(years)-1] != m.Year() {
			years = append(years, m.Year())
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = a.users.ByID(ctx, userID)
		return
	})
	g.Go(func() (err error) {
		categories, err = a.categories.List(ctx, userID)
		return
	})
	g.Go(func() (err error) {
		budgets, err = a.budgets.ListForYears(ctx, userID, years...)
		return
	})
	g.Go(func() (err error) {
		transactions, err = a.transactions.ListInPeriod(ctx, userID, period.Start, period.End)
		return
	})

	if err := g.Wait(); err != nil {
		return data{}, err
	}

	d := data{
		categories: categories,
		spent:      make(map[uuid.UUID]decimal.Decimal),
		budgeted:   make(map[uuid.UUID]decimal.Decimal),
	}

	for _, t := range transactions {
		d.spent[t.CategoryID] = d.spent[t.CategoryID].Add(t.Amount)
	}

	for _, b := range budgets {
		amount, ok := budgetInPeriod(user, b, period)
		if ok {
			d.budgeted[b.CategoryID] = d.budgeted[b.CategoryID].Add(amount)
		}
	}

	return d, nil
}

// budgetInPeriod returns the part of the budget that applies to the period.
//
// A week gets the budget of the month its Monday is in, prorated by
// 7 / days in that month. Months and years get the full budget of every
// month they contain.
func budgetInPeriod(user models.User, b models.Budget, period types.Period) (decimal.Decimal, bool) {
	month := types.NewMonth(b.Year, time.Month(b.Month))
	amount := user.EffectiveBudget(b.Amount)

	if period.Kind == types.PeriodWeek {
		if !month.Equal(types.MonthOf(period.Start)) {
			return decimal.Zero, false
		}
		return amount.Mul(decimal.NewFromInt(7)).Div(decimal.NewFromInt(int64(month.Days()))).Round(2), true
	}

	if !period.Contains(month.Start()) {
		return decimal.Zero, false
	}
	return amount, true
}
