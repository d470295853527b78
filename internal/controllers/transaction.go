package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	CategoryID  uuid.UUID       `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Amount      decimal.Decimal `json:"amount" example:"45.2"`
	Vendor      string          `json:"vendor" example:"NTUC FAIRPRICE"`
	Description string          `json:"description" example:"Weekly groceries"`
	Date        time.Time       `json:"date" example:"2026-10-15T08:29:58Z"` // Defaults to the current time
}

// Transaction is a single spend event.
type Transaction struct {
	ID            uuid.UUID                `json:"id" example:"e0a0d8d2-7d1f-4bd0-9b6b-6d0e1f5c1e44"`
	CategoryID    uuid.UUID                `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Amount        decimal.Decimal          `json:"amount" example:"45.2"`
	Vendor        string                   `json:"vendor" example:"NTUC FAIRPRICE"`
	Description   string                   `json:"description" example:"Groceries at NTUC FairPrice"`
	Date          time.Time                `json:"date" example:"2026-10-15T08:29:58Z"`
	Confidence    models.Confidence        `json:"confidence" example:"high"`                       // How certain the categorization is
	Source        models.TransactionSource `json:"source" example:"email"`                          // Where the transaction came from
	EmailSubject  string                   `json:"emailSubject" example:"Card transaction alert"`   // Subject of the alert email
	ResendEmailID *string                  `json:"resendEmailId" example:"4ef9a417-02e9-4d39-ad75"` // ID of the alert email at the provider
	CreatedAt     time.Time                `json:"createdAt" example:"2026-10-15T08:30:01Z"`
}

func newTransaction(t models.Transaction) Transaction {
	return Transaction{
		ID:            t.ID,
		CategoryID:    t.CategoryID,
		Amount:        t.Amount,
		Vendor:        t.Vendor,
		Description:   t.Description,
		Date:          t.Date,
		Confidence:    t.Confidence,
		Source:        t.Source,
		EmailSubject:  t.EmailSubject,
		ResendEmailID: t.ResendEmailID,
		CreatedAt:     t.CreatedAt,
	}
}

type TransactionResponse struct {
	Data Transaction `json:"data"` // Data for the transaction
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`       // List of transactions, newest first
	Pagination *Pagination   `json:"pagination"` // Pagination information
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset int   `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

type TransactionQueryFilter struct {
	CategoryID string    `form:"category"`                                    // ID of the category
	Vendor     string    `form:"vendor"`                                      // Search for this text in the vendor
	From       time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`  // Transactions at or after this date
	Until      time.Time `form:"until" time_format:"2006-01-02" time_utc:"1"` // Transactions before this date
	Offset     int       `form:"offset"`                                      // The offset of the first transaction returned
	Limit      int       `form:"limit"`                                       // Maximum number of transactions to return
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.GET("", co.authenticate(), co.GetTransactions)
		r.POST("", co.authenticate(), co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.authenticate(), co.GetTransaction)
		r.PATCH("/:id", co.authenticate(), co.UpdateTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/transactions [options]
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions of the logged in user
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			category	query		string	false	"Filter by category ID"
// @Param			vendor		query		string	false	"Search for this text in the vendor"
// @Param			from		query		string	false	"Transactions at or after this date, YYYY-MM-DD"
// @Param			until		query		string	false	"Transactions before this date, YYYY-MM-DD"
// @Param			offset		query		uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of Transactions to return. Defaults to 50."
// @Router			/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		abort(c, fmt.Errorf("%w: %w", httputil.ErrInvalidQuery, err))
		return
	}

	setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := co.DB.WithContext(c.Request.Context()).
		Model(&models.Transaction{}).
		Where("user_id = ?", auth.User(c).ID).
		Order("date DESC, created_at DESC")

	if slices.Contains(setFields, "CategoryID") {
		categoryID, err := httputil.UUIDFromString(filter.CategoryID)
		if err != nil {
			abort(c, err)
			return
		}
		q = q.Where("category_id = ?", categoryID)
	}

	if filter.Vendor != "" {
		q = q.Where("vendor LIKE ?", fmt.Sprintf("%%%s%%", filter.Vendor))
	}

	if slices.Contains(setFields, "From") {
		q = q.Where("date >= ?", filter.From)
	}

	if slices.Contains(setFields, "Until") {
		q = q.Where("date < ?", filter.Until)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(filter.Offset)

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		abort(c, err)
		return
	}

	var total int64
	err = q.Limit(-1).Offset(-1).Count(&total).Error
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, newTransaction(t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// @Summary		Create transaction
// @Description	Creates a transaction that was not received by email
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		abort(c, err)
		return
	}

	if editable.CategoryID == uuid.Nil {
		abort(c, errCategoryIDMissing)
		return
	}

	user := auth.User(c)
	_, err = co.Categories.FindForUser(c.Request.Context(), user.ID, editable.CategoryID)
	if err != nil {
		abort(c, err)
		return
	}

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  editable.CategoryID,
		Amount:      editable.Amount,
		Vendor:      editable.Vendor,
		Description: editable.Description,
		Date:        editable.Date,
		Source:      models.SourceManual,
		Confidence:  models.ConfidenceHigh,
	}

	err = co.Transactions.Create(c.Request.Context(), &transaction)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: newTransaction(transaction)})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httperror.Error
// @Failure		401	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	transaction, ok := co.getTransaction(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(transaction)})
}

// @Summary		Update transaction
// @Description	Update an existing transaction. Only values to be updated need to be specified.
// @Description	Changing the category here does not update the vendor cache, use the feedback endpoints for that.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	transaction, ok := co.getTransaction(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		abort(c, err)
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	if slices.Contains(updateFields, "CategoryID") {
		_, err = co.Categories.FindForUser(c.Request.Context(), transaction.UserID, data.CategoryID)
		if err != nil {
			abort(c, err)
			return
		}
		transaction.CategoryID = data.CategoryID
	}
	if slices.Contains(updateFields, "Amount") {
		transaction.Amount = data.Amount
	}
	if slices.Contains(updateFields, "Vendor") {
		transaction.Vendor = data.Vendor
	}
	if slices.Contains(updateFields, "Description") {
		transaction.Description = data.Description
	}
	if slices.Contains(updateFields, "Date") {
		transaction.Date = data.Date
	}

	err = co.DB.WithContext(c.Request.Context()).Save(&transaction).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(transaction)})
}

// getTransaction returns the transaction with the ID from the URI if it
// belongs to the logged in user. If not, the error response is sent and ok is false.
func (co Controller) getTransaction(c *gin.Context) (models.Transaction, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		abort(c, err)
		return models.Transaction{}, false
	}

	transaction, err := co.Transactions.FindForUser(c.Request.Context(), auth.User(c).ID, uri.ID.UUID)
	if err != nil {
		abort(c, err)
		return models.Transaction{}, false
	}

	return transaction, true
}
