package controllers

import (
	"net/http"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name      string `json:"name" example:"Groceries"` // Name of the category, unique per user
	Icon      string `json:"icon" example:"🛒"`         // Icon shown next to the category
	Color     string `json:"color" example:"#22c55e"`  // Color of the category in charts
	SortOrder int    `json:"sortOrder" example:"0"`    // Position of the category in lists
}

func (e CategoryEditable) model(userID uuid.UUID) models.Category {
	return models.Category{
		UserID:    userID,
		Name:      e.Name,
		Icon:      e.Icon,
		Color:     e.Color,
		SortOrder: e.SortOrder,
	}
}

// Category is a label for transactions.
type Category struct {
	ID        uuid.UUID `json:"id" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Name      string    `json:"name" example:"Groceries"`
	Icon      string    `json:"icon" example:"🛒"`
	Color     string    `json:"color" example:"#22c55e"`
	SortOrder int       `json:"sortOrder" example:"0"`
	IsDefault bool      `json:"isDefault" example:"true"` // Created together with the user
}

func newCategory(c models.Category) Category {
	return Category{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		SortOrder: c.SortOrder,
		IsDefault: c.IsDefault,
	}
}

type CategoryResponse struct {
	Data Category `json:"data"` // Data for the category
}

type CategoryListResponse struct {
	Data []Category `json:"data"` // List of categories in display order
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.GET("", co.authenticate(), co.GetCategories)
		r.POST("", co.authenticate(), co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.authenticate(), co.GetCategory)
		r.PATCH("/:id", co.authenticate(), co.UpdateCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/categories [options]
func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Get categories
// @Description	Returns the categories of the logged in user
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		401	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	categories, err := co.Categories.List(c.Request.Context(), auth.User(c).ID)
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		abort(c, err)
		return
	}

	category := editable.model(auth.User(c).ID)
	err = co.DB.WithContext(c.Request.Context()).Create(&category).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: newCategory(category)})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httperror.Error
// @Failure		401	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	category, ok := co.getCategory(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: newCategory(category)})
}

// @Summary		Update category
// @Description	Update an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	category, ok := co.getCategory(c)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		abort(c, err)
		return
	}

	var data CategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	if slices.Contains(updateFields, "Name") {
		category.Name = data.Name
	}
	if slices.Contains(updateFields, "Icon") {
		category.Icon = data.Icon
	}
	if slices.Contains(updateFields, "Color") {
		category.Color = data.Color
	}
	if slices.Contains(updateFields, "SortOrder") {
		category.SortOrder = data.SortOrder
	}

	err = co.DB.WithContext(c.Request.Context()).Save(&category).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: newCategory(category)})
}

// getCategory returns the category with the ID from the URI if it belongs to
// the logged in user. If not, the error response is sent and ok is false.
func (co Controller) getCategory(c *gin.Context) (models.Category, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		abort(c, err)
		return models.Category{}, false
	}

	category, err := co.Categories.FindForUser(c.Request.Context(), auth.User(c).ID, uri.ID.UUID)
	if err != nil {
		abort(c, err)
		return models.Category{}, false
	}

	return category, true
}
