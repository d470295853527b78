package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DevUser is the user the development login signs in as.
var DevUser = models.User{
	Email:          "dev@aura.local",
	Name:           "Aura Developer",
	Provider:       "dev",
	ProviderID:     "dev",
	InboundAddress: "dev@inbound.aura.local",
}

// User is the account of the logged in user.
type User struct {
	ID             uuid.UUID         `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Email          string            `json:"email" example:"jane@example.com"`
	Name           string            `json:"name" example:"Jane Doe"`
	Provider       string            `json:"provider" example:"google"`
	InboundAddress string            `json:"inboundAddress" example:"jane.3f9a@inbound.aura.example"` // Address to forward bank alerts to
	MonthlySalary  *decimal.Decimal  `json:"monthlySalary" example:"5000"`                            // Base for budgets in percentage mode
	BudgetMode     models.BudgetMode `json:"budgetMode" example:"direct"`                             // One of direct, percentage
	CreatedAt      time.Time         `json:"createdAt" example:"2026-10-01T08:30:00Z"`
}

func newUser(u models.User) User {
	return User{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Provider:       u.Provider,
		InboundAddress: u.InboundAddress,
		MonthlySalary:  u.MonthlySalary,
		BudgetMode:     u.BudgetMode,
		CreatedAt:      u.CreatedAt,
	}
}

// UserEditable are the settings the user can change.
type UserEditable struct {
	Name          string            `json:"name" example:"Jane Doe"`
	MonthlySalary *decimal.Decimal  `json:"monthlySalary" example:"5000"`
	BudgetMode    models.BudgetMode `json:"budgetMode" example:"percentage"`
}

type UserResponse struct {
	Data User `json:"data"` // The logged in user
}

// RegisterAuthRoutes registers the routes for sessions with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/dev-login", co.OptionsDevLogin)
	r.POST("/dev-login", co.DevLogin)

	r.OPTIONS("/me", co.OptionsMe)
	r.GET("/me", co.authenticate(), co.GetMe)
	r.PATCH("/me", co.authenticate(), co.UpdateMe)

	r.OPTIONS("/logout", co.OptionsLogout)
	r.POST("/logout", co.Logout)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/auth/dev-login [options]
func (co Controller) OptionsDevLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/auth/me [options]
func (co Controller) OptionsMe(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/auth/logout [options]
func (co Controller) OptionsLogout(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Development login
// @Description	Signs in as a fixed development user, creating it with the default categories on first use.
// @Description	Only available when the server runs in development mode.
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/auth/dev-login [post]
func (co Controller) DevLogin(c *gin.Context) {
	if !co.Development {
		abort(c, errDevLoginDisabled)
		return
	}

	user, err := co.Users.Ensure(c.Request.Context(), DevUser)
	if err != nil {
		abort(c, err)
		return
	}

	token, expires, err := co.Sessions.Issue(user)
	if err != nil {
		abort(c, errors.Join(models.ErrGeneral, err))
		return
	}

	log.Info().Str("user", user.ID.String()).Msg("Development login")
	co.Sessions.SetCookie(c, token, expires)
	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}

// @Summary		Get logged in user
// @Description	Returns the user of the session
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httperror.Error
// @Router			/auth/me [get]
func (co Controller) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, UserResponse{Data: newUser(auth.User(c))})
}

// @Summary		Update logged in user
// @Description	Updates the settings of the user. Only values to be updated need to be specified.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	httperror.Error
// @Failure		401		{object}	httperror.Error
// @Failure		500		{object}	httperror.Error
// @Param			user	body		UserEditable	true	"User settings"
// @Router			/auth/me [patch]
func (co Controller) UpdateMe(c *gin.Context) {
	user := auth.User(c)

	updateFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		abort(c, err)
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	if slices.Contains(updateFields, "Name") {
		user.Name = data.Name
	}
	if slices.Contains(updateFields, "MonthlySalary") {
		user.MonthlySalary = data.MonthlySalary
	}
	if slices.Contains(updateFields, "BudgetMode") {
		user.BudgetMode = data.BudgetMode
	}

	if user.MonthlySalary != nil && user.MonthlySalary.IsNegative() {
		abort(c, errSalaryNegative)
		return
	}

	err = co.DB.WithContext(c.Request.Context()).Save(&user).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}

// @Summary		Logout
// @Description	Removes the session cookie
// @Tags			Auth
// @Success		204
// @Router			/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	co.Sessions.ClearCookie(c)
	c.Status(http.StatusNoContent)
}
