package controllers

import (
	"net/http"
	"strings"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Proposal is the category the agent suggests for a disputed transaction.
type Proposal struct {
	CategoryID   uuid.UUID `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	CategoryName string    `json:"categoryName" example:"Groceries"`
	Reasoning    string    `json:"reasoning" example:"NTUC FairPrice is a supermarket chain, the purchase is groceries"`
}

type ProposalResponse struct {
	Data Proposal `json:"data"` // The proposed category
}

type ApprovalResponse struct {
	Data pipeline.ApprovalResult `json:"data"` // Which steps of the approval succeeded
}

// RegisterFeedbackRoutes registers the routes for categorization feedback
// with the RouterGroup that is passed.
func (co Controller) RegisterFeedbackRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsFeedback)
	r.POST("", co.authenticate(), co.ProposeCategory)

	r.OPTIONS("/approve", co.OptionsFeedbackApprove)
	r.POST("/approve", co.authenticate(), co.ApproveCategory)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Feedback
// @Success		204
// @Router			/feedback [options]
func (co Controller) OptionsFeedback(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Feedback
// @Success		204
// @Router			/feedback/approve [options]
func (co Controller) OptionsFeedbackApprove(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Propose category
// @Description	Asks the agent for a new category of the transaction based on the feedback of the user. Nothing is changed.
// @Tags			Feedback
// @Accept			json
// @Produce		json
// @Success		200			{object}	ProposalResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Failure		503			{object}	httperror.Error
// @Param			feedback	body		pipeline.ProposeRequest	true	"Feedback"
// @Router			/feedback [post]
func (co Controller) ProposeCategory(c *gin.Context) {
	var req pipeline.ProposeRequest
	err := httputil.BindData(c, &req)
	if err != nil {
		abort(c, err)
		return
	}

	if req.TransactionID == uuid.Nil {
		abort(c, errTransactionIDMissing)
		return
	}

	if strings.TrimSpace(req.FeedbackText) == "" {
		abort(c, errFeedbackTextMissing)
		return
	}

	proposal, err := co.Feedback.Propose(c.Request.Context(), auth.User(c).ID, req)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, ProposalResponse{Data: Proposal{
		CategoryID:   proposal.CategoryID,
		CategoryName: proposal.CategoryName,
		Reasoning:    proposal.Reasoning,
	}})
}

// @Summary		Approve category
// @Description	Applies a category change the user accepted. The transaction is updated, the vendor cache entry
// @Description	for the vendor is pointed to the new category and the correction is remembered for later
// @Description	categorizations. The steps are independent, failures are reported per step.
// @Tags			Feedback
// @Accept			json
// @Produce		json
// @Success		200			{object}	ApprovalResponse
// @Failure		400			{object}	httperror.Error
// @Failure		401			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			approval	body		pipeline.ApproveRequest	true	"Approval"
// @Router			/feedback/approve [post]
func (co Controller) ApproveCategory(c *gin.Context) {
	var req pipeline.ApproveRequest
	err := httputil.BindData(c, &req)
	if err != nil {
		abort(c, err)
		return
	}

	if req.TransactionID == uuid.Nil {
		abort(c, errTransactionIDMissing)
		return
	}

	if req.NewCategoryID == uuid.Nil {
		abort(c, errNewCategoryIDMissing)
		return
	}

	result, err := co.Feedback.Approve(c.Request.Context(), auth.User(c).ID, req)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, ApprovalResponse{Data: result})
}
