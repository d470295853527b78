package controllers

import (
	"net/http"

	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/httputil"
	"github.com/aura-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VendorCacheEntry maps a vendor to the category its transactions are filed under.
type VendorCacheEntry struct {
	ID         uuid.UUID `json:"id" example:"8f0c2b0e-1c55-4a77-9a3e-0c5e6c1f2d3b"`
	VendorName string    `json:"vendorName" example:"NTUC FAIRPRICE"`                       // Normalized vendor name
	CategoryID uuid.UUID `json:"categoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"` // Category for the vendor
	HitCount   int       `json:"hitCount" example:"4"`                                      // How often the entry categorized a transaction
}

func newVendorCacheEntry(e models.VendorCacheEntry) VendorCacheEntry {
	return VendorCacheEntry{
		ID:         e.ID,
		VendorName: e.VendorName,
		CategoryID: e.CategoryID,
		HitCount:   e.HitCount,
	}
}

type VendorCacheListResponse struct {
	Data []VendorCacheEntry `json:"data"` // List of vendor cache entries, most used first
}

// RegisterVendorCacheRoutes registers the routes for the vendor cache with
// the RouterGroup that is passed.
func (co Controller) RegisterVendorCacheRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsVendorCache)
	r.GET("", co.authenticate(), co.GetVendorCache)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Vendor Cache
// @Success		204
// @Router			/vendor-cache [options]
func (co Controller) OptionsVendorCache(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get vendor cache
// @Description	Returns the vendor to category mappings of the logged in user
// @Tags			Vendor Cache
// @Produce		json
// @Success		200	{object}	VendorCacheListResponse
// @Failure		401	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Router			/vendor-cache [get]
func (co Controller) GetVendorCache(c *gin.Context) {
	user := auth.User(c)

	entries, err := co.VendorCache.List(c.Request.Context(), user.ID)
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]VendorCacheEntry, 0, len(entries))
	for _, e := range entries {
		data = append(data, newVendorCacheEntry(e))
	}

	c.JSON(http.StatusOK, VendorCacheListResponse{Data: data})
}
