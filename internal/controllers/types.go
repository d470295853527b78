package controllers

import (
	aura_uuid "github.com/aura-finance/backend/internal/uuid"
)

type URIID struct {
	ID aura_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
