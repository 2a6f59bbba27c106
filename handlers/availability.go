package handlers

import (
	"net/http"

	"skillbridge/models"
	"skillbridge/services/availability"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler manages the authenticated tutor's weekly slots.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

func (h *AvailabilityHandler) ListSlotsHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	slots, err := h.Service.ListSlots(c.Request.Context(), p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availabilitySlots": slots})
}

func (h *AvailabilityHandler) AddSlotHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req models.SlotRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := h.Service.AddSlot(c.Request.Context(), p.UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// ReplaceSlotsHandler swaps the tutor's whole weekly schedule.
func (h *AvailabilityHandler) ReplaceSlotsHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req models.ReplaceSlotsRequest
	if !bindJSON(c, &req) {
		return
	}
	slots, err := h.Service.ReplaceSlots(c.Request.Context(), p.UserID, req.AvailabilitySlots)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availabilitySlots": slots})
}

func (h *AvailabilityHandler) UpdateSlotHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var upd models.SlotUpdate
	if !bindJSON(c, &upd) {
		return
	}
	slot, err := h.Service.UpdateSlot(c.Request.Context(), p.UserID, c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *AvailabilityHandler) DeleteSlotHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteSlot(c.Request.Context(), p.UserID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}
