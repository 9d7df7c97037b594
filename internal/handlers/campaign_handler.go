// internal/handlers/campaign_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
	"github.com/jenny-yujl/marketingTrain/internal/schema"
	"github.com/jenny-yujl/marketingTrain/internal/services"
)

type CampaignHandler struct {
	*BaseHandler
	repo   interfaces.CampaignStore
	events services.EventPublisher
}

func NewCampaignHandler(base *BaseHandler, repo interfaces.CampaignStore, events services.EventPublisher) *CampaignHandler {
	if events == nil {
		events = services.NoopPublisher{}
	}
	return &CampaignHandler{
		BaseHandler: base,
		repo:        repo,
		events:      events,
	}
}

// publish never fails the request; a lost event is only logged.
func (h *CampaignHandler) publish(ctx context.Context, event services.CampaignEvent) {
	if err := h.events.Publish(ctx, event); err != nil {
		h.Logger.Warn("failed to publish campaign event",
			zap.String("event", event.Type),
			zap.Int64("campaign_id", event.CampaignID),
			zap.Error(err))
	}
}

// CreateCampaign handles POST /api/campaigns
// @Tags Campaigns
// @Summary Create campaign draft
// @Accept json
// @Produce json
// @Param campaign body models.CampaignDraft true "Campaign draft"
// @Success 201 {object} models.Campaign
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/campaigns [post]
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	draft, err := schema.DecodeCampaign(body)
	if err != nil {
		h.decodeFailed(w, "Invalid campaign data", err)
		return
	}

	campaign, err := h.repo.CreateCampaign(r.Context(), draft)
	if err != nil {
		h.serverError(w, r, "create_campaign_failed", "Failed to create campaign", err)
		return
	}

	h.publish(r.Context(), services.NewCampaignEvent(services.EventCampaignCreated, campaign.ID, campaign))
	writeJSON(w, http.StatusCreated, campaign)
}

// GetCampaign handles GET /api/campaigns/{id}
// @Tags Campaigns
// @Summary Get campaign
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "Campaign")
	if !ok {
		return
	}

	campaign, err := h.repo.GetCampaign(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Campaign not found")
			return
		}
		h.serverError(w, r, "get_campaign_failed", "Failed to fetch campaign", err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// ListCampaigns handles GET /api/campaigns
// @Tags Campaigns
// @Summary List campaigns
// @Produce json
// @Success 200 {array} models.Campaign
// @Failure 500 {object} ErrorResponse
// @Router /api/campaigns [get]
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.repo.ListCampaigns(r.Context())
	if err != nil {
		h.serverError(w, r, "list_campaigns_failed", "Failed to fetch campaigns", err)
		return
	}

	if campaigns == nil {
		campaigns = []*models.Campaign{} // Return empty array instead of null
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// UpdateCampaign handles PUT /api/campaigns/{id}
// @Tags Campaigns
// @Summary Update campaign
// @Description Partial update: only fields present in the body change.
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param campaign body models.CampaignDraft true "Fields to change"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "Campaign")
	if !ok {
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	patch, err := schema.DecodeCampaignPatch(body)
	if err != nil {
		h.decodeFailed(w, "Invalid campaign data", err)
		return
	}

	campaign, err := h.repo.UpdateCampaign(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Campaign not found")
			return
		}
		h.serverError(w, r, "update_campaign_failed", "Failed to update campaign", err)
		return
	}

	h.publish(r.Context(), services.NewCampaignEvent(services.EventCampaignUpdated, campaign.ID, campaign))
	if patch.SubmitsCampaign() {
		h.publish(r.Context(), services.NewCampaignEvent(services.EventCampaignSubmitted, campaign.ID, campaign))
	}
	writeJSON(w, http.StatusOK, campaign)
}

// DeleteCampaign handles DELETE /api/campaigns/{id}
// @Tags Campaigns
// @Summary Delete campaign
// @Description Idempotent; deleting an unknown id also returns 204.
// @Param id path int true "Campaign ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "Campaign")
	if !ok {
		return
	}

	if err := h.repo.DeleteCampaign(r.Context(), id); err != nil {
		h.serverError(w, r, "delete_campaign_failed", "Failed to delete campaign", err)
		return
	}

	h.publish(r.Context(), services.NewCampaignEvent(services.EventCampaignDeleted, id, nil))
	w.WriteHeader(http.StatusNoContent)
}
