package services

import (
	"context"
	"time"

	"github.com/jenny-yujl/marketingTrain/internal/models"
)

const (
	EventCampaignCreated   = "campaign.created"
	EventCampaignUpdated   = "campaign.updated"
	EventCampaignSubmitted = "campaign.submitted"
	EventCampaignDeleted   = "campaign.deleted"
)

// CampaignEvent is the JSON body published for each campaign change. The
// event type doubles as the routing key.
type CampaignEvent struct {
	Type       string           `json:"type"`
	CampaignID int64            `json:"campaignId"`
	Status     string           `json:"status,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
	Campaign   *models.Campaign `json:"campaign,omitempty"`
}

// NewCampaignEvent stamps an event for c. c may be nil for deletes.
func NewCampaignEvent(eventType string, id int64, c *models.Campaign) CampaignEvent {
	ev := CampaignEvent{Type: eventType, CampaignID: id, OccurredAt: time.Now().UTC(), Campaign: c}
	if c != nil {
		ev.Status = string(c.Status)
	}
	return ev
}

type EventPublisher interface {
	Publish(ctx context.Context, event CampaignEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when AMQP_URL is unset.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, CampaignEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
