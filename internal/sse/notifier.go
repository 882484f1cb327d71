package sse

import (
	"time"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/workflow"
)

// EventNotifier is the interface services use to emit live admin events.
type EventNotifier interface {
	NotifySubmission(kind models.NotificationType, entityID int, name string)
	NotifyStatusChange(kind models.NotificationType, entityID int, name string, status workflow.Status)
}

// HubNotifier implements EventNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifySubmission(kind models.NotificationType, entityID int, name string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	event := EventSubmissionCreated
	if kind == models.NotificationOrder {
		event = EventOrderCreated
	}
	n.hub.Broadcast(&Event{
		Event:      event,
		EntityType: kind,
		EntityID:   entityID,
		Name:       name,
		Status:     workflow.StatusPending,
		Timestamp:  time.Now(),
	})
}

func (n *HubNotifier) NotifyStatusChange(kind models.NotificationType, entityID int, name string, status workflow.Status) {
	if n.hub.ClientCount() == 0 {
		return
	}
	event := EventStatusChanged
	if kind == models.NotificationOrder {
		event = EventOrderStatusChanged
	}
	n.hub.Broadcast(&Event{
		Event:      event,
		EntityType: kind,
		EntityID:   entityID,
		Name:       name,
		Status:     status,
		Timestamp:  time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifySubmission(kind models.NotificationType, entityID int, name string) {}
func (n *NopNotifier) NotifyStatusChange(kind models.NotificationType, entityID int, name string, status workflow.Status) {
}
