package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCompanyCreated EventType = "company_created"
	EventCompanyUpdated EventType = "company_updated"
	EventCompanyDeleted EventType = "company_deleted"
)

// Event represents a domain event emitted by services after a committed change.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	CompanyID int64     `json:"company_id"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}
