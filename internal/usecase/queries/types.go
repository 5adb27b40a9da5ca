package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID            uuid.UUID      `json:"id"`
	CustomerName  string         `json:"customer_name"`
	Vehicle       string         `json:"vehicle"`
	MechanicID    uuid.UUID      `json:"mechanic_id"`
	MechanicName  string         `json:"mechanic_name"`
	ScheduledAt   time.Time      `json:"scheduled_at"`
	Status        string         `json:"status"`
	PriorStatus   *string        `json:"prior_status,omitempty"`
	PromotedBy    *uuid.UUID     `json:"promoted_by,omitempty"`
	EstimatedCost string         `json:"estimated_cost"`
	Lines         []PartLineView `json:"parts"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type PartLineView struct {
	PartID   uuid.UUID `json:"part_id"`
	PartName string    `json:"part_name"`
	Quantity int       `json:"quantity"`
}

type BookingListItem struct {
	ID           uuid.UUID  `json:"id"`
	CustomerName string     `json:"customer_name"`
	MechanicID   uuid.UUID  `json:"mechanic_id"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	Status       string     `json:"status"`
	PromotedBy   *uuid.UUID `json:"promoted_by,omitempty"`
}

type MechanicView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	OnDuty        bool      `json:"on_duty"`
	ActiveJobs    int       `json:"active_jobs"`
	DisplayStatus string    `json:"display_status"`
}

type PartView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	UnitPrice   string    `json:"unit_price"`
	StockOnHand int       `json:"stock_on_hand"`
	Reserved    int       `json:"reserved"`
	Available   int       `json:"available"`
}
