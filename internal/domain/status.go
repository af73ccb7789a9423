package domain

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SubStatus is one step of a main status chain and the unit a task occupies.
type SubStatus struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	Order   int       `json:"order"`
	IsFirst bool      `json:"is_first"`
	IsLast  bool      `json:"is_last"`
}

// MainStatus is a named workflow phase owning an ordered sub-status chain.
type MainStatus struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Color       string      `json:"color"`
	Order       int         `json:"order"`
	SubStatuses []SubStatus `json:"sub_statuses"`
}

// TeamStatusConfig is a team's full taxonomy. Version is bumped on every
// structural edit.
type TeamStatusConfig struct {
	TeamID       uuid.UUID    `json:"team_id"`
	MainStatuses []MainStatus `json:"main_statuses"`
	LastUpdated  time.Time    `json:"last_updated"`
	Version      int          `json:"version"`
}

// Clone returns a deep copy of c.
func (c *TeamStatusConfig) Clone() *TeamStatusConfig {
	out := *c
	out.MainStatuses = make([]MainStatus, len(c.MainStatuses))
	for i, m := range c.MainStatuses {
		m.SubStatuses = slices.Clone(m.SubStatuses)
		out.MainStatuses[i] = m
	}
	return &out
}

// StatusCount returns the number of sub-statuses across all main statuses.
func (c *TeamStatusConfig) StatusCount() int {
	n := 0
	for _, m := range c.MainStatuses {
		n += len(m.SubStatuses)
	}
	return n
}

type StatusRepository interface {
	Get(ctx context.Context, tenantID, teamID uuid.UUID) (*TeamStatusConfig, error)
	Save(ctx context.Context, tenantID uuid.UUID, cfg *TeamStatusConfig) error
	Delete(ctx context.Context, tenantID, teamID uuid.UUID) error
}
