package domain

import "github.com/google/uuid"

type BoardEventType string

const (
	EventTaskCreated     BoardEventType = "task_created"
	EventTaskUpdated     BoardEventType = "task_updated"
	EventTaskMoved       BoardEventType = "task_moved"
	EventTaskDeleted     BoardEventType = "task_deleted"
	EventTaxonomyChanged BoardEventType = "taxonomy_changed"
	EventTeamCreated     BoardEventType = "team_created"
	EventTeamUpdated     BoardEventType = "team_updated"
	EventTeamDeleted     BoardEventType = "team_deleted"
)

// BoardEvent represents a real-time kanban board update. Team events go to
// the tenant channel, everything else to the team's board channel.
type BoardEvent struct {
	Type   BoardEventType `json:"type"`
	TeamID uuid.UUID      `json:"team_id"`
	TaskID string         `json:"task_id,omitempty"`
	Data   any            `json:"data,omitempty"`
}
