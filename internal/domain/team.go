package domain

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Team owns a roster and a status taxonomy. Task aggregates are never stored
// on the team; see TeamStats.
type Team struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Manager   string    `json:"manager"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMember reports whether name is on the roster.
func (t *Team) HasMember(name string) bool {
	return slices.Contains(t.Members, name)
}

// Clone returns a deep copy of t.
func (t *Team) Clone() *Team {
	c := *t
	c.Members = slices.Clone(t.Members)
	return &c
}

// TeamDraft carries the caller-editable fields of a team.
type TeamDraft struct {
	Name    string `validate:"required,max=100"`
	Color   string `validate:"omitempty,max=32"`
	Manager string `validate:"max=200"`
	Members []string
}

// ValidateTeamDraft checks the draft's field constraints. The returned error
// wraps ErrValidation.
func ValidateTeamDraft(d *TeamDraft) error {
	return validateStruct(d)
}

// Apply copies the draft onto t. Member names are trimmed and de-duplicated
// keeping their first position.
func (t *Team) Apply(d TeamDraft) {
	t.Name = d.Name
	t.Color = d.Color
	t.Manager = d.Manager
	t.Members = make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		m = strings.TrimSpace(m)
		if m != "" && !slices.Contains(t.Members, m) {
			t.Members = append(t.Members, m)
		}
	}
}

// TeamStats are computed from the task collection on every read.
type TeamStats struct {
	TotalTasks     int `json:"total_tasks"`
	ActiveTasks    int `json:"active_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Statuses       int `json:"statuses"`
}

type TeamRepository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Team, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
