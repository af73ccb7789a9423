package domain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Task is a unit of work. MainStatus and SubStatus are plain names that should
// match the owning team's taxonomy; nothing enforces the reference, so a task
// can carry a sub-status that no longer exists (an orphan).
type Task struct {
	ID          string     `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	TeamID      uuid.UUID  `json:"team_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Assignee    string     `json:"assignee"`
	Client      string     `json:"client"`
	DueDate     civil.Date `json:"due_date,omitzero"`
	CreatedDate civil.Date `json:"created_date"`
	MainStatus  string     `json:"main_status"`
	SubStatus   string     `json:"sub_status"`
	Progress    int        `json:"progress"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
	Count       *int       `json:"count,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	c.Tags = slices.Clone(t.Tags)
	if t.Count != nil {
		n := *t.Count
		c.Count = &n
	}
	return &c
}

// TaskDraft carries the caller-editable fields of a task.
type TaskDraft struct {
	TeamID      uuid.UUID
	Title       string `validate:"required,max=500"`
	Description string
	Assignee    string `validate:"max=200"`
	Client      string `validate:"max=200"`
	DueDate     civil.Date
	CreatedDate civil.Date
	MainStatus  string
	SubStatus   string
	Progress    int      `validate:"gte=0,lte=100"`
	Priority    Priority `validate:"required,oneof=High Medium Low"`
	Tags        []string
	Count       *int `validate:"omitempty,gte=0"`
}

var validate = validator.New()

// ValidateDraft checks the draft's field constraints. The returned error wraps
// ErrValidation.
func ValidateDraft(d *TaskDraft) error {
	return validateStruct(d)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", strings.ToLower(e.Field()), e.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// NewTask validates the draft and builds a task with a fresh ID. A zero
// CreatedDate defaults to today.
func NewTask(tenantID uuid.UUID, d TaskDraft, today civil.Date) (*Task, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenant ID is required", ErrValidation)
	}
	if err := ValidateDraft(&d); err != nil {
		return nil, err
	}

	created := d.CreatedDate
	if !created.IsValid() {
		created = today
	}

	t := &Task{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		CreatedDate: created,
		UpdatedAt:   time.Now(),
	}
	t.Apply(d)
	return t, nil
}

// Apply copies the draft's editable fields onto t. CreatedDate is only
// overwritten when the draft carries a valid one.
func (t *Task) Apply(d TaskDraft) {
	t.TeamID = d.TeamID
	t.Title = d.Title
	t.Description = d.Description
	t.Assignee = d.Assignee
	t.Client = d.Client
	t.DueDate = d.DueDate
	if d.CreatedDate.IsValid() {
		t.CreatedDate = d.CreatedDate
	}
	t.MainStatus = d.MainStatus
	t.SubStatus = d.SubStatus
	t.Progress = d.Progress
	t.Priority = d.Priority
	t.Tags = NormalizeTags(d.Tags)
	t.Count = d.Count
}

// Draft returns the editable fields of t.
func (t *Task) Draft() TaskDraft {
	return TaskDraft{
		TeamID:      t.TeamID,
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		Client:      t.Client,
		DueDate:     t.DueDate,
		CreatedDate: t.CreatedDate,
		MainStatus:  t.MainStatus,
		SubStatus:   t.SubStatus,
		Progress:    t.Progress,
		Priority:    t.Priority,
		Tags:        t.Tags,
		Count:       t.Count,
	}
}

// NormalizeTags trims, drops empties and duplicates, and sorts. Tags are a set.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Task, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*Task, error)
	ListByTeam(ctx context.Context, tenantID, teamID uuid.UUID) ([]*Task, error)
	UpdateSubStatus(ctx context.Context, tenantID uuid.UUID, id, subStatus string) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, tenantID uuid.UUID, id string) error
}
