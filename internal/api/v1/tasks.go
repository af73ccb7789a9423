package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
)

// TaskBody is the editable shape of a task on the wire. Dates are
// YYYY-MM-DD; an empty due date means none.
type TaskBody struct {
	TeamID      uuid.UUID `json:"team_id,omitempty" doc:"Owning team ID"`
	Title       string    `json:"title" minLength:"1" maxLength:"500" doc:"Task title"`
	Description string    `json:"description,omitempty" doc:"Task description"`
	Assignee    string    `json:"assignee,omitempty" maxLength:"200" doc:"Assignee display name"`
	Client      string    `json:"client,omitempty" maxLength:"200" doc:"Client name"`
	DueDate     string    `json:"due_date,omitempty" doc:"Due date (YYYY-MM-DD)"`
	CreatedDate string    `json:"created_date,omitempty" doc:"Created date (YYYY-MM-DD), defaults to today"`
	MainStatus  string    `json:"main_status,omitempty" doc:"Main status name"`
	SubStatus   string    `json:"sub_status,omitempty" doc:"Sub-status name"`
	Progress    int       `json:"progress,omitempty" minimum:"0" maximum:"100" doc:"Progress percentage"`
	Priority    string    `json:"priority" enum:"High,Medium,Low" doc:"Task priority"`
	Tags        []string  `json:"tags,omitempty" doc:"Tags"`
	Count       *int      `json:"count,omitempty" minimum:"0" doc:"Optional quantity"`
}

func (b *TaskBody) draft() (domain.TaskDraft, error) {
	due, err := parseOptionalDate("due_date", b.DueDate)
	if err != nil {
		return domain.TaskDraft{}, err
	}
	created, err := parseOptionalDate("created_date", b.CreatedDate)
	if err != nil {
		return domain.TaskDraft{}, err
	}
	return domain.TaskDraft{
		TeamID:      b.TeamID,
		Title:       b.Title,
		Description: b.Description,
		Assignee:    b.Assignee,
		Client:      b.Client,
		DueDate:     due,
		CreatedDate: created,
		MainStatus:  b.MainStatus,
		SubStatus:   b.SubStatus,
		Progress:    b.Progress,
		Priority:    domain.Priority(b.Priority),
		Tags:        b.Tags,
		Count:       b.Count,
	}, nil
}

type CreateTaskInput struct {
	Body TaskBody
}

type TaskOutput struct {
	Body *domain.Task
}

type ListTasksInput struct {
	CriteriaQuery
	Sort string `query:"sort" enum:"none,timeline" doc:"timeline sorts by created date"`
}

type ListTasksOutput struct {
	Body []*domain.Task
}

type GetTaskInput struct {
	ID string `path:"id" doc:"Task ID"`
}

type UpdateTaskInput struct {
	ID   string `path:"id" doc:"Task ID"`
	Body TaskBody
}

type MoveTaskInput struct {
	ID   string `path:"id" doc:"Task ID"`
	Body struct {
		SubStatus string `json:"sub_status" minLength:"1" doc:"Target sub-status name"`
	}
}

type MoveTaskOutput struct {
	Body struct {
		Task  *domain.Task `json:"task"`
		Moved bool         `json:"moved" doc:"False when the task already sat in the target sub-status"`
	}
}

type DeleteTaskInput struct {
	ID string `path:"id" doc:"Task ID"`
}

func RegisterTaskRoutes(api huma.API, svc BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}
		d, err := input.Body.draft()
		if err != nil {
			return nil, err
		}

		t, err := svc.CreateTask(ctx, tenantID, d)
		if err != nil {
			return nil, serviceError(err, "team not found", "failed to create task")
		}
		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks visible to the caller",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		tenantID, viewer, err := caller(ctx, svc)
		if err != nil {
			return nil, err
		}
		c, err := input.criteria(svc.Today())
		if err != nil {
			return nil, err
		}

		tasks, err := svc.FilteredTasks(ctx, tenantID, c, viewer)
		if err != nil {
			return nil, serviceError(err, "not found", "failed to list tasks")
		}
		if input.Sort == "timeline" {
			tasks = filter.SortTimeline(tasks)
		}
		return &ListTasksOutput{Body: tasks}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*TaskOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		t, err := svc.GetTask(ctx, tenantID, input.ID)
		if err != nil {
			return nil, serviceError(err, "task not found", "failed to get task")
		}
		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Replace a task's editable fields",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}
		d, err := input.Body.draft()
		if err != nil {
			return nil, err
		}

		t, found, err := svc.UpdateTask(ctx, tenantID, input.ID, d)
		if err != nil {
			return nil, serviceError(err, "task not found", "failed to update task")
		}
		if !found {
			return nil, huma.Error404NotFound("task not found")
		}
		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/status",
		Summary:     "Move a task to another sub-status",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*MoveTaskOutput, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		t, moved, err := svc.MoveTask(ctx, tenantID, input.ID, input.Body.SubStatus)
		if err != nil {
			return nil, serviceError(err, "task not found", "failed to move task")
		}
		out := &MoveTaskOutput{}
		out.Body.Task = t
		out.Body.Moved = moved
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-task",
		Method:        http.MethodDelete,
		Path:          "/tasks/{id}",
		Summary:       "Delete a task",
		Tags:          []string{"Tasks"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		tenantID, err := tenantFrom(ctx)
		if err != nil {
			return nil, err
		}

		if err := svc.DeleteTask(ctx, tenantID, input.ID); err != nil {
			return nil, serviceError(err, "task not found", "failed to delete task")
		}
		return nil, nil
	})
}
