// Package seed loads demo tenants, teams, taxonomies and tasks from YAML into
// any store. The embedded default.yaml is used unless a file is configured.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/workflow"
)

//go:embed default.yaml
var defaultDoc []byte

// Repos is the subset of a store the loader writes to.
type Repos interface {
	Tenants() domain.TenantRepository
	Teams() domain.TeamRepository
	Statuses() domain.StatusRepository
	Tasks() domain.TaskRepository
}

type document struct {
	Tenants []tenantDoc `yaml:"tenants"`
}

type tenantDoc struct {
	Name  string    `yaml:"name"`
	Slug  string    `yaml:"slug"`
	Teams []teamDoc `yaml:"teams"`
}

type teamDoc struct {
	Name     string      `yaml:"name"`
	Color    string      `yaml:"color"`
	Manager  string      `yaml:"manager"`
	Members  []string    `yaml:"members"`
	Statuses []statusDoc `yaml:"statuses"`
	Tasks    []taskDoc   `yaml:"tasks"`
}

type statusDoc struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Subs  []subDoc `yaml:"subs"`
}

type subDoc struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type taskDoc struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Assignee    string   `yaml:"assignee"`
	Client      string   `yaml:"client"`
	Due         string   `yaml:"due"`
	Created     string   `yaml:"created"`
	Main        string   `yaml:"main"`
	Sub         string   `yaml:"sub"`
	Progress    int      `yaml:"progress"`
	Priority    string   `yaml:"priority"`
	Tags        []string `yaml:"tags"`
	Count       *int     `yaml:"count"`
}

// Default returns the embedded demo document.
func Default() []byte { return defaultDoc }

// LoadFile reads path, or the embedded document when path is empty.
func LoadFile(path string) ([]byte, error) {
	if path == "" {
		return defaultDoc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed.LoadFile: %w", err)
	}
	return data, nil
}

// Apply writes the document into repos. Tenants whose slug already exists are
// skipped, so applying the same document twice is harmless.
func Apply(ctx context.Context, repos Repos, data []byte, today civil.Date) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("seed.Apply: decode: %w", err)
	}

	for _, td := range doc.Tenants {
		_, err := repos.Tenants().GetBySlug(ctx, td.Slug)
		if err == nil {
			log.Debug().Str("slug", td.Slug).Msg("seed tenant exists, skipping")
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("seed.Apply: tenant %q: %w", td.Slug, err)
		}
		if err := applyTenant(ctx, repos, td, today); err != nil {
			return err
		}
	}
	return nil
}

func applyTenant(ctx context.Context, repos Repos, td tenantDoc, today civil.Date) error {
	now := time.Now()
	tenant := &domain.Tenant{ID: uuid.New(), Name: td.Name, Slug: td.Slug, CreatedAt: now, UpdatedAt: now}
	if err := repos.Tenants().Create(ctx, tenant); err != nil {
		return fmt.Errorf("seed.Apply: tenant %q: %w", td.Slug, err)
	}

	tasks := 0
	for _, tm := range td.Teams {
		team := &domain.Team{
			ID:        uuid.New(),
			TenantID:  tenant.ID,
			Name:      tm.Name,
			Color:     tm.Color,
			Manager:   tm.Manager,
			Members:   tm.Members,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.Teams().Create(ctx, team); err != nil {
			return fmt.Errorf("seed.Apply: team %q: %w", tm.Name, err)
		}
		if err := repos.Statuses().Save(ctx, tenant.ID, taxonomy(team.ID, tm.Statuses)); err != nil {
			return fmt.Errorf("seed.Apply: statuses of %q: %w", tm.Name, err)
		}

		for _, tk := range tm.Tasks {
			draft, err := tk.draft(team.ID)
			if err != nil {
				return fmt.Errorf("seed.Apply: task %q: %w", tk.Title, err)
			}
			task, err := domain.NewTask(tenant.ID, draft, today)
			if err != nil {
				return fmt.Errorf("seed.Apply: task %q: %w", tk.Title, err)
			}
			if err := repos.Tasks().Create(ctx, task); err != nil {
				return fmt.Errorf("seed.Apply: task %q: %w", tk.Title, err)
			}
			tasks++
		}
	}

	log.Info().Str("tenant", td.Slug).Int("teams", len(td.Teams)).Int("tasks", tasks).Msg("seeded tenant")
	return nil
}

func taxonomy(teamID uuid.UUID, statuses []statusDoc) *domain.TeamStatusConfig {
	if len(statuses) == 0 {
		return workflow.DefaultTaxonomy(teamID)
	}
	cfg := &domain.TeamStatusConfig{TeamID: teamID}
	for _, sd := range statuses {
		m := workflow.AddMainStatus(cfg, sd.Name, sd.Color)
		for _, sub := range sd.Subs {
			workflow.AddSubStatus(cfg, m.ID, sub.Name, sub.Color)
		}
	}
	cfg.Version = 1
	return cfg
}

func (tk taskDoc) draft(teamID uuid.UUID) (domain.TaskDraft, error) {
	due, err := parseDate(tk.Due)
	if err != nil {
		return domain.TaskDraft{}, fmt.Errorf("due: %w", err)
	}
	created, err := parseDate(tk.Created)
	if err != nil {
		return domain.TaskDraft{}, fmt.Errorf("created: %w", err)
	}
	return domain.TaskDraft{
		TeamID:      teamID,
		Title:       tk.Title,
		Description: tk.Description,
		Assignee:    tk.Assignee,
		Client:      tk.Client,
		DueDate:     due,
		CreatedDate: created,
		MainStatus:  tk.Main,
		SubStatus:   tk.Sub,
		Progress:    tk.Progress,
		Priority:    domain.Priority(tk.Priority),
		Tags:        tk.Tags,
		Count:       tk.Count,
	}, nil
}

func parseDate(s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	return civil.ParseDate(s)
}
