package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/teamboard/internal/domain"
)

// DefaultTaxonomy is given to teams created without one.
func DefaultTaxonomy(teamID uuid.UUID) *domain.TeamStatusConfig {
	cfg := &domain.TeamStatusConfig{TeamID: teamID}

	planning := AddMainStatus(cfg, "Planning", "#6366f1")
	AddSubStatus(cfg, planning.ID, "To Do", "#94a3b8")
	AddSubStatus(cfg, planning.ID, "Scoping", "#a5b4fc")

	delivery := AddMainStatus(cfg, "Delivery", "#10b981")
	AddSubStatus(cfg, delivery.ID, "In Progress", "#f59e0b")
	AddSubStatus(cfg, delivery.ID, "Review", "#3b82f6")
	AddSubStatus(cfg, delivery.ID, "Done", "#22c55e")

	cfg.Version = 1
	cfg.LastUpdated = time.Now().UTC()
	return cfg
}
