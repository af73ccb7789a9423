// Package memory is the default process-local store. Every read returns a
// copy, so callers can never mutate stored records behind the store's back.
package memory

import (
	"github.com/gosuda/teamboard/internal/domain"
)

type Store struct {
	tenants  *TenantRepo
	teams    *TeamRepo
	statuses *StatusRepo
	tasks    *TaskRepo
}

func New() *Store {
	return &Store{
		tenants:  NewTenantRepo(),
		teams:    NewTeamRepo(),
		statuses: NewStatusRepo(),
		tasks:    NewTaskRepo(),
	}
}

// Close is a no-op; it exists so the memory and postgres stores are
// interchangeable at startup.
func (s *Store) Close() {}

func (s *Store) Tenants() domain.TenantRepository  { return s.tenants }
func (s *Store) Teams() domain.TeamRepository      { return s.teams }
func (s *Store) Statuses() domain.StatusRepository { return s.statuses }
func (s *Store) Tasks() domain.TaskRepository      { return s.tasks }
