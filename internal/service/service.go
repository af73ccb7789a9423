// Package service is the application controller behind the HTTP API. It owns
// the repositories and the event publisher and runs every board operation
// through the workflow and filter packages.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/domain"
	redisstore "github.com/gosuda/teamboard/internal/store/redis"
)

// Store is the repository accessor both the memory and postgres stores
// satisfy.
type Store interface {
	Tenants() domain.TenantRepository
	Teams() domain.TeamRepository
	Statuses() domain.StatusRepository
	Tasks() domain.TaskRepository
}

// PubSubPublisher delivers board events to live subscribers.
type PubSubPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Option func(*Service)

// WithPublisher enables board event publishing.
func WithPublisher(p PubSubPublisher) Option {
	return func(s *Service) { s.pubsub = p }
}

// WithClock replaces time.Now, which also moves "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	store  Store
	pubsub PubSubPublisher
	now    func() time.Time

	// taxonomyMu serializes read-modify-write cycles on taxonomy documents.
	taxonomyMu sync.Mutex
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the service's notion of the current calendar day.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.now())
}

// ResolveViewer builds the viewer for a display name and role. Managers get
// the members of every team they manage plus themselves as their roster.
func (s *Service) ResolveViewer(ctx context.Context, tenantID uuid.UUID, name string, role domain.Role) (domain.Viewer, error) {
	v := domain.Viewer{DisplayName: name, Role: role}
	if role != domain.RoleManager {
		return v, nil
	}

	teams, err := s.store.Teams().List(ctx, tenantID)
	if err != nil {
		return v, fmt.Errorf("service.ResolveViewer: %w", err)
	}

	roster := []string{name}
	for _, t := range teams {
		if t.Manager != name {
			continue
		}
		for _, m := range t.Members {
			if !slices.Contains(roster, m) {
				roster = append(roster, m)
			}
		}
	}
	v.ManagedRoster = roster
	return v, nil
}

func (s *Service) publishBoard(ctx context.Context, tenantID uuid.UUID, evt domain.BoardEvent) {
	s.publish(ctx, redisstore.BoardChannel(tenantID, evt.TeamID), evt)
}

func (s *Service) publishTenant(ctx context.Context, tenantID uuid.UUID, evt domain.BoardEvent) {
	s.publish(ctx, redisstore.TenantChannel(tenantID), evt)
}

func (s *Service) publish(ctx context.Context, channel string, evt domain.BoardEvent) {
	if s.pubsub == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Str("type", string(evt.Type)).Msg("service.publish: marshal event")
		return
	}
	if err := s.pubsub.Publish(ctx, channel, payload); err != nil {
		log.Error().Err(err).Str("channel", channel).Str("type", string(evt.Type)).Msg("service.publish: failed to publish event")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
