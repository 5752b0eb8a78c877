package hierarchy

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/core/common/validation"
	hierarchyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/hierarchy"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*hierarchyDatamodel.HierarchyEdge, error)
	Create(ctx context.Context, edge *hierarchyDatamodel.HierarchyEdge) error
	Delete(ctx context.Context, employeeID string) error
	DeleteAll(ctx context.Context) error
}

// Service keeps the reporting edges in memory, mirrored to the repository.
// Every mutation validates first, writes the repository second and touches
// memory last, so a rejected or failed call changes nothing.
type Service struct {
	mu        sync.RWMutex
	edges     []Edge
	reportsTo map[string]string

	repo   RepositoryAPI
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		reportsTo: make(map[string]string),
		repo:      repo,
		now:       time.Now,
		logger:    logger,
	}
}

// Init loads persisted edges.
func (s *Service) Init(ctx context.Context) error {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load hierarchy edges", "error", err)
		return internal.NewInternalError("failed to load hierarchy", err)
	}

	edges := make([]Edge, 0, len(rows))
	reportsTo := make(map[string]string, len(rows))
	for _, row := range rows {
		e := FromDataModel(row)
		edges = append(edges, *e)
		reportsTo[e.EmployeeID] = e.ReportsTo
	}

	s.mu.Lock()
	s.edges = edges
	s.reportsTo = reportsTo
	s.mu.Unlock()

	s.logger.Info("hierarchy loaded", "edges", len(edges))
	return nil
}

// AddEdge records that employeeID reports to managerID.
func (s *Service) AddEdge(ctx context.Context, employeeID, managerID string) (*Edge, error) {
	employeeID = strings.TrimSpace(employeeID)
	managerID = strings.TrimSpace(managerID)

	v := validation.NewValidator()
	v.Field("employeeId", employeeID).Required()
	v.Field("reportsTo", managerID).Required()
	if err := v.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if employeeID == managerID {
		return nil, internal.ErrSelfReport
	}
	if _, exists := s.reportsTo[employeeID]; exists {
		return nil, internal.ErrDuplicateEdge
	}
	if s.reachesLocked(managerID, employeeID) {
		return nil, internal.ErrHierarchyCycle
	}

	edge := Edge{EmployeeID: employeeID, ReportsTo: managerID, CreatedAt: s.now()}
	if err := s.repo.Create(ctx, ToDataModel(&edge)); err != nil {
		s.logger.Error("failed to persist hierarchy edge", "employee_id", employeeID, "error", err)
		return nil, internal.NewInternalError("failed to add relationship", err)
	}

	s.edges = append(s.edges, edge)
	s.reportsTo[employeeID] = managerID

	s.logger.Info("hierarchy edge added", "employee_id", employeeID, "reports_to", managerID)
	return &edge, nil
}

// reachesLocked reports whether walking up the chain from start hits target.
func (s *Service) reachesLocked(start, target string) bool {
	cur := start
	for steps := 0; steps <= len(s.reportsTo); steps++ {
		next, ok := s.reportsTo[cur]
		if !ok {
			return false
		}
		if next == target {
			return true
		}
		cur = next
	}
	return false
}

func (s *Service) RemoveEdge(ctx context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reportsTo[employeeID]; !exists {
		return internal.ErrEdgeNotFound
	}
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		s.logger.Error("failed to delete hierarchy edge", "employee_id", employeeID, "error", err)
		return internal.NewInternalError("failed to remove relationship", err)
	}

	for i, e := range s.edges {
		if e.EmployeeID == employeeID {
			s.edges = append(s.edges[:i:i], s.edges[i+1:]...)
			break
		}
	}
	delete(s.reportsTo, employeeID)

	s.logger.Info("hierarchy edge removed", "employee_id", employeeID)
	return nil
}

// Clear removes every edge and returns how many there were.
func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.Error("failed to clear hierarchy", "error", err)
		return 0, internal.NewInternalError("failed to clear hierarchy", err)
	}
	removed := len(s.edges)
	s.edges = nil
	s.reportsTo = make(map[string]string)

	s.logger.Info("hierarchy cleared", "removed", removed)
	return removed, nil
}

// Edges returns a copy of all edges in insertion order.
func (s *Service) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// BuildTree renders the current edges as a forest.
func (s *Service) BuildTree(lookup Lookup) []*Node {
	return buildForest(s.Edges(), lookup)
}
