package hierarchy_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartworld/smartdesk/internal"
	hierarchyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/hierarchy"
	"github.com/smartworld/smartdesk/internal/hierarchy"
)

func TestHierarchy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Hierarchy Suite")
}

// MockRepository implements hierarchy.RepositoryAPI for testing
type MockRepository struct {
	edges      []*hierarchyDatamodel.HierarchyEdge
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) List(ctx context.Context) ([]*hierarchyDatamodel.HierarchyEdge, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.edges, nil
}

func (m *MockRepository) Create(ctx context.Context, edge *hierarchyDatamodel.HierarchyEdge) error {
	if m.shouldFail {
		return m.failError
	}
	m.edges = append(m.edges, edge)
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, employeeID string) error {
	if m.shouldFail {
		return m.failError
	}
	for i, e := range m.edges {
		if e.EmployeeID == employeeID {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockRepository) DeleteAll(ctx context.Context) error {
	if m.shouldFail {
		return m.failError
	}
	m.edges = nil
	return nil
}

func lookupFrom(names map[string]string) hierarchy.Lookup {
	return func(id string) (hierarchy.Member, bool) {
		name, ok := names[id]
		if !ok {
			return hierarchy.Member{}, false
		}
		return hierarchy.Member{ID: id, Name: name}, true
	}
}

var _ = Describe("Hierarchy Service", func() {
	var (
		service *hierarchy.Service
		repo    *MockRepository
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = hierarchy.NewService(repo, logger)
	})

	Describe("AddEdge", func() {
		It("records the relationship in memory and in the repository", func() {
			edge, err := service.AddEdge(ctx, "E002", "E001")
			Expect(err).NotTo(HaveOccurred())
			Expect(edge.EmployeeID).To(Equal("E002"))
			Expect(edge.ReportsTo).To(Equal("E001"))
			Expect(edge.CreatedAt).NotTo(BeZero())
			Expect(repo.edges).To(HaveLen(1))
		})

		It("rejects self-reporting", func() {
			_, err := service.AddEdge(ctx, "E001", "E001")
			Expect(err).To(MatchError(internal.ErrSelfReport))
			Expect(service.Count()).To(BeZero())
		})

		It("rejects a second manager and keeps the first", func() {
			_, err := service.AddEdge(ctx, "E002", "E001")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AddEdge(ctx, "E002", "E003")
			Expect(err).To(MatchError(internal.ErrDuplicateEdge))

			edges := service.Edges()
			Expect(edges).To(HaveLen(1))
			Expect(edges[0].ReportsTo).To(Equal("E001"))
		})

		It("rejects an edge that closes a multi-hop cycle", func() {
			Expect(service.AddEdge(ctx, "B", "A")).Error().NotTo(HaveOccurred())
			Expect(service.AddEdge(ctx, "C", "B")).Error().NotTo(HaveOccurred())

			_, err := service.AddEdge(ctx, "A", "C")
			Expect(err).To(MatchError(internal.ErrHierarchyCycle))
			Expect(service.Count()).To(Equal(2))
		})

		It("requires both ids", func() {
			_, err := service.AddEdge(ctx, "", "E001")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("does not commit when the repository fails", func() {
			repo.SetShouldFail(true, errors.New("db down"))
			_, err := service.AddEdge(ctx, "E002", "E001")
			Expect(err).To(HaveOccurred())
			Expect(service.Count()).To(BeZero())
		})
	})

	Describe("RemoveEdge", func() {
		It("removes an existing relationship", func() {
			_, _ = service.AddEdge(ctx, "E002", "E001")
			_, _ = service.AddEdge(ctx, "E003", "E001")

			Expect(service.RemoveEdge(ctx, "E002")).To(Succeed())
			edges := service.Edges()
			Expect(edges).To(HaveLen(1))
			Expect(edges[0].EmployeeID).To(Equal("E003"))
			Expect(repo.edges).To(HaveLen(1))
		})

		It("returns NotFound when the employee has no manager", func() {
			Expect(service.RemoveEdge(ctx, "E404")).To(MatchError(internal.ErrEdgeNotFound))
		})

		It("allows re-adding after removal", func() {
			_, _ = service.AddEdge(ctx, "E002", "E001")
			Expect(service.RemoveEdge(ctx, "E002")).To(Succeed())
			Expect(service.AddEdge(ctx, "E002", "E003")).Error().NotTo(HaveOccurred())
		})
	})

	Describe("Clear", func() {
		It("removes all edges and reports the count", func() {
			_, _ = service.AddEdge(ctx, "E002", "E001")
			_, _ = service.AddEdge(ctx, "E003", "E001")

			removed, err := service.Clear(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(2))
			Expect(service.Edges()).To(BeEmpty())
			Expect(repo.edges).To(BeEmpty())
		})
	})

	Describe("Init", func() {
		It("restores persisted edges in order", func() {
			repo.edges = []*hierarchyDatamodel.HierarchyEdge{
				{EmployeeID: "E002", ReportsTo: "E001"},
				{EmployeeID: "E003", ReportsTo: "E002"},
			}
			Expect(service.Init(ctx)).To(Succeed())
			Expect(service.Count()).To(Equal(2))

			_, err := service.AddEdge(ctx, "E003", "E009")
			Expect(err).To(MatchError(internal.ErrDuplicateEdge))
		})
	})

	Describe("BuildTree", func() {
		It("roots the forest at managers that report to nobody", func() {
			_, _ = service.AddEdge(ctx, "E002", "E001")
			_, _ = service.AddEdge(ctx, "E003", "E001")
			_, _ = service.AddEdge(ctx, "E004", "E002")
			_, _ = service.AddEdge(ctx, "E006", "E005")

			roots := service.BuildTree(lookupFrom(map[string]string{
				"E001": "Vikram", "E002": "Asha", "E003": "Ravi", "E004": "Meera", "E006": "Kiran",
			}))

			Expect(roots).To(HaveLen(2))
			Expect(roots[0].ID).To(Equal("E001"))
			Expect(roots[0].Name).To(Equal("Vikram"))
			Expect(roots[0].Children).To(HaveLen(2))
			Expect(roots[0].Children[0].ID).To(Equal("E002"))
			Expect(roots[0].Children[0].Children[0].Name).To(Equal("Meera"))
			Expect(roots[0].Children[1].Children).To(BeEmpty())

			Expect(roots[1].ID).To(Equal("E005"))
			Expect(roots[1].Name).To(Equal(hierarchy.UnknownName))
			Expect(roots[1].Children[0].Name).To(Equal("Kiran"))
		})

		It("returns an empty forest with no edges", func() {
			Expect(service.BuildTree(nil)).To(BeEmpty())
		})
	})
})
