package hierarchy

import (
	"time"

	hierarchyDatamodel "github.com/smartworld/smartdesk/internal/core/datamodel/hierarchy"
)

const UnknownName = "Unknown"

// Edge records that EmployeeID reports to ReportsTo.
type Edge struct {
	EmployeeID string    `json:"employeeId"`
	ReportsTo  string    `json:"reportsTo"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Member is the directory view of a person placed in the tree.
type Member struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Department   string `json:"department,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Location     string `json:"location,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type Node struct {
	Member
	Children []*Node `json:"children"`
}

// Lookup resolves an employee id against the directory.
type Lookup func(id string) (Member, bool)

func ToDataModel(e *Edge) *hierarchyDatamodel.HierarchyEdge {
	return &hierarchyDatamodel.HierarchyEdge{
		EmployeeID: e.EmployeeID,
		ReportsTo:  e.ReportsTo,
		CreatedAt:  e.CreatedAt,
	}
}

func FromDataModel(e *hierarchyDatamodel.HierarchyEdge) *Edge {
	return &Edge{
		EmployeeID: e.EmployeeID,
		ReportsTo:  e.ReportsTo,
		CreatedAt:  e.CreatedAt,
	}
}
