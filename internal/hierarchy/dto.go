package hierarchy

type AddEdgeRequest struct {
	EmployeeID string `json:"employeeId"`
	ReportsTo  string `json:"reportsTo"`
}

type EdgesResponse struct {
	Hierarchy []Edge `json:"hierarchy"`
	Total     int    `json:"total"`
}

type EdgeResponse struct {
	Message string `json:"message"`
	Edge    *Edge  `json:"edge"`
}

type ClearResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

type TreeResponse struct {
	Roots []*Node `json:"roots"`
}
