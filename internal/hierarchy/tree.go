package hierarchy

// buildForest turns edges into trees. Roots are managers that never appear
// as a reporting employee, in the order they were first referenced; children
// keep edge order. Ids the directory does not know become "Unknown" nodes.
func buildForest(edges []Edge, lookup Lookup) []*Node {
	children := make(map[string][]string)
	reporting := make(map[string]struct{}, len(edges))
	var managers []string
	seenManager := make(map[string]struct{})

	for _, e := range edges {
		children[e.ReportsTo] = append(children[e.ReportsTo], e.EmployeeID)
		reporting[e.EmployeeID] = struct{}{}
		if _, ok := seenManager[e.ReportsTo]; !ok {
			seenManager[e.ReportsTo] = struct{}{}
			managers = append(managers, e.ReportsTo)
		}
	}

	resolve := func(id string) Member {
		if lookup != nil {
			if m, ok := lookup(id); ok {
				return m
			}
		}
		return Member{ID: id, Name: UnknownName}
	}

	var build func(id string, path map[string]bool) *Node
	build = func(id string, path map[string]bool) *Node {
		node := &Node{Member: resolve(id), Children: []*Node{}}
		if path[id] {
			// stored data with a loop; stop descending
			return node
		}
		path[id] = true
		for _, child := range children[id] {
			node.Children = append(node.Children, build(child, path))
		}
		delete(path, id)
		return node
	}

	roots := make([]*Node, 0)
	for _, m := range managers {
		if _, isReport := reporting[m]; isReport {
			continue
		}
		roots = append(roots, build(m, make(map[string]bool)))
	}
	return roots
}
