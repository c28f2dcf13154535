package rcgraph

import "sort"

// FindLongestCycle finds the longest simple cycle in adj, dispatching to
// the O(N) functional-graph walk or the pruned exhaustive DFS depending on
// isFunctional (max out-degree <= 1). Returns 0 if adj is empty or no
// cycle of length >= 2 exists.
func FindLongestCycle(adj AdjacencyMap, isFunctional bool) int {
	if len(adj) == 0 {
		return 0
	}
	if isFunctional {
		return findCycleFunctional(adj)
	}
	return findCycleDFS(adj)
}

// findCycleFunctional is the linear-time walk for functional graphs: every
// node has at most one successor, so the graph is a forest of trees feeding
// into at most one simple cycle per component.
func findCycleFunctional(adj AdjacencyMap) int {
	next := make(map[string]string, len(adj))
	for src, dests := range adj {
		for dest := range dests {
			next[src] = dest
			break // destination set is a singleton by the functional classification
		}
	}
	if len(next) == 0 {
		return 0
	}

	allNodes := make(map[string]struct{}, len(next)*2)
	for src, dest := range next {
		allNodes[src] = struct{}{}
		allNodes[dest] = struct{}{}
	}

	globallyVisited := make(map[string]struct{}, len(allNodes))
	longest := 0

	for start := range allNodes {
		if _, done := globallyVisited[start]; done {
			continue
		}

		pathOrder := make(map[string]int)
		pos := 0
		current := start
		haveCurrent := true

		for haveCurrent {
			if _, done := globallyVisited[current]; done {
				break
			}
			if startPos, seen := pathOrder[current]; seen {
				cycleLen := pos - startPos
				if cycleLen >= 2 && cycleLen > longest {
					longest = cycleLen
				}
				break
			}
			pathOrder[current] = pos
			pos++
			current, haveCurrent = next[current]
		}

		for node := range pathOrder {
			globallyVisited[node] = struct{}{}
		}
	}

	return longest
}

// findCycleDFS is the canonical-start pruned exhaustive DFS for general
// graphs: every simple cycle has a unique minimum-indexed node (nodes
// sorted bytewise), so restricting DFS from index i to neighbors of index
// >= i discovers each cycle exactly once.
func findCycleDFS(adj AdjacencyMap) int {
	nodesWithEdges := make([]string, 0, len(adj))
	for node := range adj {
		nodesWithEdges = append(nodesWithEdges, node)
	}
	if len(nodesWithEdges) == 0 {
		return 0
	}
	sort.Strings(nodesWithEdges)

	idx := make(map[string]int, len(nodesWithEdges))
	for i, node := range nodesWithEdges {
		idx[node] = i
	}

	longest := 0
	path := make(map[string]struct{})

	var dfs func(node, start string, startIdx, depth int)
	dfs = func(node, start string, startIdx, depth int) {
		for neighbor := range adj[node] {
			if neighbor == start && depth >= 1 {
				if cycleLen := depth + 1; cycleLen > longest {
					longest = cycleLen
				}
				continue
			}
			if _, onPath := path[neighbor]; onPath {
				continue
			}
			neighborIdx, known := idx[neighbor]
			if !known || neighborIdx < startIdx {
				continue
			}
			path[neighbor] = struct{}{}
			dfs(neighbor, start, startIdx, depth+1)
			delete(path, neighbor)
		}
	}

	for i, start := range nodesWithEdges {
		path[start] = struct{}{}
		dfs(start, start, i, 0)
		delete(path, start)
	}

	return longest
}
