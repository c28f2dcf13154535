package rcgraph

// BuildGroupedAdjacency consumes records and returns the grouped adjacency
// sets and the per-group maximum out-degree: edges[group][source] ->
// set(destinations), deduplicated, with the out-degree counter tracking
// the true maximum across all sources of a group using only deduplicated
// edges.
func BuildGroupedAdjacency(records []Record) (GroupedAdjacency, OutDegreeByGroup) {
	edges := make(GroupedAdjacency)
	maxOutDegree := make(OutDegreeByGroup)

	for _, rec := range records {
		AddEdge(edges, maxOutDegree, rec)
	}
	return edges, maxOutDegree
}

// AddEdge inserts one record's edge into edges, updating maxOutDegree in
// place. Exposed separately from BuildGroupedAdjacency so the bucket
// processor can stream records straight from disk instead of materializing
// a slice first.
func AddEdge(edges GroupedAdjacency, maxOutDegree OutDegreeByGroup, rec Record) {
	adj, ok := edges[rec.Group]
	if !ok {
		adj = make(AdjacencyMap)
		edges[rec.Group] = adj
	}

	dests, ok := adj[rec.Source]
	if !ok {
		dests = make(map[string]struct{})
		adj[rec.Source] = dests
	}

	oldSize := len(dests)
	dests[rec.Destination] = struct{}{}
	newSize := len(dests)

	if newSize > oldSize && newSize > maxOutDegree[rec.Group] {
		maxOutDegree[rec.Group] = newSize
	}
}
