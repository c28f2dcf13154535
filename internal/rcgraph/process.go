package rcgraph

// ProcessBucket reads bucketPath, builds grouped adjacency, classifies each
// group as functional or general, and returns the group with the longest
// cycle found in that bucket. Returns (Result{}, false) if the bucket
// contains no cyclic group.
func ProcessBucket(bucketPath string) (Result, bool, error) {
	edges := make(GroupedAdjacency)
	maxOutDegree := make(OutDegreeByGroup)

	err := ForEachRecordFile(bucketPath, func(rec Record) {
		AddEdge(edges, maxOutDegree, rec)
	})
	if err != nil {
		return Result{}, false, err
	}

	var best Result
	found := false

	for group, adj := range edges {
		isFunctional := maxOutDegree[group] <= 1
		cycleLen := FindLongestCycle(adj, isFunctional)
		if cycleLen > 0 && (!found || cycleLen > best.CycleLength) {
			best = Result{ClaimID: group.ClaimID, StatusCode: group.StatusCode, CycleLength: cycleLen}
			found = true
		}
	}

	return best, found, nil
}
