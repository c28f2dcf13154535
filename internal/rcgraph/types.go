// Package rcgraph implements the bucket processor: parsing bucket records,
// building grouped adjacency, classifying groups, and finding the longest
// simple cycle in each group.
package rcgraph

// GroupKey identifies a (claim_id, status_code) group. Both fields are the
// raw bytes from the input, compared and hashed bytewise.
type GroupKey struct {
	ClaimID    string
	StatusCode string
}

// Record is one parsed routing edge, qualified by its group key. Fields are
// kept as strings (immutable views over the parsed line) rather than byte
// slices, since Go string comparison and map-keying are already bytewise
// and this avoids unnecessary defensive copies.
type Record struct {
	Source      string
	Destination string
	Group       GroupKey
}

// AdjacencyMap is source -> set of destinations, for a single group.
type AdjacencyMap map[string]map[string]struct{}

// GroupedAdjacency is group -> AdjacencyMap, for a single bucket.
type GroupedAdjacency map[GroupKey]AdjacencyMap

// OutDegreeByGroup tracks, per group, the largest destination-set size
// reached by any source during adjacency construction.
type OutDegreeByGroup map[GroupKey]int

// Result is the winning group and cycle length for one bucket, or for the
// whole pipeline after the scheduler's reduction.
type Result struct {
	ClaimID     string
	StatusCode  string
	CycleLength int
}
