package cluster

// Stats summarises a trained cluster chain.
type Stats struct {
	DatasetLength int `json:"dataset_length"`
	// KnownClusters excludes Control.
	KnownClusters  int `json:"known_clusters"`
	LongestCluster int `json:"longest_cluster"`
	// Contexts counts contexts by their length in clusters.
	Contexts map[int]int `json:"contexts"`
	// Transitions counts distinct (context, successor) pairs.
	Transitions int `json:"transitions"`
}

// Stats returns a summary of the current model.
func (g *Generator) Stats() Stats {
	s := Stats{
		DatasetLength:  g.datasetLength,
		KnownClusters:  len(g.KnownClusters()),
		LongestCluster: g.longest,
		Contexts:       make(map[int]int),
	}
	for _, succ := range g.transitions {
		s.Contexts[len(succ.context)]++
		s.Transitions += len(succ.clusters)
	}
	return s
}
