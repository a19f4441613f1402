package registry

// Topology materializes the directed connection graph as an adjacency
// map: object id → sorted outgoing edge targets. Always rebuilt from
// the current connection state, never cached. Edge targets are not
// validated against registry membership, so a target id may resolve
// to no object (a dangling edge).
func (r *Registry) Topology() map[string][]string {
	topology := make(map[string][]string, len(r.objects))
	for id, obj := range r.objects {
		topology[id] = obj.Connections()
	}
	return topology
}

// NetworkMetrics summarizes the connection graph.
type NetworkMetrics struct {
	Objects          int     // registered objects (graph nodes)
	TotalConnections int     // all outgoing edges; A→B and B→A count separately
	Dangling         int     // edges whose target id is not registered
	Density          float64 // TotalConnections / (n·(n−1)); 0 for n < 2
}

// AnalyzeNetwork walks every object's connection set and computes the
// directed-graph metrics. Dangling edges still count toward
// TotalConnections even though they resolve to no target record.
func (r *Registry) AnalyzeNetwork() NetworkMetrics {
	m := NetworkMetrics{Objects: len(r.objects)}
	for _, obj := range r.objects {
		for _, target := range obj.Connections() {
			m.TotalConnections++
			if !r.Contains(target) {
				m.Dangling++
			}
		}
	}
	if m.Objects >= 2 {
		m.Density = float64(m.TotalConnections) / float64(m.Objects*(m.Objects-1))
	}
	return m
}
