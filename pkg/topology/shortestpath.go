package topology

import "container/heap"

// ShortestPathHops returns the minimum-hop path from src to dst as a
// sequence of link handles, using cached BFS results since hop count never
// changes for a fixed topology. Returns ok=false if unreachable.
func (a *Arena) ShortestPathHops(src, dst NodeID) ([]LinkID, bool) {
	key := pathKey{src, dst}
	a.hopCacheMu.Lock()
	if a.hopCache == nil {
		a.hopCache = map[pathKey][]LinkID{}
	}
	if cached, ok := a.hopCache[key]; ok {
		a.hopCacheMu.Unlock()
		if cached == nil {
			return nil, false
		}
		return cached, true
	}
	a.hopCacheMu.Unlock()

	path, ok := a.bfs(src, dst)

	a.hopCacheMu.Lock()
	if ok {
		a.hopCache[key] = path
	} else {
		a.hopCache[key] = nil
	}
	a.hopCacheMu.Unlock()

	return path, ok
}

func (a *Arena) bfs(src, dst NodeID) ([]LinkID, bool) {
	if src == dst {
		return nil, true
	}
	prev := make(map[NodeID]step, len(a.Nodes))
	visited := map[NodeID]bool{src: true}
	queue := []NodeID{src}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, lid := range a.LinksAt(n) {
			l := a.Link(lid)
			next, err := l.Other(n)
			if err != nil || visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = step{node: n, via: lid}
			if next == dst {
				return reconstruct(prev, src, dst), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

type step struct {
	node NodeID
	via  LinkID
}

func reconstruct(prev map[NodeID]step, src, dst NodeID) []LinkID {
	var path []LinkID
	cur := dst
	for cur != src {
		s := prev[cur]
		path = append([]LinkID{s.via}, path...)
		cur = s.node
	}
	return path
}

type pathKey struct {
	src, dst NodeID
}

// CostFunc assigns a traversal cost to a link, given the node it is being
// entered from (so cost functions can consult per-direction state).
type CostFunc func(l *Link, from NodeID) float64

// ShortestPathCost runs Dijkstra with a caller-supplied cost function and
// is never cached: dynamic routing cost depends on current slot
// occupancy, which changes on every event, so a cached path would go
// stale immediately.
func (a *Arena) ShortestPathCost(src, dst NodeID, cost CostFunc) ([]LinkID, bool) {
	const inf = 1e18
	dist := make(map[NodeID]float64, len(a.Nodes))
	prevLink := make(map[NodeID]LinkID)
	prevNode := make(map[NodeID]NodeID)
	visited := make(map[NodeID]bool, len(a.Nodes))

	for _, n := range a.Nodes {
		dist[n.ID] = inf
	}
	dist[src] = 0

	pq := &nodeHeap{{node: src, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeDist)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == dst {
			break
		}
		for _, lid := range a.LinksAt(cur.node) {
			l := a.Link(lid)
			next, err := l.Other(cur.node)
			if err != nil || visited[next] {
				continue
			}
			nd := dist[cur.node] + cost(l, cur.node)
			if nd < dist[next] {
				dist[next] = nd
				prevLink[next] = lid
				prevNode[next] = cur.node
				heap.Push(pq, nodeDist{node: next, dist: nd})
			}
		}
	}

	if dist[dst] >= inf {
		return nil, false
	}

	var path []LinkID
	cur := dst
	for cur != src {
		path = append([]LinkID{prevLink[cur]}, path...)
		cur = prevNode[cur]
	}
	return path, true
}

type nodeDist struct {
	node NodeID
	dist float64
}

type nodeHeap []nodeDist

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(nodeDist)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
