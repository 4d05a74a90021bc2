// Package pathfind implements budget-limited A* over a hex cost source.
package pathfind

import (
	"container/heap"

	"github.com/ajmoran/hexfray/internal/hexmap"
)

// CostSource supplies terrain costs and adjacency to the search.
// *hexmap.Grid satisfies it.
type CostSource interface {
	// CostAt returns the cost of entering the coordinate and whether
	// it can be entered at all.
	CostAt(hexmap.Axial) (int, bool)
	// Neighbors returns the six adjacent coordinates in canonical order.
	Neighbors(hexmap.Axial) [6]hexmap.Axial
}

// node is a frontier entry. seq breaks f-score ties by insertion order
// so equal-cost searches expand deterministically.
type node struct {
	coord hexmap.Axial
	g     int
	f     int
	seq   int
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// FindPath runs A* from start to goal and returns the path including
// both endpoints, or nil when no path exists. When budget is
// non-negative the fully reconstructed path is truncated to budget
// steps (budget+1 entries); truncation never changes the route, only
// where it is cut off. A negative budget means unlimited.
//
// The start cell is not cost-checked: a mover searches from the cell
// it already occupies. The goal must be enterable.
func FindPath(src CostSource, start, goal hexmap.Axial, budget int) []hexmap.Axial {
	if _, ok := src.CostAt(goal); !ok {
		return nil
	}
	if start == goal {
		return []hexmap.Axial{start}
	}

	open := &nodeHeap{{coord: start, g: 0, f: hexmap.Distance(start, goal)}}
	heap.Init(open)

	gScore := map[hexmap.Axial]int{start: 0}
	cameFrom := map[hexmap.Axial]hexmap.Axial{}
	closed := map[hexmap.Axial]bool{}
	seq := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if closed[cur.coord] {
			continue
		}
		closed[cur.coord] = true

		if cur.coord == goal {
			return truncate(reconstruct(cameFrom, start, goal), budget)
		}

		for _, next := range src.Neighbors(cur.coord) {
			if closed[next] {
				continue
			}
			cost, ok := src.CostAt(next)
			if !ok {
				continue
			}
			ng := cur.g + cost
			if old, seen := gScore[next]; seen && ng >= old {
				continue
			}
			gScore[next] = ng
			cameFrom[next] = cur.coord
			seq++
			heap.Push(open, &node{
				coord: next,
				g:     ng,
				f:     ng + hexmap.Distance(next, goal),
				seq:   seq,
			})
		}
	}

	return nil
}

func reconstruct(cameFrom map[hexmap.Axial]hexmap.Axial, start, goal hexmap.Axial) []hexmap.Axial {
	path := []hexmap.Axial{goal}
	for cur := goal; cur != start; {
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func truncate(path []hexmap.Axial, budget int) []hexmap.Axial {
	if budget < 0 || len(path) <= budget+1 {
		return path
	}
	return path[:budget+1]
}
