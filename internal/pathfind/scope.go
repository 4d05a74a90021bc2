package pathfind

import "github.com/ajmoran/hexfray/internal/hexmap"

// BlockableSource is a cost source whose cells can carry transient
// search obstacles.
type BlockableSource interface {
	CostSource
	Block(hexmap.Axial)
	Unblock(hexmap.Axial)
}

// WithBlocked marks the given coordinates as obstacles, runs fn, and
// clears the marks again, panics included. Planners use it so other
// actors' cells obstruct a search only for its duration.
func WithBlocked(src BlockableSource, coords []hexmap.Axial, fn func()) {
	for _, c := range coords {
		src.Block(c)
	}
	defer func() {
		for _, c := range coords {
			src.Unblock(c)
		}
	}()
	fn()
}
