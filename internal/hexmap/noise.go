package hexmap

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseConfig controls the opensimplex terrain generator.
type NoiseConfig struct {
	Seed        int64
	Scale       float64 // base noise frequency; higher values give choppier terrain
	Octaves     int
	Persistence float64
	BrushLevel  float64 // elevation at or above which cells become forest
	RidgeLevel  float64 // elevation at or above which cells become wall
}

// DefaultNoiseConfig returns generation parameters tuned for the
// default battlefield size.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Scale:       0.18,
		Octaves:     4,
		Persistence: 0.5,
		BrushLevel:  0.62,
		RidgeLevel:  0.80,
	}
}

// SmallTestConfig returns parameters that produce visible terrain
// variation on tiny grids.
func SmallTestConfig() NoiseConfig {
	return NoiseConfig{
		Scale:       0.5,
		Octaves:     2,
		Persistence: 0.5,
		BrushLevel:  0.52,
		RidgeLevel:  0.70,
	}
}

// GenerateNoise creates a grid whose terrain follows banded octave
// noise: walls along the ridges, forest on the brushy slopes, plain
// elsewhere. The same size and config always produce the same grid.
func GenerateNoise(size int, cfg NoiseConfig) *Grid {
	g := NewEmptyGrid(size)
	noise := opensimplex.NewNormalized(cfg.Seed)
	g.Each(func(c *Cell) {
		// Sample in plane space so hex neighbors sit at equal noise
		// distances; raw q,r would stretch the field along one axis.
		x := float64(c.Coord.Q) + float64(c.Coord.R)/2
		y := float64(c.Coord.R) * math.Sqrt(3) / 2
		e := octaveNoise(noise, x, y, cfg)
		switch {
		case e >= cfg.RidgeLevel:
			c.Terrain = TerrainWall
		case e >= cfg.BrushLevel:
			c.Terrain = TerrainForest
		default:
			c.Terrain = TerrainPlain
		}
	})
	return g
}

func octaveNoise(n opensimplex.Noise, x, y float64, cfg NoiseConfig) float64 {
	var total, max float64
	freq, amp := cfg.Scale, 1.0
	for i := 0; i < cfg.Octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amp
		max += amp
		amp *= cfg.Persistence
		freq *= 2
	}
	if max == 0 {
		return 0
	}
	return total / max
}
