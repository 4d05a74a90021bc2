package hexmap

import "testing"

func TestGridReproducibility(t *testing.T) {
	// Two grids with the same seed must match cell for cell.
	g1 := NewGrid(10, 12345)
	g2 := NewGrid(10, 12345)

	mismatch := 0
	g1.Each(func(c *Cell) {
		if g2.Cell(c.Coord).Terrain != c.Terrain {
			mismatch++
		}
	})
	if mismatch != 0 {
		t.Errorf("same seed produced %d differing cells", mismatch)
	}
}

func TestGridDifferentSeeds(t *testing.T) {
	g1 := NewGrid(10, 12345)
	g2 := NewGrid(10, 54321)

	identical := true
	g1.Each(func(c *Cell) {
		if g2.Cell(c.Coord).Terrain != c.Terrain {
			identical = false
		}
	})
	if identical {
		t.Error("different seeds produced identical terrain")
	}
}

func TestGridBounds(t *testing.T) {
	g := NewEmptyGrid(10)

	lo, hi := g.Bounds()
	if lo != -5 || hi != 5 {
		t.Fatalf("Bounds() = %d, %d, want -5, 5", lo, hi)
	}

	if !g.Contains(Axial{-5, -5}) || !g.Contains(Axial{5, 5}) {
		t.Error("corner cells missing")
	}
	if g.Contains(Axial{6, 0}) {
		t.Error("grid contains out-of-range coordinate")
	}
	if g.Cell(Axial{0, 6}) != nil {
		t.Error("Cell outside the grid should be nil")
	}
}

func TestGridCostAt(t *testing.T) {
	g := NewEmptyGrid(4)
	g.SetTerrain(Axial{1, 0}, TerrainForest)
	g.SetTerrain(Axial{0, 1}, TerrainWall)

	tests := []struct {
		name     string
		at       Axial
		wantCost int
		wantOK   bool
	}{
		{"plain", Axial{0, 0}, 1, true},
		{"forest", Axial{1, 0}, 2, true},
		{"wall", Axial{0, 1}, 0, false},
		{"off grid", Axial{9, 9}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, ok := g.CostAt(tt.at)
			if cost != tt.wantCost || ok != tt.wantOK {
				t.Errorf("CostAt(%v) = %d, %v, want %d, %v", tt.at, cost, ok, tt.wantCost, tt.wantOK)
			}
		})
	}
}

func TestGridBlockUnblock(t *testing.T) {
	g := NewEmptyGrid(4)
	at := Axial{1, 1}

	g.Block(at)
	if _, ok := g.CostAt(at); ok {
		t.Error("blocked cell should not be enterable")
	}
	if g.Cell(at).Passable() {
		t.Error("blocked cell reports passable")
	}

	g.Unblock(at)
	if _, ok := g.CostAt(at); !ok {
		t.Error("unblocked cell should be enterable again")
	}

	// Blocking outside the grid must not panic.
	g.Block(Axial{99, 99})
	g.Unblock(Axial{99, 99})
}

func TestGridSnapshotRoundTrip(t *testing.T) {
	g := NewGrid(6, 7)
	g.Block(Axial{1, -1})

	rebuilt := FromSnapshot(g.Size(), g.Snapshot())

	g.Each(func(c *Cell) {
		rc := rebuilt.Cell(c.Coord)
		if rc == nil {
			t.Fatalf("rebuilt grid missing %v", c.Coord)
		}
		if rc.Terrain != c.Terrain {
			t.Errorf("terrain mismatch at %v: %v != %v", c.Coord, rc.Terrain, c.Terrain)
		}
		if rc.Blocked() != c.Blocked() {
			t.Errorf("blocked mismatch at %v", c.Coord)
		}
	})
}

func TestGenerateNoiseReproducibility(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Seed = 99

	g1 := GenerateNoise(10, cfg)
	g2 := GenerateNoise(10, cfg)

	g1.Each(func(c *Cell) {
		if g2.Cell(c.Coord).Terrain != c.Terrain {
			t.Fatalf("noise terrain mismatch at %v", c.Coord)
		}
	})

	// The generator should produce more than one terrain kind on a
	// reasonably sized grid.
	seen := map[Terrain]bool{}
	g1.Each(func(c *Cell) { seen[c.Terrain] = true })
	if len(seen) < 2 {
		t.Errorf("noise generation produced uniform terrain: %v", seen)
	}
}
