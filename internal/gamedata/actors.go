package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ActorDef defines a battlefield actor loaded from JSON.
type ActorDef struct {
	ID            string `json:"id"`            // Unique identifier (e.g., "grunt-1")
	Name          string `json:"name"`          // Display name (e.g., "Grunt")
	Kind          string `json:"kind"`          // "player" or "enemy"
	Glyph         string `json:"glyph"`         // Single character for rendering (e.g., "g")
	Color         string `json:"color"`         // Hex color code (e.g., "#FF4040")
	HP            int    `json:"hp"`            // Starting hit points
	Move          int    `json:"move"`          // Path budget in cells per plan
	ChaseDistance int    `json:"chaseDistance"` // Hexes within which an enemy gives chase
	Ranged        bool   `json:"ranged"`        // Whether the actor attacks beyond adjacency
	Q             int    `json:"q"`             // Spawn column (axial)
	R             int    `json:"r"`             // Spawn row (axial)
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ActorDef) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '?'
	}
	return rune(a.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (a *ActorDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// ActorsFile represents the structure of actors.json.
type ActorsFile struct {
	Actors []ActorDef `json:"actors"`
}

// LoadActors loads actor definitions from the embedded actors.json file
// and rejects definitions the battle could not spawn.
func LoadActors() ([]ActorDef, error) {
	file, err := Load[ActorsFile]("actors.json")
	if err != nil {
		return nil, err
	}
	if err := validateActors(file.Actors); err != nil {
		return nil, err
	}
	return file.Actors, nil
}

func validateActors(actors []ActorDef) error {
	for i := range actors {
		a := &actors[i]
		if a.ID == "" {
			return fmt.Errorf("actor %d has no id", i)
		}
		if a.Kind != "player" && a.Kind != "enemy" {
			return fmt.Errorf("actor %q has unknown kind %q", a.ID, a.Kind)
		}
		if a.HP <= 0 {
			return fmt.Errorf("actor %q has no hit points", a.ID)
		}
		if a.Move <= 0 {
			return fmt.Errorf("actor %q has no movement", a.ID)
		}
	}
	return nil
}
