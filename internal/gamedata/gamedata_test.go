package gamedata

import "testing"

func TestLoadActors(t *testing.T) {
	actors, err := LoadActors()
	if err != nil {
		t.Fatalf("Failed to load actors: %v", err)
	}

	if len(actors) != 4 {
		t.Errorf("Expected 4 actors, got %d", len(actors))
	}

	// Verify expected actors exist
	expectedIDs := map[string]bool{"vanguard": false, "grunt-1": false, "grunt-2": false, "archer-1": false}
	for _, a := range actors {
		if _, ok := expectedIDs[a.ID]; ok {
			expectedIDs[a.ID] = true
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected actor %q not found", id)
		}
	}
}

func TestActorRegistry(t *testing.T) {
	registry, err := LoadActorRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 4 {
		t.Errorf("Expected 4 actor definitions, got %d", registry.Count())
	}

	grunt := registry.ByID("grunt-1")
	if grunt == nil {
		t.Fatal("Grunt not found by ID")
	}
	if grunt.Name != "Grunt" {
		t.Errorf("Expected name 'Grunt', got %q", grunt.Name)
	}
	if grunt.Kind != "enemy" {
		t.Errorf("Expected kind 'enemy', got %q", grunt.Kind)
	}

	player := registry.Player()
	if player == nil {
		t.Fatal("Registry has no player definition")
	}
	if player.ID != "vanguard" {
		t.Errorf("Expected player 'vanguard', got %q", player.ID)
	}

	enemies := registry.Enemies()
	if len(enemies) != 3 {
		t.Errorf("Expected 3 enemy definitions, got %d", len(enemies))
	}
	for _, e := range enemies {
		if e.Kind != "enemy" {
			t.Errorf("Enemies() returned %q with kind %q", e.ID, e.Kind)
		}
	}
}

func TestRegistryValidation(t *testing.T) {
	tests := []struct {
		name   string
		actors []ActorDef
	}{
		{"no id", []ActorDef{{Kind: "enemy", HP: 5, Move: 3}}},
		{"bad kind", []ActorDef{{ID: "x", Kind: "boss", HP: 5, Move: 3}}},
		{"no hp", []ActorDef{{ID: "x", Kind: "enemy", Move: 3}}},
		{"no move", []ActorDef{{ID: "x", Kind: "enemy", HP: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateActors(tt.actors); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF4040", true},
		{"FFD700", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"not-a-color", false},
		{"#FFF", false}, // Too short
		{"#GGGGGG", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestActorDefMethods(t *testing.T) {
	def := ActorDef{
		ID:    "test",
		Name:  "Test Actor",
		Kind:  "enemy",
		Glyph: "T",
		Color: "#FF0000",
		HP:    10,
		Move:  6,
	}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}

	def.Glyph = ""
	if def.GlyphRune() != '?' {
		t.Errorf("Expected fallback glyph '?', got %c", def.GlyphRune())
	}

	color := def.TCellColor()
	if color == 0 {
		t.Error("TCellColor returned zero color")
	}

	def.Color = "nonsense"
	if def.TCellColor() == 0 {
		t.Error("TCellColor fallback returned zero color")
	}
}
