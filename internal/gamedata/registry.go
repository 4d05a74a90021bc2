package gamedata

import "errors"

// ActorRegistry holds loaded actor definitions and provides lookup
// utilities for session setup.
type ActorRegistry struct {
	actors []ActorDef
	byID   map[string]*ActorDef
}

// NewActorRegistry creates a registry from loaded actor definitions.
func NewActorRegistry(actors []ActorDef) *ActorRegistry {
	registry := &ActorRegistry{
		actors: actors,
		byID:   make(map[string]*ActorDef, len(actors)),
	}
	for i := range actors {
		registry.byID[actors[i].ID] = &actors[i]
	}
	return registry
}

// LoadActorRegistry loads and creates a registry from the embedded
// actors.json. A roster without a player cannot start a session, so
// that is an error here rather than later.
func LoadActorRegistry() (*ActorRegistry, error) {
	actors, err := LoadActors()
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, errors.New("no actors loaded from actors.json")
	}
	registry := NewActorRegistry(actors)
	if registry.Player() == nil {
		return nil, errors.New("actors.json defines no player actor")
	}
	return registry, nil
}

// ByID returns the actor definition with the given ID, or nil if not found.
func (r *ActorRegistry) ByID(id string) *ActorDef {
	return r.byID[id]
}

// Player returns the first player definition, or nil if there is none.
func (r *ActorRegistry) Player() *ActorDef {
	for i := range r.actors {
		if r.actors[i].Kind == "player" {
			return &r.actors[i]
		}
	}
	return nil
}

// Enemies returns all enemy definitions in file order.
func (r *ActorRegistry) Enemies() []ActorDef {
	var enemies []ActorDef
	for _, a := range r.actors {
		if a.Kind == "enemy" {
			enemies = append(enemies, a)
		}
	}
	return enemies
}

// All returns all actor definitions.
func (r *ActorRegistry) All() []ActorDef {
	return r.actors
}

// Count returns the number of actor definitions in the registry.
func (r *ActorRegistry) Count() int {
	return len(r.actors)
}
