package ecs

import (
	"errors"
	"fmt"
	"maps"
)

// ErrUnknownComponentType is returned when a component type name cannot be parsed.
var ErrUnknownComponentType = errors.New("unknown component type")

// ComponentType identifies a kind of component. The set of types is closed;
// new component kinds that are not listed here report Custom.
type ComponentType uint8

const (
	User ComponentType = iota
	Movable
	Position
	Renderable
	Hostile
	Damage
	Solid
	Health
	Hud
	Custom
)

var componentTypeNames = [...]string{
	User:       "User",
	Movable:    "Movable",
	Position:   "Position",
	Renderable: "Renderable",
	Hostile:    "Hostile",
	Damage:     "Damage",
	Solid:      "Solid",
	Health:     "Health",
	Hud:        "Hud",
	Custom:     "Custom",
}

// ComponentTypes returns every component type in declaration order.
func ComponentTypes() []ComponentType {
	types := make([]ComponentType, len(componentTypeNames))
	for i := range componentTypeNames {
		types[i] = ComponentType(i)
	}
	return types
}

// String returns the variant name. Signatures are built from these names.
func (t ComponentType) String() string {
	if int(t) < len(componentTypeNames) {
		return componentTypeNames[t]
	}
	return fmt.Sprintf("ComponentType(%d)", uint8(t))
}

// ParseComponentType is the inverse of ComponentType.String.
func ParseComponentType(name string) (ComponentType, error) {
	for i, n := range componentTypeNames {
		if n == name {
			return ComponentType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponentType, name)
}

// MarshalText implements encoding.TextMarshaler so component types appear by
// name in configuration files.
func (t ComponentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ComponentType) UnmarshalText(text []byte) error {
	parsed, err := ParseComponentType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Component is a single typed facet of entity state. Implementations hold only
// owned values so that Clone yields fully independent storage.
type Component interface {
	Type() ComponentType
	Clone() Component
}

// As downcasts a component to its concrete type. It returns false instead of
// panicking when the component is nil or of another type.
func As[T any](c Component) (*T, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := any(c).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Point is an integer 2D position.
type Point struct {
	X, Y int
}

// RenderableComponent carries a drawable position and a rotation in degrees.
type RenderableComponent struct {
	Position Point
	Rotation float64
}

func (r *RenderableComponent) Type() ComponentType { return Renderable }

func (r *RenderableComponent) Clone() Component {
	c := *r
	return &c
}

// SolidComponent is a marker with no fields.
type SolidComponent struct{}

func (s *SolidComponent) Type() ComponentType { return Solid }

func (s *SolidComponent) Clone() Component { return &SolidComponent{} }

// UserComponent marks an entity as driven by user input.
type UserComponent struct{}

func (u *UserComponent) Type() ComponentType { return User }

func (u *UserComponent) Clone() Component { return &UserComponent{} }

// CustomComponent is the extension payload for component kinds outside the
// closed ComponentType set. Kind names the payload for systems that route on it.
type CustomComponent struct {
	Kind  string
	Props map[string]string
}

func (c *CustomComponent) Type() ComponentType { return Custom }

func (c *CustomComponent) Clone() Component {
	return &CustomComponent{
		Kind:  c.Kind,
		Props: maps.Clone(c.Props),
	}
}
