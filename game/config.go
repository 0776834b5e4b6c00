// Package game wires configuration, the startup entity set and the built-in
// systems into a runnable world and scheduler.
package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/spinframe/ecs"
)

var (
	// ErrUnknownBackend is returned for a backend name no platform implements.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrMissingComponentType is returned for a component entry without a type key.
	ErrMissingComponentType = errors.New("component type is required")
)

// Backend names accepted in Config.Backend.
const (
	BackendDesktop  = "desktop"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Config is the runtime configuration, loadable from YAML.
type Config struct {
	Window        WindowConfig   `yaml:"window"`
	Backend       string         `yaml:"backend"`
	FrameInterval time.Duration  `yaml:"frame_interval"`
	Actors        bool           `yaml:"actors"`
	MailboxSize   int            `yaml:"mailbox_size"`
	DebugUI       bool           `yaml:"debug_ui"`
	Log           LogConfig      `yaml:"log"`
	Physics       PhysicsConfig  `yaml:"physics"`
	Entities      []EntityConfig `yaml:"entities"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type PhysicsConfig struct {
	Step float64 `yaml:"step"`
}

// EntityConfig lists the components of one startup entity.
type EntityConfig struct {
	Components []ComponentConfig `yaml:"components"`
}

// ComponentConfig describes one component. Which fields apply depends on Type.
type ComponentConfig struct {
	Type     ecs.ComponentType `yaml:"type"`
	X        int               `yaml:"x,omitempty"`
	Y        int               `yaml:"y,omitempty"`
	Rotation float64           `yaml:"rotation,omitempty"`
	Kind     string            `yaml:"kind,omitempty"`
	Props    map[string]string `yaml:"props,omitempty"`
}

var componentConfigKeys = map[string]bool{
	"type": true, "x": true, "y": true, "rotation": true, "kind": true, "props": true,
}

// UnmarshalYAML requires the type key. The zero ComponentType is a valid
// variant, so an absent key cannot be detected after decoding.
func (c *ComponentConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: component must be a mapping", node.Line)
	}

	hasType := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		// node.Decode does not inherit the outer decoder's KnownFields
		if !componentConfigKeys[key] {
			return fmt.Errorf("line %d: field %s not found in component", node.Content[i].Line, key)
		}
		if key == "type" {
			hasType = true
		}
	}
	if !hasType {
		return fmt.Errorf("line %d: %w", node.Line, ErrMissingComponentType)
	}

	type plain ComponentConfig
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*c = ComponentConfig(decoded)
	return nil
}

// Build turns the description into a component value.
func (c ComponentConfig) Build() (ecs.Component, error) {
	switch c.Type {
	case ecs.Renderable:
		return &ecs.RenderableComponent{
			Position: ecs.Point{X: c.X, Y: c.Y},
			Rotation: c.Rotation,
		}, nil
	case ecs.Solid:
		return &ecs.SolidComponent{}, nil
	case ecs.User:
		return &ecs.UserComponent{}, nil
	case ecs.Custom:
		custom := &ecs.CustomComponent{Kind: c.Kind, Props: c.Props}
		return custom.Clone(), nil
	default:
		return nil, fmt.Errorf("no component variant for type %s", c.Type)
	}
}

// DefaultConfig returns the built-in configuration, including the startup
// entity set: a renderable at (50,60) rotated 3°, a solid marker, and a
// solid renderable at (100,80) rotated 2°.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "spinframe",
			Width:  800,
			Height: 600,
		},
		Backend:     BackendDesktop,
		MailboxSize: 1,
		Log: LogConfig{
			Level: "info",
		},
		Physics: PhysicsConfig{
			Step: 1.0,
		},
		Entities: []EntityConfig{
			{Components: []ComponentConfig{
				{Type: ecs.Renderable, X: 50, Y: 60, Rotation: 3},
			}},
			{Components: []ComponentConfig{
				{Type: ecs.Solid},
			}},
			{Components: []ComponentConfig{
				{Type: ecs.Renderable, X: 100, Y: 80, Rotation: 2},
				{Type: ecs.Solid},
			}},
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no backend can run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Backend {
	case BackendDesktop, BackendTerminal, BackendHeadless:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.FrameInterval < 0 {
		return fmt.Errorf("frame_interval must not be negative, got %s", c.FrameInterval)
	}
	if c.MailboxSize < 0 {
		return fmt.Errorf("mailbox_size must not be negative, got %d", c.MailboxSize)
	}
	for i, entity := range c.Entities {
		for j, component := range entity.Components {
			if _, err := component.Build(); err != nil {
				return fmt.Errorf("entities[%d].components[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}
