package ecs

// System is an update unit driven once per frame. The scheduler asks for its
// component types, resolves matching entities through the World and hands them
// over in UpdateFrame.Entities. Systems keep their own state between frames.
type System interface {
	ComponentTypes() []ComponentType
	Update(frame *UpdateFrame) error
}

// SystemFunc adapts a function to a System with fixed component types.
type SystemFunc struct {
	Types []ComponentType
	Fn    func(frame *UpdateFrame) error
}

func (s SystemFunc) ComponentTypes() []ComponentType { return s.Types }

func (s SystemFunc) Update(frame *UpdateFrame) error {
	if s.Fn == nil {
		return nil
	}
	return s.Fn(frame)
}
