package ecs

// UpdateFrame is what a system receives for one frame.
type UpdateFrame struct {
	Index     uint64
	DeltaTime float64
	Entities  []*EntityRef
	Commands  *Commands
}

func newUpdateFrame(index uint64, dt float64, commands *Commands, entities []*EntityRef) *UpdateFrame {
	return &UpdateFrame{
		Index:     index,
		DeltaTime: dt,
		Entities:  entities,
		Commands:  commands,
	}
}
