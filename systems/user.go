package systems

import "github.com/plus3/spinframe/ecs"

// User is the slot for input-driven behavior. It currently does nothing with
// the entities it receives.
type User struct{}

func NewUser() *User {
	return &User{}
}

func (u *User) Name() string { return "User" }

func (u *User) ComponentTypes() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.User}
}

func (u *User) Update(*ecs.UpdateFrame) error {
	return nil
}
