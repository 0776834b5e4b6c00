package ecs

import (
	"context"
	"errors"
	"reflect"
)

// ErrActorStopped is returned when a request is sent to an actor whose
// goroutine has exited.
var ErrActorStopped = errors.New("actor stopped")

// Unit is an independently addressable wrapper around a System. The scheduler
// talks to systems only through units, so a system can run inline or on its
// own goroutine without the scheduler changing.
type Unit interface {
	Name() string
	ComponentTypes(ctx context.Context) ([]ComponentType, error)
	Update(ctx context.Context, frame *UpdateFrame) error
}

// Named lets a system choose the name it is reported under.
type Named interface {
	Name() string
}

func systemName(system System) string {
	if named, ok := system.(Named); ok {
		return named.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// directUnit calls the system synchronously on the caller's goroutine.
type directUnit struct {
	name   string
	system System
}

func newDirectUnit(system System) *directUnit {
	return &directUnit{name: systemName(system), system: system}
}

func (u *directUnit) Name() string { return u.name }

func (u *directUnit) ComponentTypes(ctx context.Context) ([]ComponentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return u.system.ComponentTypes(), nil
}

func (u *directUnit) Update(ctx context.Context, frame *UpdateFrame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.system.Update(frame)
}

type messageKind uint8

const (
	messageComponentTypes messageKind = iota
	messageUpdate
)

type actorMessage struct {
	kind  messageKind
	frame *UpdateFrame
	reply chan actorReply
}

type actorReply struct {
	types []ComponentType
	err   error
}

// actorUnit owns a goroutine and a mailbox. Each request blocks until the
// actor replies, so dispatch stays sequential.
type actorUnit struct {
	name    string
	system  System
	mailbox chan actorMessage
	done    chan struct{}
}

func newActorUnit(system System, mailboxSize int) *actorUnit {
	return &actorUnit{
		name:    systemName(system),
		system:  system,
		mailbox: make(chan actorMessage, mailboxSize),
		done:    make(chan struct{}),
	}
}

func (a *actorUnit) Name() string { return a.name }

// run processes the mailbox until ctx is cancelled.
func (a *actorUnit) run(ctx context.Context) error {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-a.mailbox:
			switch msg.kind {
			case messageComponentTypes:
				msg.reply <- actorReply{types: a.system.ComponentTypes()}
			case messageUpdate:
				msg.reply <- actorReply{err: a.system.Update(msg.frame)}
			}
		}
	}
}

func (a *actorUnit) request(ctx context.Context, msg actorMessage) (actorReply, error) {
	msg.reply = make(chan actorReply, 1)

	select {
	case a.mailbox <- msg:
	case <-a.done:
		return actorReply{}, ErrActorStopped
	case <-ctx.Done():
		return actorReply{}, ctx.Err()
	}

	select {
	case r := <-msg.reply:
		return r, nil
	case <-a.done:
		return actorReply{}, ErrActorStopped
	case <-ctx.Done():
		return actorReply{}, ctx.Err()
	}
}

func (a *actorUnit) ComponentTypes(ctx context.Context) ([]ComponentType, error) {
	r, err := a.request(ctx, actorMessage{kind: messageComponentTypes})
	if err != nil {
		return nil, err
	}
	return r.types, nil
}

func (a *actorUnit) Update(ctx context.Context, frame *UpdateFrame) error {
	r, err := a.request(ctx, actorMessage{kind: messageUpdate, frame: frame})
	if err != nil {
		return err
	}
	return r.err
}
