package ecsgrid

import "fmt"

// CapacityExceededError is returned when a Cache is asked to hold one
// more entry than its fixed limit allows. Component registration past
// its limit reports grid.CapacityExceededError instead.
type CapacityExceededError struct {
	Limit int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: limit is %d", e.Limit)
}

// UnknownComponentError is returned when a Component was never
// registered on the world it's being used against.
type UnknownComponentError struct {
	Component Component
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component: %T", e.Component)
}

// DeadEntityError is returned when an operation targets an entity that
// has already been removed.
type DeadEntityError struct {
	ID int
}

func (e DeadEntityError) Error() string {
	return fmt.Sprintf("entity %d is dead", e.ID)
}

// OutOfRangeError is returned when a row-id or lazy range index falls
// outside the space it's being looked up in.
type OutOfRangeError struct {
	Index int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range", e.Index)
}

// LockedWorldError is returned by structural operations attempted while
// the world is locked (mid-dispatch).
type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked"
}

// EntityRelationError is returned by SetParent when the child already
// has a parent.
type EntityRelationError struct {
	Child, Parent int
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("entity %d already has parent %d", e.Child, e.Parent)
}
