package grid

import (
	"fmt"
	"reflect"
)

// ElementType is the registerable identity of one component type.
// Its reflect.Type is itself comparable, so a Schema can key directly
// off it without minting a separate synthetic id.
type ElementType interface {
	Type() reflect.Type
	fmt.Stringer
}

type elementTypeImpl struct {
	typ reflect.Type
}

func (e *elementTypeImpl) Type() reflect.Type { return e.typ }
func (e *elementTypeImpl) String() string     { return e.typ.String() }

// FactoryNewElementType returns the ElementType identity for T. Two
// calls for the same T compare equal through Type(), so no process-wide
// registry or counter is needed to give T a stable identity across
// worlds.
func FactoryNewElementType[T any]() ElementType {
	return &elementTypeImpl{typ: reflect.TypeFor[T]()}
}
