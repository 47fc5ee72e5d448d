package typekey

import (
	"fmt"
	"reflect"
)

// Type is a comparable descriptor of a static Go type. Descriptors are
// captured explicitly at bind and retrieval sites from the generic
// parameter, never recovered from a runtime value.
type Type struct {
	rt reflect.Type
}

// Of captures the descriptor for T. Interface types are captured as the
// interface itself, not as a concrete implementation.
func Of[T any]() Type {
	return Type{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// FromReflect wraps an already-obtained reflect.Type. Used by subtype
// dispatch, where the requested type is only known at resolution time.
func FromReflect(rt reflect.Type) Type {
	return Type{rt: rt}
}

func (t Type) IsZero() bool {
	return t.rt == nil
}

func (t Type) Reflect() reflect.Type {
	return t.rt
}

// IsSubtypeOf reports whether a value of type t can satisfy a request for
// type other: exact identity, interface implementation, or Go
// assignability.
func (t Type) IsSubtypeOf(other Type) bool {
	if t.rt == nil || other.rt == nil {
		return false
	}
	if t.rt == other.rt {
		return true
	}
	if other.rt.Kind() == reflect.Interface {
		return t.rt.Implements(other.rt)
	}
	return t.rt.AssignableTo(other.rt)
}

func (t Type) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return typeName(t.rt)
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeName(t.Elem()))
	case reflect.Map:
		return "map[" + typeName(t.Key()) + "]" + typeName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + typeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + typeName(t.Elem())
		default:
			return "chan " + typeName(t.Elem())
		}
	case reflect.Func:
		return t.String()
	default:
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}

// Key is the identity of a binding: bound type, optional tag, optional
// argument type. Keys are structural map keys; two keys differing only in
// tag address distinct bindings. Tags must be comparable values (strings,
// ints, value structs); an incomparable tag panics on first map insert.
type Key struct {
	Bound Type
	Tag   any
	Arg   Type
}

func New[T any]() Key {
	return Key{Bound: Of[T]()}
}

func NewTagged[T any](tag any) Key {
	return Key{Bound: Of[T](), Tag: tag}
}

func NewWithArg[A, T any](tag any) Key {
	return Key{Bound: Of[T](), Tag: tag, Arg: Of[A]()}
}

func (k Key) HasArg() bool {
	return !k.Arg.IsZero()
}

func (k Key) String() string {
	s := k.Bound.String()
	if k.HasArg() {
		s = k.Arg.String() + " -> " + s
	}
	if k.Tag != nil {
		s += fmt.Sprintf("#%v", k.Tag)
	}
	return s
}
