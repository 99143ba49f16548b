// Package types implements the compiler's small structural type system:
// the Int, Bool, Unit and Function primitive types plus const-qualified
// variants of Int and Bool.
package types

// Name identifies a primitive type regardless of its const qualification.
type Name int

const (
	Int Name = iota
	Bool
	Unit
	Function
)

func (n Name) String() string {
	switch n {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case Unit:
		return "Unit"
	case Function:
		return "Function"
	default:
		return "Unknown"
	}
}

// Type is implemented by PrimitiveType and ConstType. Equal is symmetric:
// a ConstType and a PrimitiveType of the same Name compare equal in either
// argument order, so a const binding is interchangeable with its
// unqualified type everywhere except reassignment.
type Type interface {
	BaseName() Name
	IsConst() bool
	Equal(other Type) bool
	String() string
}

// PrimitiveType is an unqualified Int, Bool, Unit, or Function type.
type PrimitiveType struct {
	Name Name
}

func (p PrimitiveType) BaseName() Name { return p.Name }
func (p PrimitiveType) IsConst() bool  { return false }
func (p PrimitiveType) String() string { return p.Name.String() }

func (p PrimitiveType) Equal(other Type) bool {
	return other != nil && other.BaseName() == p.Name
}

// ConstType is the type of a `const`-declared Int or Bool binding. It
// compares equal to the corresponding PrimitiveType for compatibility
// purposes; only the declaring type checker inspects IsConst() to reject
// reassignment.
type ConstType struct {
	Name Name
}

func (c ConstType) BaseName() Name { return c.Name }
func (c ConstType) IsConst() bool  { return true }
func (c ConstType) String() string { return "const " + c.Name.String() }

func (c ConstType) Equal(other Type) bool {
	return other != nil && other.BaseName() == c.Name
}

// Convenience singletons for the non-const primitives, used throughout the
// pipeline wherever a fixed type is needed.
var (
	IntType      Type = PrimitiveType{Name: Int}
	BoolType     Type = PrimitiveType{Name: Bool}
	UnitType     Type = PrimitiveType{Name: Unit}
	FunctionType Type = PrimitiveType{Name: Function}
)

// Const wraps name in a ConstType. Only Int and Bool are ever wrapped in
// practice.
func Const(name Name) Type {
	return ConstType{Name: name}
}
