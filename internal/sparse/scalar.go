package sparse

import "fmt"

// Scalar is the closed set of value kinds a container may hold.
type Scalar interface {
	bool | int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint |
		float32 | float64
}

// Kind enumerates the scalar kinds.
type Kind uint8

const (
	// KindNone marks the absence of a value.
	KindNone Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindFloat32
	KindFloat64

	// NumKinds is the number of kinds including KindNone.
	NumKinds = int(KindFloat64) + 1
)

var kindNames = [NumKinds]string{
	KindNone:    "none",
	KindBool:    "bool",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindInt:     "int",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindUint:    "uint",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

func (k Kind) String() string {
	if int(k) < NumKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name && Kind(i) != KindNone {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("sparse: unknown scalar kind %q", name)
}

// KindOf returns the kind of T.
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case int:
		return KindInt
	case uint8:
		return KindUint8
	case uint16:
		return KindUint16
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case uint:
		return KindUint
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	}
	panic("sparse: unreachable scalar kind")
}
