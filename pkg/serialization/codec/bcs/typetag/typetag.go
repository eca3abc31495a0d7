// Package typetag parses Move style type tags such as vector<option<u64>> and
// uses them to drive the bcs codec over JSON shaped values.
package typetag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

var ErrUnknownType = errors.New("unknown type tag")

type Kind uint8

const (
	Bool Kind = iota + 1
	U8
	U16
	U32
	U64
	U128
	Address
	EthAddress
	String
	Vector
	Option
)

var scalarNames = map[string]Kind{
	"bool":                Bool,
	"u8":                  U8,
	"u16":                 U16,
	"u32":                 U32,
	"u64":                 U64,
	"u128":                U128,
	"address":             Address,
	"eth_address":         EthAddress,
	"string":              String,
	"0x1::string::String": String,
	"std::string::String": String,
}

var genericNames = map[string]Kind{
	"vector":              Vector,
	"option":              Option,
	"0x1::option::Option": Option,
	"std::option::Option": Option,
}

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case Address:
		return "address"
	case EthAddress:
		return "eth_address"
	case String:
		return "string"
	case Vector:
		return "vector"
	case Option:
		return "option"
	default:
		return "unknown"
	}
}

// Tag is a parsed type. Elem is set for Vector and Option only.
type Tag struct {
	Kind Kind
	Elem *Tag
}

// String renders the canonical form, e.g. vector<option<u64>>.
func (t Tag) String() string {
	if t.Elem == nil {
		return t.Kind.String()
	}
	return t.Kind.String() + "<" + t.Elem.String() + ">"
}

// Depth is the number of containers the tag nests.
func (t Tag) Depth() int {
	if t.Elem == nil {
		return 0
	}
	return 1 + t.Elem.Depth()
}

// Parse reads a type tag. Nesting deeper than the default container depth is
// rejected up front.
func Parse(s string) (Tag, error) {
	return parse(s, 0)
}

func parse(s string, depth uint32) (Tag, error) {
	if depth > bcs.DefaultLimits.MaxContainerDepth {
		return Tag{}, fmt.Errorf("%w: type tag nests deeper than %d", bcs.ErrContainerTooDeep, bcs.DefaultLimits.MaxContainerDepth)
	}
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '<')
	if open < 0 {
		kind, ok := scalarNames[s]
		if !ok {
			return Tag{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return Tag{Kind: kind}, nil
	}
	if !strings.HasSuffix(s, ">") {
		return Tag{}, fmt.Errorf("%w: unbalanced %q", ErrUnknownType, s)
	}
	kind, ok := genericNames[strings.TrimSpace(s[:open])]
	if !ok {
		return Tag{}, fmt.Errorf("%w: %q", ErrUnknownType, s[:open])
	}
	elem, err := parse(s[open+1:len(s)-1], depth+1)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Kind: kind, Elem: &elem}, nil
}

// MustParse is Parse for tags known at compile time.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
