package transcoder

import (
	"strings"

	"github.com/wippyai/cairo-io/sierra"
)

type userTypeClass uint8

const (
	userTypeGeneric userTypeClass = iota
	userTypePanicResult
	userTypeBool
	userTypeSpan
	userTypeF64
	userTypeByteArray
)

// classifyUserType maps a compiler user type name to the decoding convention it follows.
// All name matching against compiler internals lives here.
func classifyUserType(name string) userTypeClass {
	switch {
	case strings.HasPrefix(name, sierra.NamePanicResult):
		return userTypePanicResult
	case name == sierra.NameBool:
		return userTypeBool
	case strings.HasPrefix(name, sierra.NameSpan):
		return userTypeSpan
	case strings.HasPrefix(name, sierra.NameF64):
		return userTypeF64
	case name == sierra.NameByteArray:
		return userTypeByteArray
	default:
		return userTypeGeneric
	}
}

func classify(info *sierra.TypeInfo) userTypeClass {
	name, ok := info.UserTypeName()
	if !ok {
		return userTypeGeneric
	}
	return classifyUserType(name)
}
