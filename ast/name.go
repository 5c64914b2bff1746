package ast

import (
	"github.com/speedata/xpathast/optional"
)

// Wildcard is the name part that matches any name.
const Wildcard = "*"

// QNameW is a qualified name whose prefix and local part may each be the
// Wildcard.
type QNameW struct {
	prefix optional.Value[string]
	local  string
}

// Name returns an unprefixed name.
func Name(local string) QNameW {
	return QNameW{local: local}
}

// PrefixedName returns the name prefix:local.
func PrefixedName(prefix, local string) QNameW {
	return QNameW{prefix: optional.Some(prefix), local: local}
}

// Prefix returns the prefix and whether there is one.
func (q QNameW) Prefix() (string, bool) {
	return q.prefix.Get()
}

func (q QNameW) Local() string {
	return q.local
}

// Equals compares two names. A missing prefix equals the empty prefix.
func (q QNameW) Equals(other QNameW) bool {
	return q.prefix.OrElse("") == other.prefix.OrElse("") && q.local == other.local
}

func (q QNameW) String() string {
	if p, ok := q.prefix.Get(); ok && p != "" {
		return p + ":" + q.local
	}
	return q.local
}

func equalNames(a, b QNameW) bool {
	return a.Equals(b)
}
