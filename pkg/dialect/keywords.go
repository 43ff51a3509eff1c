package dialect

import (
	"fmt"

	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// KeywordClass says where a keyword may double as an identifier.
//
// The ambiguous classes follow the MySQL grammar: their words are keywords at
// the start of some statements but are perfectly good names elsewhere, except
// in the positions the class excludes.
type KeywordClass int

// KeywordClass constants.
const (
	// Reserved keywords are never identifiers unless quoted.
	Reserved KeywordClass = iota
	// NonReserved keywords are identifiers in every position.
	NonReserved
	// AmbiguousRolesAndLabels keywords cannot name roles or labels (EXECUTE, RESTART, SHUTDOWN).
	AmbiguousRolesAndLabels
	// AmbiguousLabels keywords cannot name labels (BEGIN, COMMIT, HANDLER ...).
	AmbiguousLabels
	// AmbiguousRoles keywords cannot name roles (EVENT, FILE, PROCESS ...).
	AmbiguousRoles
	// AmbiguousSystemVariables keywords cannot be the target of SET (GLOBAL, LOCAL, SESSION ...).
	AmbiguousSystemVariables
)

var keywordClassNames = [...]string{
	"reserved",
	"non-reserved",
	"ambiguous roles and labels",
	"ambiguous labels",
	"ambiguous roles",
	"ambiguous system variables",
}

func (c KeywordClass) String() string {
	if int(c) < len(keywordClassNames) {
		return keywordClassNames[c]
	}
	return fmt.Sprintf("KeywordClass(%d)", int(c))
}

// Allows reports whether a keyword of this class is accepted as an identifier
// in the given context.
func (c KeywordClass) Allows(ctx spi.IdentContext) bool {
	switch c {
	case Reserved:
		return false
	case AmbiguousRolesAndLabels:
		return ctx != spi.IdentLabel && ctx != spi.IdentRole
	case AmbiguousLabels:
		return ctx != spi.IdentLabel
	case AmbiguousRoles:
		return ctx != spi.IdentRole
	case AmbiguousSystemVariables:
		return ctx != spi.IdentLValue
	default:
		return true
	}
}

// Keyword is an entry of a dialect keyword table.
type Keyword struct {
	Word  string // upper-cased spelling
	Type  token.TokenType
	Class KeywordClass
}
