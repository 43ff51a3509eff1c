package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// StraightJoin is MySQL's STRAIGHT_JOIN, auto-wired by Features.StraightJoin.
var StraightJoin = JoinTypeDef{
	Token:      token.STRAIGHT_JOIN,
	Type:       core.JoinStraight,
	Standalone: true,
}

// ANSIJoinTypes contains standard SQL join types.
var ANSIJoinTypes = []JoinTypeDef{
	{
		Token:       token.INNER,
		Type:        core.JoinInner,
		RequiresOn:  true,
		AllowsUsing: true,
	},
	{
		Token:         token.LEFT,
		Type:          core.JoinLeft,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token:         token.RIGHT,
		Type:          core.JoinRight,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token:         token.FULL,
		Type:          core.JoinFull,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token: token.CROSS,
		Type:  core.JoinCross,
	},
}

// MySQLJoinTypes contains the MySQL join types. INNER and CROSS are synonyms
// there: both take an optional join condition. MySQL has no FULL join.
var MySQLJoinTypes = []JoinTypeDef{
	{
		Token:       token.INNER,
		Type:        core.JoinInner,
		AllowsUsing: true,
	},
	{
		Token:       token.CROSS,
		Type:        core.JoinCross,
		AllowsUsing: true,
	},
	{
		Token:         token.LEFT,
		Type:          core.JoinLeft,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
	{
		Token:         token.RIGHT,
		Type:          core.JoinRight,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
		AllowsUsing:   true,
	},
}
