package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func init() {
	dialect.MustRegister(MySQL)
}

// MySQLGroupBy is GROUP BY with the trailing WITH ROLLUP.
var MySQLGroupBy = dialect.GroupBy(dialect.GroupByOpts{AllowRollup: true})

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).
	// Keywords: shared grammar words first, then the MySQL classes
	Keywords(dialect.NonReserved, dialect.CoreKeywords...).
	Keywords(dialect.NonReserved, grammarWords...).
	Keywords(dialect.Reserved, reservedWords...).
	Keywords(dialect.AmbiguousRolesAndLabels, rolesAndLabelsWords...).
	Keywords(dialect.AmbiguousLabels, labelWords...).
	Keywords(dialect.AmbiguousRoles, roleWords...).
	Keywords(dialect.AmbiguousSystemVariables, systemVariableWords...).
	// Clause sequence
	Clauses(dialect.StandardSelectClauses...).
	AddClauseAfter(token.WHERE, MySQLGroupBy).
	// Operators and joins (JSON operators and STRAIGHT_JOIN are auto-wired)
	Operators(dialect.MySQLOperators).
	JoinTypes(dialect.MySQLJoinTypes).
	// Data administration statements
	Statement("SHOW", parseShow).
	Statement("SET", parseSet).
	Statement("EXPLAIN", parseExplain).
	Statement("DESCRIBE", parseExplain).
	Statement("DESC", parseExplain).
	Statement("USE", parseUse).
	Statement("HELP", parseHelp).
	Statement("DO", parseDo).
	Statement("HANDLER", parseHandler).
	Statement("LOAD", parseLoad).
	Statement("IMPORT", parseImport).
	Statement("ANALYZE", parseAnalyze).
	Statement("CHECK", parseCheck).
	Statement("CHECKSUM", parseChecksum).
	Statement("OPTIMIZE", parseOptimize).
	Statement("REPAIR", parseRepair).
	Statement("FLUSH", parseFlush).
	Statement("KILL", parseKill).
	Statement("CACHE", parseCacheIndex).
	Statement("RESET", parseReset).
	Statement("RESTART", parseRestart).
	Statement("SHUTDOWN", parseShutdown).
	Statement("CLONE", parseClone).
	Statement("INSTALL", parseInstall).
	Statement("UNINSTALL", parseUninstall).
	Statement("BINLOG", parseBinlog).
	Statement("CREATE", parseCreate).
	Statement("ALTER", parseAlter).
	Statement("DROP", parseDrop).
	Build()
