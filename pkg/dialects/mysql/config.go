// Package mysql provides the MySQL dialect: the full shared grammar plus the
// MySQL statement branches (SHOW, SET, EXPLAIN, table maintenance, HANDLER,
// LOAD DATA and the server administration statements).
package mysql

import "github.com/leapstack-labs/sqlfront/pkg/core"

// Config is the MySQL dialect configuration.
// The Builder reads feature flags and auto-wires JSON operators and
// STRAIGHT_JOIN.
var Config = &core.DialectConfig{
	Name:        "mysql",
	Aliases:     []string{"mariadb"},
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive,
	},

	Lexical: core.LexicalFeatures{
		HashComments:          true,
		DashCommentNeedsSpace: true,
		ExecutableComments:    true,
		BackslashEscapes:      true,
		BacktickIdentifiers:   true,
		DigitLeadingIdents:    true,
	},

	Features: core.GrammarFeatures{
		OnDuplicateKey:   true,
		LimitComma:       true,
		IndexHints:       true,
		LockInShareMode:  true,
		SelectInto:       true,
		MultiTableDelete: true,
		Replace:          true,
		StraightJoin:     true,
		JSONOperators:    true,
	},

	Aggregates: []string{
		"AVG", "BIT_AND", "BIT_OR", "BIT_XOR", "COUNT", "GROUP_CONCAT",
		"JSON_ARRAYAGG", "JSON_OBJECTAGG", "MAX", "MIN",
		"STD", "STDDEV", "STDDEV_POP", "STDDEV_SAMP", "SUM",
		"VAR_POP", "VAR_SAMP", "VARIANCE", "ANY_VALUE",
	},
	Windows: []string{
		"CUME_DIST", "DENSE_RANK", "FIRST_VALUE", "LAG", "LAST_VALUE", "LEAD",
		"NTH_VALUE", "NTILE", "PERCENT_RANK", "RANK", "ROW_NUMBER",
	},
	NiladicFunctions: []string{
		"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER",
		"LOCALTIME", "LOCALTIMESTAMP", "UTC_DATE", "UTC_TIME", "UTC_TIMESTAMP",
	},
}

// grammarWords are the MySQL words of the shared grammar beyond
// dialect.CoreKeywords. They are added as non-reserved first; the reserved
// ones are reclassified by reservedWords.
var grammarWords = []string{
	"AGAINST", "BINARY", "CHARSET", "DELAYED", "DISTINCTROW", "DIV", "DUAL", "DUMPFILE",
	"DUPLICATE", "ENCLOSED", "ESCAPED", "FIELDS", "FORCE", "GROUP_CONCAT", "HIGH_PRIORITY",
	"IGNORE", "INDEX", "LINES", "LOCK", "LOW_PRIORITY", "MATCH", "MEMBER", "MOD", "MODE",
	"OPTIONALLY", "OUTFILE", "QUICK", "REGEXP", "REPLACE", "RLIKE", "ROLLUP", "SEPARATOR",
	"SOUNDS", "SQL_BIG_RESULT", "SQL_BUFFER_RESULT", "SQL_CALC_FOUND_ROWS", "SQL_NO_CACHE",
	"SQL_SMALL_RESULT", "STARTING", "STRAIGHT_JOIN", "SUBSTR", "TERMINATED", "USE", "VALUE",
	"XOR",
}

// reservedWords are the MySQL 8.0 reserved words. Words the grammar never
// looks at are still listed so they need quoting as names, as on the server.
var reservedWords = []string{
	"ACCESSIBLE", "ADD", "ALL", "ALTER", "ANALYZE", "AND", "ARRAY", "AS", "ASC", "ASENSITIVE",
	"BEFORE", "BETWEEN", "BIGINT", "BINARY", "BLOB", "BOTH", "BY", "CALL", "CASCADE", "CASE",
	"CHANGE", "CHAR", "CHARACTER", "CHECK", "COLLATE", "COLUMN", "CONDITION", "CONSTRAINT",
	"CONTINUE", "CONVERT", "CREATE", "CROSS", "CUBE", "CUME_DIST", "CURRENT_DATE",
	"CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER", "CURSOR", "DATABASE", "DATABASES",
	"DAY_HOUR", "DAY_MICROSECOND", "DAY_MINUTE", "DAY_SECOND", "DEC", "DECIMAL", "DECLARE",
	"DEFAULT", "DELAYED", "DELETE", "DENSE_RANK", "DESC", "DESCRIBE", "DETERMINISTIC",
	"DISTINCT", "DISTINCTROW", "DIV", "DOUBLE", "DROP", "DUAL", "EACH", "ELSE", "ELSEIF",
	"EMPTY", "ENCLOSED", "ESCAPED", "EXCEPT", "EXISTS", "EXIT", "EXPLAIN", "FALSE", "FETCH",
	"FIRST_VALUE", "FLOAT", "FOR", "FORCE", "FOREIGN", "FROM", "FULLTEXT", "FUNCTION",
	"GENERATED", "GET", "GRANT", "GROUP", "GROUPING", "GROUPS", "HAVING", "HIGH_PRIORITY",
	"HOUR_MICROSECOND", "HOUR_MINUTE", "HOUR_SECOND", "IF", "IGNORE", "IN", "INDEX", "INFILE",
	"INNER", "INOUT", "INSENSITIVE", "INSERT", "INT", "INTEGER", "INTERSECT", "INTERVAL", "INTO",
	"IS", "ITERATE", "JOIN", "JSON_TABLE", "KEY", "KEYS", "KILL", "LAG", "LAST_VALUE", "LATERAL",
	"LEAD", "LEADING", "LEAVE", "LEFT", "LIKE", "LIMIT", "LINEAR", "LINES", "LOAD", "LOCALTIME",
	"LOCALTIMESTAMP", "LOCK", "LONG", "LOOP", "LOW_PRIORITY", "MATCH", "MAXVALUE", "MOD",
	"MODIFIES", "NATURAL", "NOT", "NO_WRITE_TO_BINLOG", "NTH_VALUE", "NTILE", "NULL", "NUMERIC",
	"OF", "ON", "OPTIMIZE", "OPTION", "OPTIONALLY", "OR", "ORDER", "OUT", "OUTER", "OUTFILE",
	"OVER", "PARTITION", "PERCENT_RANK", "PRECISION", "PRIMARY", "PROCEDURE", "PURGE", "RANGE",
	"RANK", "READ", "READS", "REAL", "RECURSIVE", "REFERENCES", "REGEXP", "RELEASE", "RENAME",
	"REPEAT", "REPLACE", "REQUIRE", "RESIGNAL", "RESTRICT", "RETURN", "REVOKE", "RIGHT",
	"RLIKE", "ROW", "ROWS", "ROW_NUMBER", "SCHEMA", "SCHEMAS", "SELECT", "SET", "SHOW", "SIGNAL",
	"SMALLINT", "SPATIAL", "SPECIFIC", "SQL", "SQLEXCEPTION", "SQLSTATE", "SQLWARNING",
	"SQL_BIG_RESULT", "SQL_CALC_FOUND_ROWS", "SQL_SMALL_RESULT", "SSL", "STARTING", "STORED",
	"STRAIGHT_JOIN", "SYSTEM", "TABLE", "TERMINATED", "THEN", "TO", "TRAILING", "TRIGGER",
	"TRUE", "UNDO", "UNION", "UNIQUE", "UNLOCK", "UNSIGNED", "UPDATE", "USAGE", "USE", "USING",
	"UTC_DATE", "UTC_TIME", "UTC_TIMESTAMP", "VALUES", "VARBINARY", "VARCHAR", "VARYING",
	"VIRTUAL", "WHEN", "WHERE", "WHILE", "WINDOW", "WITH", "WRITE", "XOR", "YEAR_MONTH",
	"ZEROFILL",
}

// Ambiguous keywords: names everywhere except the positions their class
// excludes.
var (
	rolesAndLabelsWords = []string{"EXECUTE", "RESTART", "SHUTDOWN"}

	labelWords = []string{
		"ASCII", "BEGIN", "BYTE", "CACHE", "CHARSET", "CHECKSUM", "CLONE", "COMMENT", "COMMIT",
		"CONTAINS", "DEALLOCATE", "DO", "END", "FLUSH", "FOLLOWS", "HANDLER", "HELP", "IMPORT",
		"INSTALL", "LANGUAGE", "NO", "PRECEDES", "PREPARE", "REPAIR", "RESET", "ROLLBACK",
		"SAVEPOINT", "SLAVE", "START", "STOP", "TRUNCATE", "UNICODE", "UNINSTALL",
		"XA",
	}

	roleWords = []string{
		"EVENT", "FILE", "NONE", "PROCESS", "PROXY", "RELOAD", "REPLICATION", "RESOURCE",
		"SUPER",
	}

	systemVariableWords = []string{"GLOBAL", "LOCAL", "PERSIST", "PERSIST_ONLY", "SESSION"}
)
