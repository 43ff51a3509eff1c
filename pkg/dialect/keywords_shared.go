package dialect

// CoreKeywords are the words of the shared grammar every dialect recognizes.
// Dialects add them with the class that fits and then reclassify the words
// their grammar reserves.
var CoreKeywords = []string{
	"ALL", "AND", "ANY", "ARRAY", "AS", "ASC", "BETWEEN", "BOTH", "BY", "CALL", "CASE", "CAST",
	"CHAR", "CHARACTER", "COLLATE", "CONVERT", "CROSS", "CURRENT", "CURRENT_DATE",
	"CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER", "DEFAULT", "DELETE", "DESC",
	"DISTINCT", "ELSE", "END", "ESCAPE", "EXCEPT", "EXISTS", "EXTRACT", "FALSE", "FETCH",
	"FIRST", "FOLLOWING", "FOR", "FROM", "FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT",
	"INTERSECT", "INTERVAL", "INTO", "IS", "JOIN", "KEY", "LAST", "LATERAL", "LEADING", "LEFT",
	"LIKE", "LIMIT", "LOCALTIME", "LOCALTIMESTAMP", "LOCKED", "NATURAL", "NOT", "NOWAIT", "NULL",
	"NULLS", "OF", "OFFSET", "ON", "ONLY", "OR", "ORDER", "OUTER", "OVER", "PARTITION",
	"POSITION", "PRECEDING", "RANGE", "RECURSIVE", "RIGHT", "ROW", "ROWS", "SELECT", "SET",
	"SHARE", "SKIP", "SOME", "SUBSTRING", "TABLE", "THEN", "TRAILING", "TRIM", "TRUE",
	"UNBOUNDED", "UNION", "UNKNOWN", "UPDATE", "USING", "VALUES", "WHEN", "WHERE", "WINDOW",
	"WITH",
}

// ANSIReserved are the SQL:2016 reserved words among CoreKeywords plus the
// clause words no dialect accepts as bare names.
var ANSIReserved = []string{
	"ALL", "AND", "ANY", "ARRAY", "AS", "ASC", "BETWEEN", "BOTH", "BY", "CALL", "CASE", "CAST",
	"COLLATE", "CROSS", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER",
	"DEFAULT", "DELETE", "DESC", "DISTINCT", "ELSE", "END", "EXCEPT", "EXISTS", "FALSE",
	"FETCH", "FOR", "FROM", "FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT", "INTERSECT",
	"INTO", "IS", "JOIN", "LATERAL", "LEADING", "LEFT", "LIKE", "LIMIT", "LOCALTIME",
	"LOCALTIMESTAMP", "NATURAL", "NOT", "NULL", "OFFSET", "ON", "ONLY", "OR", "ORDER", "OUTER",
	"OVER", "RIGHT", "SELECT", "SOME", "TABLE", "THEN", "TRAILING", "TRUE", "UNION", "UPDATE",
	"USING", "VALUES", "WHEN", "WHERE", "WINDOW", "WITH",
}
