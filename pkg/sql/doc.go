// Package sql is the entry point of the SQL front end.
//
// It resolves a dialect by name, runs the lexer, the grammar parser and the
// AST builder, and returns the statement together with the source text and
// tokens it came from. Failures of any stage are reported as a single *Error
// that still unwraps to the stage error.
//
// # Basic Usage
//
//	res, err := sql.Parse("SELECT id, name FROM users WHERE id = 1 LIMIT 10", "mysql")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sel := res.Statement.(*core.SelectStmt)
//	fmt.Println(res.Fragment(sel.Spec().Where)) // id = 1
//
// # Scripts and Batches
//
// ParseScript accepts semicolon-separated statements. ParseBatch parses
// independent texts concurrently.
//
//	results, err := sql.ParseBatch(ctx, texts, "postgresql", sql.WithConcurrency(8))
//
// The registered dialects are mysql, postgresql and ansi.
package sql
