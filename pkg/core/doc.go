// Package core defines the statement and expression model produced by the
// SQL front end, plus the static dialect configuration shared by the lexer,
// parser and formatter.
//
// The model is a set of closed sum types: Stmt, Expr, TableRef and QueryExpr
// are sealed by unexported marker methods, so only this package can add
// variants and consumers can switch over them exhaustively. Every node embeds
// NodeInfo, which records the source span the node was built from. Downstream
// rewriters use those spans to regenerate fragments of the original text.
//
// The Golden Rule: pkg/core imports ONLY pkg/token, stdlib and value libraries
// (shopspring/decimal). All other packages depend on core, not the reverse.
package core
