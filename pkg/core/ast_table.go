package core

import "fmt"

// ---------- Table References ----------

// TableName is a named table, optionally qualified, aliased, restricted to
// partitions and carrying index hints.
type TableName struct {
	NodeInfo
	Schema     *Identifier
	Name       *Identifier
	Alias      *Identifier
	Partitions []*Identifier
	IndexHints []*IndexHint
}

func (*TableName) tableRefNode() {}

// QualifiedName returns schema.name or name.
func (t *TableName) QualifiedName() string {
	if t.Schema != nil {
		return t.Schema.Value + "." + t.Name.Value
	}
	return t.Name.Name()
}

// IndexHintAction is USE, FORCE or IGNORE.
type IndexHintAction string

// IndexHintAction constants.
const (
	HintUse    IndexHintAction = "USE"
	HintForce  IndexHintAction = "FORCE"
	HintIgnore IndexHintAction = "IGNORE"
)

// IndexHint is USE|FORCE|IGNORE INDEX [FOR JOIN|ORDER BY|GROUP BY] (names).
type IndexHint struct {
	NodeInfo
	Action  IndexHintAction
	For     string // "", "JOIN", "ORDER BY" or "GROUP BY"
	Indexes []*Identifier
}

// DerivedTable is a subquery in FROM.
type DerivedTable struct {
	NodeInfo
	Lateral bool
	Query   *SelectStmt
	Alias   *Identifier
	Columns []*Identifier
}

func (*DerivedTable) tableRefNode() {}

// JoinType is the kind of join.
type JoinType int

// JoinType constants.
const (
	JoinInner    JoinType = iota // JOIN, INNER JOIN
	JoinCross                    // CROSS JOIN
	JoinStraight                 // STRAIGHT_JOIN
	JoinLeft                     // LEFT [OUTER] JOIN
	JoinRight                    // RIGHT [OUTER] JOIN
	JoinFull                     // FULL [OUTER] JOIN
)

var joinTypeNames = [...]string{"JOIN", "CROSS JOIN", "STRAIGHT_JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL JOIN"}

func (j JoinType) String() string {
	if int(j) < len(joinTypeNames) {
		return joinTypeNames[j]
	}
	return fmt.Sprintf("JoinType(%d)", int(j))
}

// JoinExpr joins two table references.
type JoinExpr struct {
	NodeInfo
	Left    TableRef
	Right   TableRef
	Type    JoinType
	Natural bool
	On      Expr
	Using   []*Identifier
}

func (*JoinExpr) tableRefNode() {}

// ParenTableRef is a parenthesised list of table references.
type ParenTableRef struct {
	NodeInfo
	Items []TableRef
}

func (*ParenTableRef) tableRefNode() {}
