package core

// ---------- Insert / Replace ----------

// InsertBody is the part shared by INSERT and REPLACE.
// Exactly one of Values, Select and Set is populated.
type InsertBody struct {
	Priority        string // LOW_PRIORITY, DELAYED or HIGH_PRIORITY
	Table           *TableName
	Columns         []*Identifier
	Values          [][]Expr
	ValuesKeyword   string // VALUES or VALUE
	Select          *SelectStmt
	Set             []*Assignment
	RowAlias        *Identifier
	RowAliasColumns []*Identifier
}

// InsertStmt represents an INSERT statement.
type InsertStmt struct {
	NodeInfo
	InsertBody
	Ignore      bool
	OnDuplicate []*Assignment
}

func (*InsertStmt) stmtNode() {}

// ReplaceStmt represents a REPLACE statement.
type ReplaceStmt struct {
	NodeInfo
	InsertBody
}

func (*ReplaceStmt) stmtNode() {}

// Assignment is column = value in SET lists and ON DUPLICATE KEY UPDATE.
type Assignment struct {
	NodeInfo
	Column *ColumnRef
	Value  Expr
}

// ---------- Update / Delete ----------

// UpdateStmt represents an UPDATE statement. More than one table reference
// (or a join) makes it a multi-table update.
type UpdateStmt struct {
	NodeInfo
	With        *WithClause
	LowPriority bool
	Ignore      bool
	Tables      []TableRef
	Set         []*Assignment
	Where       Expr
	OrderBy     []*OrderByItem
	Limit       *Limit
}

func (*UpdateStmt) stmtNode() {}

// MultiTable reports whether the update names more than one table.
func (u *UpdateStmt) MultiTable() bool {
	if len(u.Tables) > 1 {
		return true
	}
	if len(u.Tables) == 1 {
		_, ok := u.Tables[0].(*TableName)
		return !ok
	}
	return false
}

// DeleteForm distinguishes the DELETE syntaxes.
type DeleteForm int

// DeleteForm constants.
const (
	DeleteSingle     DeleteForm = iota // DELETE FROM t
	DeleteMultiFrom                    // DELETE t1, t2 FROM refs
	DeleteMultiUsing                   // DELETE FROM t1, t2 USING refs
)

// DeleteStmt represents a DELETE statement. For the single-table form the
// table is From[0]; for the multi-table forms Targets lists the tables rows
// are deleted from and From holds the table references.
type DeleteStmt struct {
	NodeInfo
	With        *WithClause
	LowPriority bool
	Quick       bool
	Ignore      bool
	Form        DeleteForm
	Targets     []*TableName
	From        []TableRef
	Where       Expr
	OrderBy     []*OrderByItem
	Limit       *Limit
}

func (*DeleteStmt) stmtNode() {}

// ---------- Call / Do ----------

// CallStmt is CALL p[(args)].
type CallStmt struct {
	NodeInfo
	Schema *Identifier
	Name   *Identifier
	Args   []Expr
	Parens bool
}

func (*CallStmt) stmtNode() {}

// DoStmt is DO expr, ...
type DoStmt struct {
	NodeInfo
	Exprs []Expr
}

func (*DoStmt) stmtNode() {}

// ---------- Handler ----------

// HandlerOpenStmt is HANDLER t OPEN [[AS] alias].
type HandlerOpenStmt struct {
	NodeInfo
	Table *TableName
	Alias *Identifier
}

func (*HandlerOpenStmt) stmtNode() {}

// HandlerReadStmt is HANDLER t READ ... [WHERE cond] [LIMIT n].
// Index is nil for the table scan form (READ FIRST|NEXT). Direction is FIRST,
// NEXT, PREV or LAST; Op is a comparison used with Values instead.
type HandlerReadStmt struct {
	NodeInfo
	Table     *TableName
	Index     *Identifier
	Direction string
	Op        BinaryOp
	Values    []Expr
	Where     Expr
	Limit     *Limit
}

func (*HandlerReadStmt) stmtNode() {}

// HandlerCloseStmt is HANDLER t CLOSE.
type HandlerCloseStmt struct {
	NodeInfo
	Table *TableName
}

func (*HandlerCloseStmt) stmtNode() {}

// ---------- Load / Import ----------

// LoadBody is the part shared by LOAD DATA and LOAD XML.
type LoadBody struct {
	Priority   string // LOW_PRIORITY or CONCURRENT
	Local      bool
	File       string
	Duplicate  string // REPLACE or IGNORE
	Table      *TableName
	Charset    string
	IgnoreRows *Literal
	IgnoreUnit string // LINES or ROWS
	Columns    []Expr // *ColumnRef or *UserVariable
	Set        []*Assignment
}

// LoadDataStmt is LOAD DATA ... INFILE.
type LoadDataStmt struct {
	NodeInfo
	LoadBody
	Export *ExportOptions
}

func (*LoadDataStmt) stmtNode() {}

// LoadXMLStmt is LOAD XML ... INFILE.
type LoadXMLStmt struct {
	NodeInfo
	LoadBody
	RowsIdentifiedBy string
}

func (*LoadXMLStmt) stmtNode() {}

// ImportTableStmt is IMPORT TABLE FROM 'file', ...
type ImportTableStmt struct {
	NodeInfo
	Files []string
}

func (*ImportTableStmt) stmtNode() {}
