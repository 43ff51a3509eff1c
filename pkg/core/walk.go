package core

// Walk traverses the tree rooted at n depth-first, calling fn for every node
// before its children. Returning false from fn skips the node's children.
// Nil nodes are ignored.
func Walk(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	w := walker{fn: fn}
	w.children(n)
}

type walker struct {
	fn func(Node) bool
}

func (w walker) walk(n Node) {
	if isNil(n) || !w.fn(n) {
		return
	}
	w.children(n)
}

func (w walker) exprs(list []Expr) {
	for _, e := range list {
		w.walk(e)
	}
}

func (w walker) idents(list []*Identifier) {
	for _, id := range list {
		w.walk(id)
	}
}

func (w walker) tables(list []*TableName) {
	for _, t := range list {
		w.walk(t)
	}
}

func (w walker) refs(list []TableRef) {
	for _, t := range list {
		w.walk(t)
	}
}

func (w walker) orderBy(list []*OrderByItem) {
	for _, o := range list {
		w.walk(o)
	}
}

func (w walker) assignments(list []*Assignment) {
	for _, a := range list {
		w.walk(a)
	}
}

//nolint:gocyclo // one case per node type
func (w walker) children(n Node) {
	switch n := n.(type) {
	// ---------- queries ----------
	case *SelectStmt:
		w.walk(n.With)
		w.walk(n.Query)
		w.orderBy(n.OrderBy)
		w.walk(n.Limit)
		for _, l := range n.Locks {
			w.walk(l)
		}
		w.walk(n.Into)
	case *WithClause:
		for _, c := range n.CTEs {
			w.walk(c)
		}
	case *CTE:
		w.walk(n.Name)
		w.idents(n.Columns)
		w.walk(n.Query)
	case *QuerySpec:
		for _, it := range n.Items {
			w.walk(it)
		}
		w.walk(n.Into)
		w.refs(n.From)
		w.walk(n.Where)
		w.walk(n.GroupBy)
		w.walk(n.Having)
		for _, nw := range n.Windows {
			w.walk(nw)
		}
	case *SetOperation:
		w.walk(n.Left)
		w.walk(n.Right)
	case *ParenQuery:
		w.walk(n.Select)
	case *TableQuery:
		w.walk(n.Table)
	case *ValuesQuery:
		for _, r := range n.Rows {
			w.walk(r)
		}
	case *SelectItem:
		w.walk(n.Expr)
		w.walk(n.Alias)
	case *GroupByClause:
		w.exprs(n.Items)
	case *NamedWindow:
		w.walk(n.Name)
		w.walk(n.Spec)
	case *OrderByItem:
		w.walk(n.Expr)
	case *Limit:
		w.walk(n.Count)
		w.walk(n.Offset)
	case *LockClause:
		w.tables(n.Tables)
	case *IntoClause:
		w.walk(n.Export)
		w.exprs(n.Vars)

	// ---------- tables ----------
	case *TableName:
		w.walk(n.Schema)
		w.walk(n.Name)
		w.walk(n.Alias)
		w.idents(n.Partitions)
		for _, h := range n.IndexHints {
			w.walk(h)
		}
	case *IndexHint:
		w.idents(n.Indexes)
	case *DerivedTable:
		w.walk(n.Query)
		w.walk(n.Alias)
		w.idents(n.Columns)
	case *JoinExpr:
		w.walk(n.Left)
		w.walk(n.Right)
		w.walk(n.On)
		w.idents(n.Using)
	case *ParenTableRef:
		w.refs(n.Items)

	// ---------- expressions ----------
	case *ColumnRef:
		w.walk(n.Schema)
		w.walk(n.Table)
		w.walk(n.Name)
	case *BinaryExpr:
		w.walk(n.Left)
		w.walk(n.Right)
	case *UnaryExpr:
		w.walk(n.Operand)
	case *FuncCall:
		w.walk(n.Schema)
		w.walk(n.Name)
		w.exprs(n.Args)
		w.walk(n.OverName)
		w.walk(n.Over)
	case *GroupConcatExpr:
		w.exprs(n.Args)
		w.orderBy(n.OrderBy)
		w.walk(n.Separator)
		w.walk(n.OverName)
		w.walk(n.Over)
	case *CastExpr:
		w.walk(n.Expr)
		w.walk(n.Type)
	case *ConvertExpr:
		w.walk(n.Expr)
		w.walk(n.Type)
	case *ExtractExpr:
		w.walk(n.Expr)
	case *TrimExpr:
		w.walk(n.Remove)
		w.walk(n.Expr)
	case *SubstringExpr:
		w.walk(n.Expr)
		w.walk(n.From)
		w.walk(n.For)
	case *PositionExpr:
		w.walk(n.Substr)
		w.walk(n.Str)
	case *CharExpr:
		w.exprs(n.Args)
	case *CaseExpr:
		w.walk(n.Operand)
		for _, wc := range n.Whens {
			w.walk(wc)
		}
		w.walk(n.Else)
	case *WhenClause:
		w.walk(n.Condition)
		w.walk(n.Result)
	case *IntervalExpr:
		w.walk(n.Value)
	case *SubqueryExpr:
		w.walk(n.Query)
	case *ExistsExpr:
		w.walk(n.Query)
	case *InExpr:
		w.walk(n.Expr)
		w.exprs(n.List)
		w.walk(n.Query)
	case *BetweenExpr:
		w.walk(n.Expr)
		w.walk(n.Low)
		w.walk(n.High)
	case *LikeExpr:
		w.walk(n.Expr)
		w.walk(n.Pattern)
		w.walk(n.Escape)
	case *RegexpExpr:
		w.walk(n.Expr)
		w.walk(n.Pattern)
	case *IsExpr:
		w.walk(n.Expr)
	case *CollateExpr:
		w.walk(n.Expr)
	case *MatchExpr:
		for _, c := range n.Columns {
			w.walk(c)
		}
		w.walk(n.Against)
	case *RowExpr:
		w.exprs(n.Items)
	case *ParenExpr:
		w.walk(n.Expr)
	case *DefaultExpr:
		w.walk(n.Column)
	case *StarExpr:
		w.walk(n.Schema)
		w.walk(n.Table)
	case *WindowSpec:
		w.walk(n.Name)
		w.exprs(n.PartitionBy)
		w.orderBy(n.OrderBy)
		w.walk(n.Frame)
	case *FrameSpec:
		w.walk(n.Start)
		w.walk(n.EndBound)
	case *FrameBound:
		w.walk(n.Offset)

	// ---------- DML ----------
	case *InsertStmt:
		w.insertBody(&n.InsertBody)
		w.assignments(n.OnDuplicate)
	case *ReplaceStmt:
		w.insertBody(&n.InsertBody)
	case *Assignment:
		w.walk(n.Column)
		w.walk(n.Value)
	case *UpdateStmt:
		w.walk(n.With)
		w.refs(n.Tables)
		w.assignments(n.Set)
		w.walk(n.Where)
		w.orderBy(n.OrderBy)
		w.walk(n.Limit)
	case *DeleteStmt:
		w.walk(n.With)
		w.tables(n.Targets)
		w.refs(n.From)
		w.walk(n.Where)
		w.orderBy(n.OrderBy)
		w.walk(n.Limit)
	case *CallStmt:
		w.walk(n.Schema)
		w.walk(n.Name)
		w.exprs(n.Args)
	case *DoStmt:
		w.exprs(n.Exprs)
	case *HandlerOpenStmt:
		w.walk(n.Table)
		w.walk(n.Alias)
	case *HandlerReadStmt:
		w.walk(n.Table)
		w.walk(n.Index)
		w.exprs(n.Values)
		w.walk(n.Where)
		w.walk(n.Limit)
	case *HandlerCloseStmt:
		w.walk(n.Table)
	case *LoadDataStmt:
		w.loadBody(&n.LoadBody)
		w.walk(n.Export)
	case *LoadXMLStmt:
		w.loadBody(&n.LoadBody)

	// ---------- DAL ----------
	case *ShowFilter:
		w.walk(n.Like)
		w.walk(n.Where)
	case *TableIndexList:
		w.walk(n.Table)
		w.idents(n.Partitions)
		w.idents(n.Indexes)
	case *UseStmt:
		w.walk(n.Schema)
	case *ExplainStmt:
		w.walk(n.Stmt)
		w.walk(n.ForConnection)
	case *DescribeStmt:
		w.walk(n.Table)
		w.walk(n.Column)
		w.walk(n.Pattern)
	case *ShowDatabasesStmt:
		w.walk(n.Filter)
	case *ShowTablesStmt:
		w.walk(n.From)
		w.walk(n.Filter)
	case *ShowTableStatusStmt:
		w.walk(n.From)
		w.walk(n.Filter)
	case *ShowColumnsStmt:
		w.walk(n.Table)
		w.walk(n.From)
		w.walk(n.Filter)
	case *ShowIndexStmt:
		w.walk(n.Table)
		w.walk(n.From)
		w.walk(n.Where)
	case *ShowCreateStmt:
		w.walk(n.Name)
		w.walk(n.User)
	case *ShowVariablesStmt:
		w.walk(n.Name)
		w.walk(n.Filter)
	case *ShowStatusStmt:
		w.walk(n.Filter)
	case *ShowDiagnosticsStmt:
		w.walk(n.Limit)
	case *ShowTriggersStmt:
		w.walk(n.From)
		w.walk(n.Filter)
	case *ShowEventsStmt:
		w.walk(n.From)
		w.walk(n.Filter)
	case *ShowCharsetStmt:
		w.walk(n.Filter)
	case *ShowCollationStmt:
		w.walk(n.Filter)
	case *ShowGrantsStmt:
		w.walk(n.For)
		for _, u := range n.Using {
			w.walk(u)
		}
	case *ShowOpenTablesStmt:
		w.walk(n.From)
		w.walk(n.Filter)
	case *ShowRoutineStatusStmt:
		w.walk(n.Filter)
	case *ShowBinlogEventsStmt:
		w.walk(n.From)
		w.walk(n.Limit)
	case *SetVariableStmt:
		for _, a := range n.Assignments {
			w.walk(a)
		}
	case *VariableAssignment:
		w.walk(n.Variable)
		w.walk(n.Value)
	case *SetResourceGroupStmt:
		w.walk(n.Name)
		for _, t := range n.Threads {
			w.walk(t)
		}
	case *HistogramOp:
		w.idents(n.Columns)
		w.walk(n.Buckets)
	case *AnalyzeTableStmt:
		w.tables(n.Tables)
		w.walk(n.Histogram)
	case *CheckTableStmt:
		w.tables(n.Tables)
	case *ChecksumTableStmt:
		w.tables(n.Tables)
	case *OptimizeTableStmt:
		w.tables(n.Tables)
	case *RepairTableStmt:
		w.tables(n.Tables)
	case *FlushStmt:
		w.tables(n.TableNames)
	case *KillStmt:
		w.walk(n.ID)
	case *CacheIndexStmt:
		for _, t := range n.Tables {
			w.walk(t)
		}
		w.walk(n.Cache)
	case *LoadIndexStmt:
		for _, t := range n.Tables {
			w.walk(t)
		}
	case *ResetPersistStmt:
		w.walk(n.Name)
	case *CloneStmt:
		w.walk(n.User)
		w.walk(n.Port)
	case *InstallPluginStmt:
		w.walk(n.Name)
	case *UninstallPluginStmt:
		w.walk(n.Name)
	case *CreateResourceGroupStmt:
		w.walk(n.Name)
		w.vcpus(n.VCPUs)
		w.walk(n.Priority)
	case *AlterResourceGroupStmt:
		w.walk(n.Name)
		w.vcpus(n.VCPUs)
		w.walk(n.Priority)
	case *DropResourceGroupStmt:
		w.walk(n.Name)
	}
}

func (w walker) insertBody(b *InsertBody) {
	w.walk(b.Table)
	w.idents(b.Columns)
	for _, row := range b.Values {
		w.exprs(row)
	}
	w.walk(b.Select)
	w.assignments(b.Set)
	w.walk(b.RowAlias)
	w.idents(b.RowAliasColumns)
}

func (w walker) loadBody(b *LoadBody) {
	w.walk(b.Table)
	w.walk(b.IgnoreRows)
	w.exprs(b.Columns)
	w.assignments(b.Set)
}

func (w walker) vcpus(list []*VCPURange) {
	for _, v := range list {
		w.walk(v)
	}
}

// isNil reports whether n is nil or a typed nil pointer of one of the types
// used for optional fields.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *Literal:
		return v == nil
	case *SelectStmt:
		return v == nil
	case *WithClause:
		return v == nil
	case *Limit:
		return v == nil
	case *IntoClause:
		return v == nil
	case *ExportOptions:
		return v == nil
	case *GroupByClause:
		return v == nil
	case *WindowSpec:
		return v == nil
	case *FrameSpec:
		return v == nil
	case *FrameBound:
		return v == nil
	case *ColumnRef:
		return v == nil
	case *DataType:
		return v == nil
	case *TableName:
		return v == nil
	case *ShowFilter:
		return v == nil
	case *UserSpec:
		return v == nil
	case *HistogramOp:
		return v == nil
	}
	return false
}
