package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// formatDALStmt prints the administrative statements. DAL statements stay on
// one line.
func (p *Printer) formatDALStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.UseStmt:
		p.kw(token.USE)
		p.space()
		p.ident(s.Schema)
	case *core.HelpStmt:
		p.keyword("HELP")
		p.space()
		p.str(s.Topic)
	case *core.ExplainStmt:
		p.formatExplain(s)
	case *core.DescribeStmt:
		p.formatDescribe(s)
	case *core.SetVariableStmt:
		p.formatSetVariable(s)
	case *core.SetNamesStmt:
		p.kw(token.SET)
		p.space()
		p.keyword("NAMES")
		p.space()
		if s.Default {
			p.kw(token.DEFAULT)
			return
		}
		p.word(s.Charset)
		if s.Collate != "" {
			p.space()
			p.kw(token.COLLATE)
			p.space()
			p.word(s.Collate)
		}
	case *core.SetCharsetStmt:
		p.kw(token.SET, token.CHARACTER, token.SET)
		p.space()
		if s.Default {
			p.kw(token.DEFAULT)
			return
		}
		p.word(s.Charset)
	case *core.SetResourceGroupStmt:
		p.kw(token.SET)
		p.space()
		p.keyword("RESOURCE", "GROUP")
		p.space()
		p.ident(s.Name)
		if len(s.Threads) > 0 {
			p.space()
			p.kw(token.FOR)
			p.space()
			p.formatList(len(s.Threads), func(i int) { p.formatLiteral(s.Threads[i]) }, ", ", false)
		}
	default:
		if !p.formatShow(stmt) && !p.formatMaintenance(stmt) {
			p.formatAdmin(stmt)
		}
	}
}

func (p *Printer) formatExplain(s *core.ExplainStmt) {
	p.explainKeyword(s.Keyword)
	if s.ForConnection != nil {
		p.space()
		p.kw(token.FOR)
		p.space()
		p.keyword("CONNECTION")
		p.space()
		p.formatExpr(s.ForConnection)
		return
	}
	if s.Analyze {
		p.space()
		p.keyword("ANALYZE")
	}
	if s.Format != "" {
		p.space()
		p.keyword("FORMAT")
		p.write(" = ")
		p.keyword(s.Format)
	}
	p.writeln()
	p.formatStmt(s.Stmt)
}

func (p *Printer) explainKeyword(kw string) {
	if kw == "" {
		kw = "EXPLAIN"
	}
	p.keyword(kw)
}

func (p *Printer) formatDescribe(s *core.DescribeStmt) {
	p.explainKeyword(s.Keyword)
	p.space()
	p.formatTableName(s.Table)
	switch {
	case s.Column != nil:
		p.space()
		p.ident(s.Column)
	case s.Pattern != nil:
		p.space()
		p.formatLiteral(s.Pattern)
	}
}

func (p *Printer) formatSetVariable(s *core.SetVariableStmt) {
	p.kw(token.SET)
	p.space()
	p.formatList(len(s.Assignments), func(i int) {
		a := s.Assignments[i]
		p.formatExpr(a.Variable)
		p.write(" = ")
		// Value lists of SET name TO a, b are written without parentheses.
		if row, ok := a.Value.(*core.RowExpr); ok && !row.Explicit && p.dialect.GetName() != "mysql" {
			p.exprs(row.Items)
			return
		}
		p.formatExpr(a.Value)
	}, ", ", false)
}

// ---------- SHOW ----------

func (p *Printer) show(words ...string) {
	p.keyword("SHOW")
	for _, w := range words {
		if w == "" {
			continue
		}
		p.space()
		p.keyword(w)
	}
}

// flag returns word when set is true.
func flag(set bool, word string) string {
	if set {
		return word
	}
	return ""
}

func (p *Printer) showFrom(from *core.Identifier) {
	if from != nil {
		p.space()
		p.kw(token.FROM)
		p.space()
		p.ident(from)
	}
}

func (p *Printer) showFilter(f *core.ShowFilter) {
	if f == nil {
		return
	}
	switch {
	case f.Like != nil:
		p.space()
		p.kw(token.LIKE)
		p.space()
		p.formatLiteral(f.Like)
	case f.Where != nil:
		p.space()
		p.kw(token.WHERE)
		p.space()
		p.formatExpr(f.Where)
	}
}

func (p *Printer) userSpec(u *core.UserSpec) {
	if u.CurrentUser {
		p.kw(token.CURRENT_USER)
		return
	}
	p.str(u.Name)
	if u.HasHost {
		p.write("@")
		p.str(u.Host)
	}
}

// formatShow reports whether stmt was a SHOW statement.
func (p *Printer) formatShow(stmt core.Stmt) bool {
	switch s := stmt.(type) {
	case *core.ShowDatabasesStmt:
		p.show("DATABASES")
		p.showFilter(s.Filter)
	case *core.ShowTablesStmt:
		p.show(flag(s.Extended, "EXTENDED"), flag(s.Full, "FULL"), "TABLES")
		p.showFrom(s.From)
		p.showFilter(s.Filter)
	case *core.ShowTableStatusStmt:
		p.show("TABLE", "STATUS")
		p.showFrom(s.From)
		p.showFilter(s.Filter)
	case *core.ShowColumnsStmt:
		p.show(flag(s.Extended, "EXTENDED"), flag(s.Full, "FULL"), "COLUMNS")
		p.space()
		p.kw(token.FROM)
		p.space()
		p.formatTableName(s.Table)
		p.showFrom(s.From)
		p.showFilter(s.Filter)
	case *core.ShowIndexStmt:
		p.show(flag(s.Extended, "EXTENDED"), "INDEX")
		p.space()
		p.kw(token.FROM)
		p.space()
		p.formatTableName(s.Table)
		p.showFrom(s.From)
		if s.Where != nil {
			p.space()
			p.kw(token.WHERE)
			p.space()
			p.formatExpr(s.Where)
		}
	case *core.ShowCreateStmt:
		p.show("CREATE", s.Object)
		if s.IfNotExists {
			p.space()
			p.keyword("IF", "NOT", "EXISTS")
		}
		p.space()
		if s.User != nil {
			p.userSpec(s.User)
		} else {
			p.formatTableName(s.Name)
		}
	case *core.ShowVariablesStmt:
		switch {
		case s.All:
			p.show("ALL")
		case s.Name != nil:
			p.show()
			p.space()
			p.write(s.Name.Value)
		default:
			p.show(s.Scope.String(), "VARIABLES")
			p.showFilter(s.Filter)
		}
	case *core.ShowStatusStmt:
		p.show(s.Scope.String(), "STATUS")
		p.showFilter(s.Filter)
	case *core.ShowProcessListStmt:
		p.show(flag(s.Full, "FULL"), "PROCESSLIST")
	case *core.ShowDiagnosticsStmt:
		if s.Count {
			p.show("COUNT(*)", s.Kind)
			break
		}
		p.show(s.Kind)
		if s.Limit != nil {
			p.space()
			p.formatLimit(s.Limit)
		}
	case *core.ShowTriggersStmt:
		p.show(flag(s.Full, "FULL"), "TRIGGERS")
		p.showFrom(s.From)
		p.showFilter(s.Filter)
	case *core.ShowEventsStmt:
		p.show("EVENTS")
		p.showFrom(s.From)
		p.showFilter(s.Filter)
	case *core.ShowCharsetStmt:
		p.show("CHARACTER", "SET")
		p.showFilter(s.Filter)
	case *core.ShowCollationStmt:
		p.show("COLLATION")
		p.showFilter(s.Filter)
	case *core.ShowGrantsStmt:
		p.show("GRANTS")
		if s.For != nil {
			p.space()
			p.kw(token.FOR)
			p.space()
			p.userSpec(s.For)
		}
		if len(s.Using) > 0 {
			p.space()
			p.kw(token.USING)
			p.space()
			p.formatList(len(s.Using), func(i int) { p.userSpec(s.Using[i]) }, ", ", false)
		}
	case *core.ShowOpenTablesStmt:
		p.show("OPEN", "TABLES")
		p.showFrom(s.From)
		p.showFilter(s.Filter)
	case *core.ShowRoutineStatusStmt:
		p.show(s.Kind, "STATUS")
		p.showFilter(s.Filter)
	case *core.ShowBinlogEventsStmt:
		p.show(s.Kind, "EVENTS")
		if s.In != "" {
			p.space()
			p.kw(token.IN)
			p.space()
			p.str(s.In)
		}
		if s.From != nil {
			p.space()
			p.kw(token.FROM)
			p.space()
			p.formatExpr(s.From)
		}
		if s.Limit != nil {
			p.space()
			p.formatLimit(s.Limit)
		}
	case *core.ShowSimpleStmt:
		p.show(s.What)
	default:
		return false
	}
	return true
}

// ---------- Table Maintenance ----------

func (p *Printer) tableNames(tables []*core.TableName) {
	p.formatList(len(tables), func(i int) { p.formatTableName(tables[i]) }, ", ", false)
}

// maintenanceHead prints VERB [binlog option] TABLE t, ...
func (p *Printer) maintenanceHead(verb, option string, tables []*core.TableName) {
	p.keyword(verb)
	if option != "" {
		p.space()
		p.keyword(option)
	}
	p.space()
	p.kw(token.TABLE)
	p.space()
	p.tableNames(tables)
}

func (p *Printer) options(opts []string) {
	for _, o := range opts {
		p.space()
		p.keyword(o)
	}
}

// formatMaintenance reports whether stmt was a table maintenance statement.
func (p *Printer) formatMaintenance(stmt core.Stmt) bool {
	switch s := stmt.(type) {
	case *core.AnalyzeTableStmt:
		p.maintenanceHead("ANALYZE", s.Option, s.Tables)
		if h := s.Histogram; h != nil {
			p.space()
			if h.Drop {
				p.keyword("DROP")
			} else {
				p.kw(token.UPDATE)
			}
			p.space()
			p.keyword("HISTOGRAM")
			p.space()
			p.kw(token.ON)
			p.space()
			p.idents(h.Columns)
			if h.Buckets != nil {
				p.space()
				p.kw(token.WITH)
				p.space()
				p.formatLiteral(h.Buckets)
				p.space()
				p.keyword("BUCKETS")
			}
		}
	case *core.CheckTableStmt:
		p.maintenanceHead("CHECK", "", s.Tables)
		p.options(s.Options)
	case *core.ChecksumTableStmt:
		p.maintenanceHead("CHECKSUM", "", s.Tables)
		if s.Option != "" {
			p.options([]string{s.Option})
		}
	case *core.OptimizeTableStmt:
		p.maintenanceHead("OPTIMIZE", s.Option, s.Tables)
	case *core.RepairTableStmt:
		p.maintenanceHead("REPAIR", s.Option, s.Tables)
		p.options(s.Options)
	default:
		return false
	}
	return true
}

// ---------- Server Administration ----------

func (p *Printer) formatAdmin(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.FlushStmt:
		p.keyword("FLUSH")
		if s.Option != "" {
			p.space()
			p.keyword(s.Option)
		}
		p.space()
		if !s.Tables {
			p.formatList(len(s.Options), func(i int) { p.keyword(s.Options[i]) }, ", ", false)
			return
		}
		p.keyword("TABLES")
		if len(s.TableNames) > 0 {
			p.space()
			p.tableNames(s.TableNames)
		}
		switch {
		case s.WithReadLock:
			p.space()
			p.kw(token.WITH)
			p.space()
			p.keyword("READ")
			p.space()
			p.kw(token.LOCK)
		case s.ForExport:
			p.space()
			p.kw(token.FOR)
			p.space()
			p.keyword("EXPORT")
		}
	case *core.KillStmt:
		p.keyword("KILL")
		if s.Kind != "" {
			p.space()
			p.keyword(s.Kind)
		}
		p.space()
		p.formatExpr(s.ID)
	case *core.CacheIndexStmt:
		p.keyword("CACHE")
		p.space()
		p.kw(token.INDEX)
		p.space()
		p.tableIndexLists(s.Tables)
		p.space()
		p.kw(token.IN)
		p.space()
		p.ident(s.Cache)
	case *core.LoadIndexStmt:
		p.keyword("LOAD")
		p.space()
		p.kw(token.INDEX, token.INTO)
		p.space()
		p.keyword("CACHE")
		p.space()
		p.tableIndexLists(s.Tables)
	case *core.ResetStmt:
		p.keyword("RESET")
		p.space()
		p.formatList(len(s.Options), func(i int) { p.keyword(s.Options[i]) }, ", ", false)
	case *core.ResetPersistStmt:
		p.keyword("RESET", "PERSIST")
		if s.IfExists {
			p.space()
			p.keyword("IF")
			p.space()
			p.kw(token.EXISTS)
		}
		if s.Name != nil {
			p.space()
			p.ident(s.Name)
		}
	case *core.RestartStmt:
		p.keyword("RESTART")
	case *core.ShutdownStmt:
		p.keyword("SHUTDOWN")
	case *core.CloneStmt:
		p.formatClone(s)
	case *core.InstallComponentStmt:
		p.keyword("INSTALL", "COMPONENT")
		p.space()
		p.strs(s.Components)
	case *core.InstallPluginStmt:
		p.keyword("INSTALL", "PLUGIN")
		p.space()
		p.ident(s.Name)
		p.space()
		p.keyword("SONAME")
		p.space()
		p.str(s.Soname)
	case *core.UninstallComponentStmt:
		p.keyword("UNINSTALL", "COMPONENT")
		p.space()
		p.strs(s.Components)
	case *core.UninstallPluginStmt:
		p.keyword("UNINSTALL", "PLUGIN")
		p.space()
		p.ident(s.Name)
	case *core.BinlogStmt:
		p.keyword("BINLOG")
		p.space()
		p.str(s.Value)
	case *core.CreateResourceGroupStmt:
		p.keyword("CREATE")
		p.space()
		p.resourceGroup(s.Name)
		p.space()
		p.keyword("TYPE")
		p.write(" = ")
		p.keyword(s.Type)
		p.resourceGroupAttrs(s.VCPUs, s.Priority, s.Enabled)
	case *core.AlterResourceGroupStmt:
		p.keyword("ALTER")
		p.space()
		p.resourceGroup(s.Name)
		p.resourceGroupAttrs(s.VCPUs, s.Priority, s.Enabled)
		p.force(s.Force)
	case *core.DropResourceGroupStmt:
		p.keyword("DROP")
		p.space()
		p.resourceGroup(s.Name)
		p.force(s.Force)
	}
}

func (p *Printer) tableIndexLists(lists []*core.TableIndexList) {
	p.formatList(len(lists), func(i int) {
		l := lists[i]
		p.formatTableName(l.Table)
		switch {
		case l.PartitionAll:
			p.space()
			p.kw(token.PARTITION)
			p.write(" (")
			p.kw(token.ALL)
			p.write(")")
		case len(l.Partitions) > 0:
			p.space()
			p.kw(token.PARTITION)
			p.space()
			p.parenIdents(l.Partitions)
		}
		if len(l.Indexes) > 0 {
			p.space()
			p.kw(token.INDEX)
			p.space()
			p.parenIdents(l.Indexes)
		}
		if l.IgnoreLeaves {
			p.space()
			p.kw(token.IGNORE)
			p.space()
			p.keyword("LEAVES")
		}
	}, ", ", false)
}

func (p *Printer) formatClone(s *core.CloneStmt) {
	p.keyword("CLONE")
	p.space()
	if s.Local {
		p.keyword("LOCAL")
		p.space()
		p.cloneDirectory(s.Directory)
		return
	}
	p.keyword("INSTANCE")
	p.space()
	p.kw(token.FROM)
	p.space()
	p.userSpec(s.User)
	p.write(":")
	p.formatLiteral(s.Port)
	p.space()
	p.keyword("IDENTIFIED")
	p.space()
	p.kw(token.BY)
	p.space()
	p.str(s.Password)
	if s.Directory != "" {
		p.space()
		p.cloneDirectory(s.Directory)
	}
	if s.RequireSSL != nil {
		p.space()
		p.keyword("REQUIRE")
		if !*s.RequireSSL {
			p.space()
			p.keyword("NO")
		}
		p.space()
		p.keyword("SSL")
	}
}

func (p *Printer) cloneDirectory(dir string) {
	p.keyword("DATA", "DIRECTORY")
	p.write(" = ")
	p.str(dir)
}

func (p *Printer) resourceGroup(name *core.Identifier) {
	p.keyword("RESOURCE", "GROUP")
	p.space()
	p.ident(name)
}

func (p *Printer) resourceGroupAttrs(vcpus []*core.VCPURange, priority *core.Literal, enabled *bool) {
	if len(vcpus) > 0 {
		p.space()
		p.keyword("VCPU")
		p.write(" = ")
		p.formatList(len(vcpus), func(i int) {
			p.write(vcpus[i].Start)
			if vcpus[i].Last != "" {
				p.write("-" + vcpus[i].Last)
			}
		}, ", ", false)
	}
	if priority != nil {
		p.space()
		p.keyword("THREAD_PRIORITY")
		p.write(" = ")
		p.formatLiteral(priority)
	}
	if enabled != nil {
		p.space()
		if *enabled {
			p.keyword("ENABLE")
		} else {
			p.keyword("DISABLE")
		}
	}
}

func (p *Printer) force(force bool) {
	if force {
		p.space()
		p.kw(token.FORCE)
	}
}
