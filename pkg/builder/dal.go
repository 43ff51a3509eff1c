package builder

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
)

// ---------- Shared Pieces ----------

func (b *builder) showFilter(n *cst.Node) *core.ShowFilter {
	if n == nil {
		return nil
	}
	return &core.ShowFilter{
		NodeInfo: info(n),
		Like:     b.literal(n.Child("like")),
		Where:    b.expr(n.Child("where")),
	}
}

// userSpec converts 'name'@'host' and CURRENT_USER. The host arrives as a
// user variable token.
func (b *builder) userSpec(n *cst.Node) *core.UserSpec {
	if n == nil {
		return nil
	}
	u := &core.UserSpec{NodeInfo: info(n), CurrentUser: n.Has("current_user")}
	u.Name = n.Child("name").Text()
	if h := n.Child("host"); h != nil {
		u.Host = h.Text()
		u.HasHost = true
	}
	return u
}

func (b *builder) tableNames(nodes []*cst.Node) []*core.TableName {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*core.TableName, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.tableName(n))
	}
	return out
}

func (b *builder) tableIndexList(n *cst.Node) *core.TableIndexList {
	return &core.TableIndexList{
		NodeInfo:     info(n),
		Table:        b.tableName(n.Child("table")),
		Partitions:   b.idents(n.All("partition")),
		PartitionAll: n.Has("all"),
		Indexes:      b.idents(n.All("index")),
		IgnoreLeaves: n.Has("ignore_leaves"),
	}
}

func (b *builder) tableIndexLists(nodes []*cst.Node) []*core.TableIndexList {
	out := make([]*core.TableIndexList, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.tableIndexList(n))
	}
	return out
}

func upper(n *cst.Node) string {
	if n == nil {
		return ""
	}
	return n.Upper()
}

// ---------- Utility Statements ----------

func buildUse(b *builder, n *cst.Node) core.Stmt {
	return &core.UseStmt{NodeInfo: info(n), Schema: b.ident(n.Child("schema"))}
}

func buildHelp(b *builder, n *cst.Node) core.Stmt {
	return &core.HelpStmt{NodeInfo: info(n), Topic: b.str(n.Child("topic"))}
}

func buildExplain(b *builder, n *cst.Node) core.Stmt {
	ex := &core.ExplainStmt{
		NodeInfo:      info(n),
		Keyword:       upper(n.Child("keyword")),
		Analyze:       n.Has("analyze"),
		Format:        upper(n.Child("format")),
		Stmt:          b.stmt(n.Child("stmt")),
		ForConnection: b.expr(n.Child("connection")),
	}
	if _, nested := ex.Stmt.(*core.ExplainStmt); nested {
		b.fail(n.Child("stmt"), "EXPLAIN cannot explain another EXPLAIN")
		return nil
	}
	return ex
}

func buildDescribe(b *builder, n *cst.Node) core.Stmt {
	return &core.DescribeStmt{
		NodeInfo: info(n),
		Keyword:  upper(n.Child("keyword")),
		Table:    b.tableName(n.Child("table")),
		Column:   b.ident(n.Child("column")),
		Pattern:  b.literal(n.Child("pattern")),
	}
}

// ---------- SHOW ----------

func buildShowDatabases(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowDatabasesStmt{NodeInfo: info(n), Filter: b.showFilter(n.Child("filter"))}
}

func buildShowTables(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowTablesStmt{
		NodeInfo: info(n),
		Extended: n.Has("extended"),
		Full:     n.Has("full"),
		From:     b.ident(n.Child("from")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowTableStatus(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowTableStatusStmt{
		NodeInfo: info(n),
		From:     b.ident(n.Child("from")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowColumns(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowColumnsStmt{
		NodeInfo: info(n),
		Extended: n.Has("extended"),
		Full:     n.Has("full"),
		Table:    b.tableName(n.Child("table")),
		From:     b.ident(n.Child("from")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowIndex(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowIndexStmt{
		NodeInfo: info(n),
		Extended: n.Has("extended"),
		Table:    b.tableName(n.Child("table")),
		From:     b.ident(n.Child("from")),
		Where:    b.where(n.Child("where")),
	}
}

func buildShowCreate(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowCreateStmt{
		NodeInfo:    info(n),
		Object:      upper(n.Child("object")),
		IfNotExists: n.Has("if_not_exists"),
		Name:        b.tableName(n.Child("name")),
		User:        b.userSpec(n.Child("user")),
	}
}

// buildShowVariables also covers PostgreSQL's SHOW name | ALL | TIME ZONE.
func buildShowVariables(b *builder, n *cst.Node) core.Stmt {
	s := &core.ShowVariablesStmt{
		NodeInfo: info(n),
		All:      n.Has("all"),
		Filter:   b.showFilter(n.Child("filter")),
	}
	if sc := n.Child("scope"); sc != nil {
		s.Scope = b.scope(sc)
	}
	switch {
	case n.Has("time_zone"):
		s.Name = &core.Identifier{NodeInfo: info(n.Child("time_zone")), Value: "timezone"}
	case n.Has("name"):
		name := n.Child("name")
		var parts []string
		for _, p := range name.All("part") {
			parts = append(parts, p.Text())
		}
		s.Name = &core.Identifier{NodeInfo: info(name), Value: strings.Join(parts, ".")}
	}
	return s
}

func buildShowStatus(b *builder, n *cst.Node) core.Stmt {
	s := &core.ShowStatusStmt{NodeInfo: info(n), Filter: b.showFilter(n.Child("filter"))}
	if sc := n.Child("scope"); sc != nil {
		s.Scope = b.scope(sc)
	}
	return s
}

func buildShowProcessList(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowProcessListStmt{NodeInfo: info(n), Full: n.Has("full")}
}

func buildShowDiagnostics(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowDiagnosticsStmt{
		NodeInfo: info(n),
		Kind:     upper(n.Child("kind")),
		Count:    n.Has("count"),
		Limit:    b.limit(n.Child("limit")),
	}
}

func buildShowTriggers(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowTriggersStmt{
		NodeInfo: info(n),
		Full:     n.Has("full"),
		From:     b.ident(n.Child("from")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowEvents(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowEventsStmt{
		NodeInfo: info(n),
		From:     b.ident(n.Child("from")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowCharset(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowCharsetStmt{NodeInfo: info(n), Filter: b.showFilter(n.Child("filter"))}
}

func buildShowCollation(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowCollationStmt{NodeInfo: info(n), Filter: b.showFilter(n.Child("filter"))}
}

func buildShowGrants(b *builder, n *cst.Node) core.Stmt {
	s := &core.ShowGrantsStmt{NodeInfo: info(n), For: b.userSpec(n.Child("for"))}
	for _, u := range n.All("using") {
		s.Using = append(s.Using, b.userSpec(u))
	}
	return s
}

func buildShowOpenTables(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowOpenTablesStmt{
		NodeInfo: info(n),
		From:     b.ident(n.Child("from")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowRoutineStatus(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowRoutineStatusStmt{
		NodeInfo: info(n),
		Kind:     upper(n.Child("kind")),
		Filter:   b.showFilter(n.Child("filter")),
	}
}

func buildShowBinlogEvents(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowBinlogEventsStmt{
		NodeInfo: info(n),
		Kind:     upper(n.Child("kind")),
		In:       b.str(n.Child("in")),
		From:     b.expr(n.Child("from")),
		Limit:    b.limit(n.Child("limit")),
	}
}

func buildShowSimple(b *builder, n *cst.Node) core.Stmt {
	return &core.ShowSimpleStmt{NodeInfo: info(n), What: n.Words("what")}
}

// ---------- SET ----------

func buildSetVariable(b *builder, n *cst.Node) core.Stmt {
	s := &core.SetVariableStmt{NodeInfo: info(n)}
	for _, a := range n.All("assignment") {
		s.Assignments = append(s.Assignments, b.variableAssignment(a))
	}
	return s
}

// variableAssignment applies a leading scope keyword to the variable it
// qualifies. User variables cannot take one.
func (b *builder) variableAssignment(n *cst.Node) *core.VariableAssignment {
	a := &core.VariableAssignment{NodeInfo: info(n)}
	scope := n.Child("scope")
	v := n.Child("var")
	switch v.Rule {
	case cst.RuleUserVar:
		if scope != nil {
			b.fail(scope, "user variables have no scope: %s @%s", scope.Upper(), v.Child("name").Text())
			return nil
		}
		a.Variable = b.expr(v)
	case cst.RuleSysVar:
		if sv := b.sysVar(v, scope); sv != nil {
			a.Variable = sv
		}
	default:
		b.fail(v, "%s cannot be assigned", v.Rule)
		return nil
	}
	a.Value = b.expr(n.Child("value"))
	return a
}

func buildSetNames(b *builder, n *cst.Node) core.Stmt {
	s := &core.SetNamesStmt{NodeInfo: info(n), Default: n.Has("default")}
	if cs := n.Child("charset"); cs != nil {
		s.Charset = cs.Text()
	}
	if c := n.Child("collate"); c != nil {
		s.Collate = c.Text()
	}
	return s
}

func buildSetCharset(b *builder, n *cst.Node) core.Stmt {
	s := &core.SetCharsetStmt{NodeInfo: info(n), Default: n.Has("default")}
	if cs := n.Child("charset"); cs != nil {
		s.Charset = cs.Text()
	}
	return s
}

func buildSetResourceGroup(b *builder, n *cst.Node) core.Stmt {
	s := &core.SetResourceGroupStmt{NodeInfo: info(n), Name: b.ident(n.Child("name"))}
	for _, t := range n.All("thread") {
		s.Threads = append(s.Threads, b.literal(t))
	}
	return s
}

// ---------- Table Maintenance ----------

func buildAnalyzeTable(b *builder, n *cst.Node) core.Stmt {
	s := &core.AnalyzeTableStmt{
		NodeInfo: info(n),
		Option:   upper(n.Child("binlog")),
		Tables:   b.tableNames(n.All("table")),
	}
	if h := n.Child("histogram"); h != nil {
		s.Histogram = &core.HistogramOp{
			NodeInfo: info(h),
			Drop:     h.Child("action").Upper() == "DROP",
			Columns:  b.idents(h.All("column")),
			Buckets:  b.literal(h.Child("buckets")),
		}
		if len(s.Tables) != 1 {
			b.fail(h, "histogram operations take exactly one table, got %d", len(s.Tables))
			return nil
		}
	}
	return s
}

func buildCheckTable(b *builder, n *cst.Node) core.Stmt {
	return &core.CheckTableStmt{
		NodeInfo: info(n),
		Tables:   b.tableNames(n.All("table")),
		Options:  b.phrases(n.All("option")),
	}
}

func buildChecksumTable(b *builder, n *cst.Node) core.Stmt {
	return &core.ChecksumTableStmt{
		NodeInfo: info(n),
		Tables:   b.tableNames(n.All("table")),
		Option:   upper(n.Child("option")),
	}
}

func buildOptimizeTable(b *builder, n *cst.Node) core.Stmt {
	return &core.OptimizeTableStmt{
		NodeInfo: info(n),
		Option:   upper(n.Child("binlog")),
		Tables:   b.tableNames(n.All("table")),
	}
}

func buildRepairTable(b *builder, n *cst.Node) core.Stmt {
	return &core.RepairTableStmt{
		NodeInfo: info(n),
		Option:   upper(n.Child("binlog")),
		Tables:   b.tableNames(n.All("table")),
		Options:  b.phrases(n.All("option")),
	}
}

// ---------- Server Administration ----------

func buildFlush(b *builder, n *cst.Node) core.Stmt {
	return &core.FlushStmt{
		NodeInfo:     info(n),
		Option:       upper(n.Child("binlog")),
		Options:      b.phrases(n.All("option")),
		Tables:       n.Has("tables"),
		TableNames:   b.tableNames(n.All("table")),
		WithReadLock: n.Has("read_lock"),
		ForExport:    n.Has("export"),
	}
}

func buildKill(b *builder, n *cst.Node) core.Stmt {
	return &core.KillStmt{NodeInfo: info(n), Kind: upper(n.Child("kind")), ID: b.expr(n.Child("id"))}
}

func buildCacheIndex(b *builder, n *cst.Node) core.Stmt {
	return &core.CacheIndexStmt{
		NodeInfo: info(n),
		Tables:   b.tableIndexLists(n.All("table")),
		Cache:    b.ident(n.Child("cache")),
	}
}

func buildLoadIndex(b *builder, n *cst.Node) core.Stmt {
	return &core.LoadIndexStmt{NodeInfo: info(n), Tables: b.tableIndexLists(n.All("table"))}
}

func buildReset(b *builder, n *cst.Node) core.Stmt {
	return &core.ResetStmt{NodeInfo: info(n), Options: b.phrases(n.All("option"))}
}

func buildResetPersist(b *builder, n *cst.Node) core.Stmt {
	return &core.ResetPersistStmt{
		NodeInfo: info(n),
		IfExists: n.Has("if_exists"),
		Name:     b.ident(n.Child("name")),
	}
}

func buildRestart(b *builder, n *cst.Node) core.Stmt {
	return &core.RestartStmt{NodeInfo: info(n)}
}

func buildShutdown(b *builder, n *cst.Node) core.Stmt {
	return &core.ShutdownStmt{NodeInfo: info(n)}
}

func buildClone(b *builder, n *cst.Node) core.Stmt {
	c := &core.CloneStmt{
		NodeInfo:  info(n),
		Local:     n.Has("local"),
		Directory: b.str(n.Child("directory")),
		User:      b.userSpec(n.Child("user")),
		Port:      b.literal(n.Child("port")),
		Password:  b.str(n.Child("password")),
	}
	if n.Has("ssl") {
		c.RequireSSL = boolPtr(!n.Has("no"))
	}
	return c
}

func buildInstallComponent(b *builder, n *cst.Node) core.Stmt {
	return &core.InstallComponentStmt{NodeInfo: info(n), Components: b.strs(n.All("component"))}
}

func buildInstallPlugin(b *builder, n *cst.Node) core.Stmt {
	return &core.InstallPluginStmt{
		NodeInfo: info(n),
		Name:     b.ident(n.Child("name")),
		Soname:   b.str(n.Child("soname")),
	}
}

func buildUninstallComponent(b *builder, n *cst.Node) core.Stmt {
	return &core.UninstallComponentStmt{NodeInfo: info(n), Components: b.strs(n.All("component"))}
}

func buildUninstallPlugin(b *builder, n *cst.Node) core.Stmt {
	return &core.UninstallPluginStmt{NodeInfo: info(n), Name: b.ident(n.Child("name"))}
}

func buildBinlog(b *builder, n *cst.Node) core.Stmt {
	return &core.BinlogStmt{NodeInfo: info(n), Value: b.str(n.Child("value"))}
}

// ---------- Resource Groups ----------

func (b *builder) vcpus(nodes []*cst.Node) []*core.VCPURange {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*core.VCPURange, 0, len(nodes))
	for _, n := range nodes {
		r := &core.VCPURange{NodeInfo: info(n), Start: b.str(n.Child("start")), Last: b.str(n.Child("end"))}
		if r.Last != "" && literalLess(r.Last, r.Start) {
			b.fail(n, "VCPU range %s-%s is reversed", r.Start, r.Last)
			return nil
		}
		out = append(out, r)
	}
	return out
}

// literalLess compares two unsigned integer literals.
func literalLess(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func enabled(n *cst.Node) *bool {
	e := n.Child("enable")
	if e == nil {
		return nil
	}
	return boolPtr(e.Upper() == "ENABLE")
}

func buildCreateResourceGroup(b *builder, n *cst.Node) core.Stmt {
	return &core.CreateResourceGroupStmt{
		NodeInfo: info(n),
		Name:     b.ident(n.Child("name")),
		Type:     upper(n.Child("type")),
		VCPUs:    b.vcpus(n.All("vcpu")),
		Priority: b.literal(n.Child("priority")),
		Enabled:  enabled(n),
	}
}

func buildAlterResourceGroup(b *builder, n *cst.Node) core.Stmt {
	return &core.AlterResourceGroupStmt{
		NodeInfo: info(n),
		Name:     b.ident(n.Child("name")),
		VCPUs:    b.vcpus(n.All("vcpu")),
		Priority: b.literal(n.Child("priority")),
		Enabled:  enabled(n),
		Force:    n.Has("force"),
	}
}

func buildDropResourceGroup(b *builder, n *cst.Node) core.Stmt {
	return &core.DropResourceGroupStmt{
		NodeInfo: info(n),
		Name:     b.ident(n.Child("name")),
		Force:    n.Has("force"),
	}
}
