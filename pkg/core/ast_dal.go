package core

import "strings"

// ---------- Shared DAL Pieces ----------

// ShowFilter is the LIKE 'pattern' or WHERE expr suffix of SHOW statements.
// At most one of Like and Where is set.
type ShowFilter struct {
	NodeInfo
	Like  *Literal
	Where Expr
}

// UserSpec names an account: 'user'@'host' or CURRENT_USER.
type UserSpec struct {
	NodeInfo
	Name        string
	Host        string
	HasHost     bool
	CurrentUser bool
}

// String renders the account in 'user'@'host' form.
func (u *UserSpec) String() string {
	if u.CurrentUser {
		return "CURRENT_USER"
	}
	s := "'" + strings.ReplaceAll(u.Name, "'", "''") + "'"
	if u.HasHost {
		s += "@'" + strings.ReplaceAll(u.Host, "'", "''") + "'"
	}
	return s
}

// TableIndexList is one table entry of CACHE INDEX / LOAD INDEX INTO CACHE.
type TableIndexList struct {
	NodeInfo
	Table        *TableName
	Partitions   []*Identifier
	PartitionAll bool
	Indexes      []*Identifier
	IgnoreLeaves bool
}

// ---------- Utility Statements ----------

// UseStmt is USE db.
type UseStmt struct {
	NodeInfo
	Schema *Identifier
}

func (*UseStmt) stmtNode() {}

// HelpStmt is HELP 'topic'.
type HelpStmt struct {
	NodeInfo
	Topic string
}

func (*HelpStmt) stmtNode() {}

// ExplainStmt is EXPLAIN [ANALYZE] [FORMAT = fmt] stmt or EXPLAIN FOR CONNECTION n.
// Keyword records which of EXPLAIN, DESCRIBE or DESC introduced it.
type ExplainStmt struct {
	NodeInfo
	Keyword       string
	Analyze       bool
	Format        string
	Stmt          Stmt
	ForConnection Expr
}

func (*ExplainStmt) stmtNode() {}

// DescribeStmt is DESCRIBE t [col | 'pattern'] (also spelled DESC or EXPLAIN).
type DescribeStmt struct {
	NodeInfo
	Keyword string
	Table   *TableName
	Column  *Identifier
	Pattern *Literal
}

func (*DescribeStmt) stmtNode() {}

// ---------- SHOW ----------

// ShowDatabasesStmt is SHOW DATABASES|SCHEMAS [filter].
type ShowDatabasesStmt struct {
	NodeInfo
	Filter *ShowFilter
}

func (*ShowDatabasesStmt) stmtNode() {}

// ShowTablesStmt is SHOW [EXTENDED] [FULL] TABLES [FROM db] [filter].
type ShowTablesStmt struct {
	NodeInfo
	Extended bool
	Full     bool
	From     *Identifier
	Filter   *ShowFilter
}

func (*ShowTablesStmt) stmtNode() {}

// ShowTableStatusStmt is SHOW TABLE STATUS [FROM db] [filter].
type ShowTableStatusStmt struct {
	NodeInfo
	From   *Identifier
	Filter *ShowFilter
}

func (*ShowTableStatusStmt) stmtNode() {}

// ShowColumnsStmt is SHOW [EXTENDED] [FULL] COLUMNS|FIELDS FROM t [FROM db] [filter].
type ShowColumnsStmt struct {
	NodeInfo
	Extended bool
	Full     bool
	Table    *TableName
	From     *Identifier
	Filter   *ShowFilter
}

func (*ShowColumnsStmt) stmtNode() {}

// ShowIndexStmt is SHOW [EXTENDED] INDEX|INDEXES|KEYS FROM t [FROM db] [WHERE expr].
type ShowIndexStmt struct {
	NodeInfo
	Extended bool
	Table    *TableName
	From     *Identifier
	Where    Expr
}

func (*ShowIndexStmt) stmtNode() {}

// ShowCreateStmt is SHOW CREATE {TABLE|VIEW|DATABASE|...} name.
// User is set instead of Name for SHOW CREATE USER.
type ShowCreateStmt struct {
	NodeInfo
	Object      string
	IfNotExists bool
	Name        *TableName
	User        *UserSpec
}

func (*ShowCreateStmt) stmtNode() {}

// ShowVariablesStmt is SHOW [GLOBAL|SESSION] VARIABLES [filter]. Dialects
// that show a single setting (SHOW name, SHOW ALL) fill Name or All instead.
type ShowVariablesStmt struct {
	NodeInfo
	Scope  VariableScope
	Name   *Identifier
	All    bool
	Filter *ShowFilter
}

func (*ShowVariablesStmt) stmtNode() {}

// ShowStatusStmt is SHOW [GLOBAL|SESSION] STATUS [filter].
type ShowStatusStmt struct {
	NodeInfo
	Scope  VariableScope
	Filter *ShowFilter
}

func (*ShowStatusStmt) stmtNode() {}

// ShowProcessListStmt is SHOW [FULL] PROCESSLIST.
type ShowProcessListStmt struct {
	NodeInfo
	Full bool
}

func (*ShowProcessListStmt) stmtNode() {}

// ShowDiagnosticsStmt is SHOW WARNINGS|ERRORS [LIMIT ...] or SHOW COUNT(*) WARNINGS|ERRORS.
type ShowDiagnosticsStmt struct {
	NodeInfo
	Kind  string // WARNINGS or ERRORS
	Count bool
	Limit *Limit
}

func (*ShowDiagnosticsStmt) stmtNode() {}

// ShowTriggersStmt is SHOW [FULL] TRIGGERS [FROM db] [filter].
type ShowTriggersStmt struct {
	NodeInfo
	Full   bool
	From   *Identifier
	Filter *ShowFilter
}

func (*ShowTriggersStmt) stmtNode() {}

// ShowEventsStmt is SHOW EVENTS [FROM db] [filter].
type ShowEventsStmt struct {
	NodeInfo
	From   *Identifier
	Filter *ShowFilter
}

func (*ShowEventsStmt) stmtNode() {}

// ShowCharsetStmt is SHOW CHARACTER SET|CHARSET [filter].
type ShowCharsetStmt struct {
	NodeInfo
	Filter *ShowFilter
}

func (*ShowCharsetStmt) stmtNode() {}

// ShowCollationStmt is SHOW COLLATION [filter].
type ShowCollationStmt struct {
	NodeInfo
	Filter *ShowFilter
}

func (*ShowCollationStmt) stmtNode() {}

// ShowGrantsStmt is SHOW GRANTS [FOR user [USING role, ...]].
type ShowGrantsStmt struct {
	NodeInfo
	For   *UserSpec
	Using []*UserSpec
}

func (*ShowGrantsStmt) stmtNode() {}

// ShowOpenTablesStmt is SHOW OPEN TABLES [FROM db] [filter].
type ShowOpenTablesStmt struct {
	NodeInfo
	From   *Identifier
	Filter *ShowFilter
}

func (*ShowOpenTablesStmt) stmtNode() {}

// ShowRoutineStatusStmt is SHOW PROCEDURE|FUNCTION STATUS [filter].
type ShowRoutineStatusStmt struct {
	NodeInfo
	Kind   string
	Filter *ShowFilter
}

func (*ShowRoutineStatusStmt) stmtNode() {}

// ShowBinlogEventsStmt is SHOW BINLOG|RELAYLOG EVENTS [IN 'log'] [FROM pos] [LIMIT ...].
type ShowBinlogEventsStmt struct {
	NodeInfo
	Kind  string
	In    string
	From  Expr
	Limit *Limit
}

func (*ShowBinlogEventsStmt) stmtNode() {}

// ShowSimpleStmt is a SHOW form without arguments, such as SHOW ENGINES or
// SHOW MASTER STATUS. What holds the upper-cased words after SHOW.
type ShowSimpleStmt struct {
	NodeInfo
	What string
}

func (*ShowSimpleStmt) stmtNode() {}

// ---------- SET ----------

// SetVariableStmt is SET assignment, ...
type SetVariableStmt struct {
	NodeInfo
	Assignments []*VariableAssignment
}

func (*SetVariableStmt) stmtNode() {}

// VariableAssignment is one target = value pair of SET. Variable is a
// *UserVariable or a *SystemVariable; the value DEFAULT is a *DefaultExpr.
type VariableAssignment struct {
	NodeInfo
	Variable Expr
	Value    Expr
}

// SetNamesStmt is SET NAMES charset [COLLATE collation] or SET NAMES DEFAULT.
type SetNamesStmt struct {
	NodeInfo
	Charset string
	Collate string
	Default bool
}

func (*SetNamesStmt) stmtNode() {}

// SetCharsetStmt is SET CHARACTER SET|CHARSET charset or DEFAULT.
type SetCharsetStmt struct {
	NodeInfo
	Charset string
	Default bool
}

func (*SetCharsetStmt) stmtNode() {}

// SetResourceGroupStmt is SET RESOURCE GROUP g [FOR thread_id, ...].
type SetResourceGroupStmt struct {
	NodeInfo
	Name    *Identifier
	Threads []*Literal
}

func (*SetResourceGroupStmt) stmtNode() {}

// ---------- Table Maintenance ----------

// HistogramOp is the UPDATE|DROP HISTOGRAM ON cols part of ANALYZE TABLE.
type HistogramOp struct {
	NodeInfo
	Drop    bool
	Columns []*Identifier
	Buckets *Literal
}

// AnalyzeTableStmt is ANALYZE [NO_WRITE_TO_BINLOG|LOCAL] TABLE t, ... [histogram].
type AnalyzeTableStmt struct {
	NodeInfo
	Option    string
	Tables    []*TableName
	Histogram *HistogramOp
}

func (*AnalyzeTableStmt) stmtNode() {}

// CheckTableStmt is CHECK TABLE t, ... [options].
type CheckTableStmt struct {
	NodeInfo
	Tables  []*TableName
	Options []string
}

func (*CheckTableStmt) stmtNode() {}

// ChecksumTableStmt is CHECKSUM TABLE t, ... [QUICK|EXTENDED].
type ChecksumTableStmt struct {
	NodeInfo
	Tables []*TableName
	Option string
}

func (*ChecksumTableStmt) stmtNode() {}

// OptimizeTableStmt is OPTIMIZE [NO_WRITE_TO_BINLOG|LOCAL] TABLE t, ...
type OptimizeTableStmt struct {
	NodeInfo
	Option string
	Tables []*TableName
}

func (*OptimizeTableStmt) stmtNode() {}

// RepairTableStmt is REPAIR [NO_WRITE_TO_BINLOG|LOCAL] TABLE t, ... [QUICK] [EXTENDED] [USE_FRM].
type RepairTableStmt struct {
	NodeInfo
	Option  string
	Tables  []*TableName
	Options []string
}

func (*RepairTableStmt) stmtNode() {}

// ---------- Server Administration ----------

// FlushStmt is FLUSH [NO_WRITE_TO_BINLOG|LOCAL] options, or the
// FLUSH TABLES [t, ...] [WITH READ LOCK | FOR EXPORT] form when Tables is set.
type FlushStmt struct {
	NodeInfo
	Option       string
	Options      []string
	Tables       bool
	TableNames   []*TableName
	WithReadLock bool
	ForExport    bool
}

func (*FlushStmt) stmtNode() {}

// KillStmt is KILL [CONNECTION|QUERY] id.
type KillStmt struct {
	NodeInfo
	Kind string
	ID   Expr
}

func (*KillStmt) stmtNode() {}

// CacheIndexStmt is CACHE INDEX tables IN cache.
type CacheIndexStmt struct {
	NodeInfo
	Tables []*TableIndexList
	Cache  *Identifier
}

func (*CacheIndexStmt) stmtNode() {}

// LoadIndexStmt is LOAD INDEX INTO CACHE tables.
type LoadIndexStmt struct {
	NodeInfo
	Tables []*TableIndexList
}

func (*LoadIndexStmt) stmtNode() {}

// ResetStmt is RESET option, ...
type ResetStmt struct {
	NodeInfo
	Options []string
}

func (*ResetStmt) stmtNode() {}

// ResetPersistStmt is RESET PERSIST [[IF EXISTS] name].
type ResetPersistStmt struct {
	NodeInfo
	IfExists bool
	Name     *Identifier
}

func (*ResetPersistStmt) stmtNode() {}

// RestartStmt is RESTART.
type RestartStmt struct {
	NodeInfo
}

func (*RestartStmt) stmtNode() {}

// ShutdownStmt is SHUTDOWN.
type ShutdownStmt struct {
	NodeInfo
}

func (*ShutdownStmt) stmtNode() {}

// CloneStmt is CLONE LOCAL DATA DIRECTORY 'dir' or
// CLONE INSTANCE FROM user@host:port IDENTIFIED BY 'pw' [...].
type CloneStmt struct {
	NodeInfo
	Local      bool
	Directory  string
	User       *UserSpec
	Port       *Literal
	Password   string
	RequireSSL *bool
}

func (*CloneStmt) stmtNode() {}

// InstallComponentStmt is INSTALL COMPONENT 'urn', ...
type InstallComponentStmt struct {
	NodeInfo
	Components []string
}

func (*InstallComponentStmt) stmtNode() {}

// InstallPluginStmt is INSTALL PLUGIN name SONAME 'lib'.
type InstallPluginStmt struct {
	NodeInfo
	Name   *Identifier
	Soname string
}

func (*InstallPluginStmt) stmtNode() {}

// UninstallComponentStmt is UNINSTALL COMPONENT 'urn', ...
type UninstallComponentStmt struct {
	NodeInfo
	Components []string
}

func (*UninstallComponentStmt) stmtNode() {}

// UninstallPluginStmt is UNINSTALL PLUGIN name.
type UninstallPluginStmt struct {
	NodeInfo
	Name *Identifier
}

func (*UninstallPluginStmt) stmtNode() {}

// BinlogStmt is BINLOG 'base64'.
type BinlogStmt struct {
	NodeInfo
	Value string
}

func (*BinlogStmt) stmtNode() {}

// ---------- Resource Groups ----------

// VCPURange is one VCPU entry: a single CPU or an inclusive range.
type VCPURange struct {
	NodeInfo
	Start string
	Last  string
}

// CreateResourceGroupStmt is CREATE RESOURCE GROUP g TYPE = USER|SYSTEM [...].
type CreateResourceGroupStmt struct {
	NodeInfo
	Name     *Identifier
	Type     string
	VCPUs    []*VCPURange
	Priority *Literal
	Enabled  *bool
}

func (*CreateResourceGroupStmt) stmtNode() {}

// AlterResourceGroupStmt is ALTER RESOURCE GROUP g [...] [FORCE].
type AlterResourceGroupStmt struct {
	NodeInfo
	Name     *Identifier
	VCPUs    []*VCPURange
	Priority *Literal
	Enabled  *bool
	Force    bool
}

func (*AlterResourceGroupStmt) stmtNode() {}

// DropResourceGroupStmt is DROP RESOURCE GROUP g [FORCE].
type DropResourceGroupStmt struct {
	NodeInfo
	Name  *Identifier
	Force bool
}

func (*DropResourceGroupStmt) stmtNode() {}
