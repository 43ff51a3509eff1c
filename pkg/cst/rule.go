package cst

// Rule names the grammar production a node was produced by.
type Rule string

// Leaf and script rules.
const (
	RuleToken  Rule = "token"
	RuleScript Rule = "script"
)

// Query rules.
const (
	RuleSelectStmt    Rule = "select_stmt"
	RuleWith          Rule = "with_clause"
	RuleCTE           Rule = "cte"
	RuleQuerySpec     Rule = "query_spec"
	RuleSetOperation  Rule = "set_operation"
	RuleParenQuery    Rule = "paren_query"
	RuleTableQuery    Rule = "table_query"
	RuleValuesQuery   Rule = "values_query"
	RuleSelectItem    Rule = "select_item"
	RuleFromClause    Rule = "from_clause"
	RuleWhereClause   Rule = "where_clause"
	RuleGroupBy       Rule = "group_by_clause"
	RuleHaving        Rule = "having_clause"
	RuleWindowClause  Rule = "window_clause"
	RuleNamedWindow   Rule = "named_window"
	RuleOrderBy       Rule = "order_by_clause"
	RuleOrderItem     Rule = "order_item"
	RuleLimit         Rule = "limit_clause"
	RuleLock          Rule = "lock_clause"
	RuleInto          Rule = "into_clause"
	RuleExportOptions Rule = "export_options"
)

// Table reference rules.
const (
	RuleTableName     Rule = "table_name"
	RuleQualifiedName Rule = "qualified_name"
	RuleIndexHint     Rule = "index_hint"
	RuleDerivedTable  Rule = "derived_table"
	RuleJoin          Rule = "join"
	RuleParenTableRef Rule = "paren_table_ref"
)

// Expression rules.
const (
	RuleBinary      Rule = "binary_expr"
	RuleUnary       Rule = "unary_expr"
	RuleLiteral     Rule = "literal"
	RuleColumnRef   Rule = "column_ref"
	RuleParam       Rule = "param_marker"
	RuleUserVar     Rule = "user_variable"
	RuleSysVar      Rule = "system_variable"
	RuleFuncCall    Rule = "function_call"
	RuleGroupConcat Rule = "group_concat"
	RuleCast        Rule = "cast_expr"
	RuleConvert     Rule = "convert_expr"
	RuleExtract     Rule = "extract_expr"
	RuleTrim        Rule = "trim_expr"
	RuleSubstring   Rule = "substring_expr"
	RulePosition    Rule = "position_expr"
	RuleChar        Rule = "char_expr"
	RuleCase        Rule = "case_expr"
	RuleInterval    Rule = "interval_expr"
	RuleSubquery    Rule = "subquery_expr"
	RuleExists      Rule = "exists_expr"
	RuleIn          Rule = "in_expr"
	RuleBetween     Rule = "between_expr"
	RuleLike        Rule = "like_expr"
	RuleRegexp      Rule = "regexp_expr"
	RuleIs          Rule = "is_expr"
	RuleCollate     Rule = "collate_expr"
	RuleMatch       Rule = "match_expr"
	RuleRow         Rule = "row_expr"
	RuleParen       Rule = "paren_expr"
	RuleDefault     Rule = "default_expr"
	RuleStar        Rule = "star_expr"
	RuleSetValue    Rule = "set_value" // keyword value of SET (ON, ALL, BINARY ...)
	RuleWhen        Rule = "when_clause"
	RuleDataType    Rule = "data_type"
	RuleWindowSpec  Rule = "window_spec"
	RuleFrame       Rule = "frame_clause"
	RuleFrameBound  Rule = "frame_bound"
	RuleExprList    Rule = "expr_list"
	RuleIdentList   Rule = "ident_list"
)

// DML rules.
const (
	RuleInsert       Rule = "insert_stmt"
	RuleReplace      Rule = "replace_stmt"
	RuleAssignment   Rule = "assignment"
	RuleUpdate       Rule = "update_stmt"
	RuleDelete       Rule = "delete_stmt"
	RuleCall         Rule = "call_stmt"
	RuleDo           Rule = "do_stmt"
	RuleHandlerOpen  Rule = "handler_open_stmt"
	RuleHandlerRead  Rule = "handler_read_stmt"
	RuleHandlerClose Rule = "handler_close_stmt"
	RuleLoadData     Rule = "load_data_stmt"
	RuleLoadXML      Rule = "load_xml_stmt"
	RuleImportTable  Rule = "import_table_stmt"
)

// DAL rules.
const (
	RuleUse                 Rule = "use_stmt"
	RuleHelp                Rule = "help_stmt"
	RuleExplain             Rule = "explain_stmt"
	RuleDescribe            Rule = "describe_stmt"
	RuleShowFilter          Rule = "show_filter"
	RuleUserSpec            Rule = "user_spec"
	RuleShowDatabases       Rule = "show_databases_stmt"
	RuleShowTables          Rule = "show_tables_stmt"
	RuleShowTableStatus     Rule = "show_table_status_stmt"
	RuleShowColumns         Rule = "show_columns_stmt"
	RuleShowIndex           Rule = "show_index_stmt"
	RuleShowCreate          Rule = "show_create_stmt"
	RuleShowVariables       Rule = "show_variables_stmt"
	RuleShowStatus          Rule = "show_status_stmt"
	RuleShowProcessList     Rule = "show_processlist_stmt"
	RuleShowDiagnostics     Rule = "show_diagnostics_stmt"
	RuleShowTriggers        Rule = "show_triggers_stmt"
	RuleShowEvents          Rule = "show_events_stmt"
	RuleShowCharset         Rule = "show_charset_stmt"
	RuleShowCollation       Rule = "show_collation_stmt"
	RuleShowGrants          Rule = "show_grants_stmt"
	RuleShowOpenTables      Rule = "show_open_tables_stmt"
	RuleShowRoutineStatus   Rule = "show_routine_status_stmt"
	RuleShowBinlogEvents    Rule = "show_binlog_events_stmt"
	RuleShowSimple          Rule = "show_simple_stmt"
	RuleSetVariable         Rule = "set_variable_stmt"
	RuleVariableAssignment  Rule = "variable_assignment"
	RuleSetNames            Rule = "set_names_stmt"
	RuleSetCharset          Rule = "set_charset_stmt"
	RuleSetResourceGroup    Rule = "set_resource_group_stmt"
	RuleAnalyzeTable        Rule = "analyze_table_stmt"
	RuleHistogram           Rule = "histogram"
	RuleCheckTable          Rule = "check_table_stmt"
	RuleChecksumTable       Rule = "checksum_table_stmt"
	RuleOptimizeTable       Rule = "optimize_table_stmt"
	RuleRepairTable         Rule = "repair_table_stmt"
	RuleFlush               Rule = "flush_stmt"
	RuleKill                Rule = "kill_stmt"
	RuleCacheIndex          Rule = "cache_index_stmt"
	RuleLoadIndex           Rule = "load_index_stmt"
	RuleTableIndexList      Rule = "table_index_list"
	RuleReset               Rule = "reset_stmt"
	RuleResetPersist        Rule = "reset_persist_stmt"
	RuleRestart             Rule = "restart_stmt"
	RuleShutdown            Rule = "shutdown_stmt"
	RuleClone               Rule = "clone_stmt"
	RuleInstallComponent    Rule = "install_component_stmt"
	RuleInstallPlugin       Rule = "install_plugin_stmt"
	RuleUninstallComponent  Rule = "uninstall_component_stmt"
	RuleUninstallPlugin     Rule = "uninstall_plugin_stmt"
	RuleBinlog              Rule = "binlog_stmt"
	RuleCreateResourceGroup Rule = "create_resource_group_stmt"
	RuleAlterResourceGroup  Rule = "alter_resource_group_stmt"
	RuleDropResourceGroup   Rule = "drop_resource_group_stmt"
	RuleVCPU                Rule = "vcpu_range"
)

// Rules lists every rule the parser can produce.
func Rules() []Rule {
	return []Rule{
		RuleToken, RuleScript,

		RuleSelectStmt, RuleWith, RuleCTE, RuleQuerySpec, RuleSetOperation, RuleParenQuery,
		RuleTableQuery, RuleValuesQuery, RuleSelectItem, RuleFromClause, RuleWhereClause,
		RuleGroupBy, RuleHaving, RuleWindowClause, RuleNamedWindow, RuleOrderBy, RuleOrderItem,
		RuleLimit, RuleLock, RuleInto, RuleExportOptions,

		RuleTableName, RuleQualifiedName, RuleIndexHint, RuleDerivedTable, RuleJoin,
		RuleParenTableRef,

		RuleBinary, RuleUnary, RuleLiteral, RuleColumnRef, RuleParam, RuleUserVar, RuleSysVar,
		RuleFuncCall, RuleGroupConcat, RuleCast, RuleConvert, RuleExtract, RuleTrim,
		RuleSubstring, RulePosition, RuleChar, RuleCase, RuleInterval, RuleSubquery, RuleExists,
		RuleIn, RuleBetween, RuleLike, RuleRegexp, RuleIs, RuleCollate, RuleMatch, RuleRow,
		RuleParen, RuleDefault, RuleStar, RuleSetValue, RuleWhen, RuleDataType, RuleWindowSpec,
		RuleFrame, RuleFrameBound, RuleExprList, RuleIdentList,

		RuleInsert, RuleReplace, RuleAssignment, RuleUpdate, RuleDelete, RuleCall, RuleDo,
		RuleHandlerOpen, RuleHandlerRead, RuleHandlerClose, RuleLoadData, RuleLoadXML,
		RuleImportTable,

		RuleUse, RuleHelp, RuleExplain, RuleDescribe, RuleShowFilter, RuleUserSpec,
		RuleShowDatabases, RuleShowTables, RuleShowTableStatus, RuleShowColumns, RuleShowIndex,
		RuleShowCreate, RuleShowVariables, RuleShowStatus, RuleShowProcessList,
		RuleShowDiagnostics, RuleShowTriggers, RuleShowEvents, RuleShowCharset,
		RuleShowCollation, RuleShowGrants, RuleShowOpenTables, RuleShowRoutineStatus,
		RuleShowBinlogEvents, RuleShowSimple, RuleSetVariable, RuleVariableAssignment,
		RuleSetNames, RuleSetCharset, RuleSetResourceGroup, RuleAnalyzeTable, RuleHistogram,
		RuleCheckTable, RuleChecksumTable, RuleOptimizeTable, RuleRepairTable, RuleFlush,
		RuleKill, RuleCacheIndex, RuleLoadIndex, RuleTableIndexList, RuleReset,
		RuleResetPersist, RuleRestart, RuleShutdown, RuleClone, RuleInstallComponent,
		RuleInstallPlugin, RuleUninstallComponent, RuleUninstallPlugin, RuleBinlog,
		RuleCreateResourceGroup, RuleAlterResourceGroup, RuleDropResourceGroup, RuleVCPU,
	}
}
