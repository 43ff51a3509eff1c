package lineage

// relation is a named intermediate result: a CTE or a derived table.
type relation struct {
	columns []*ColumnLineage
}

// scopeEntry is one FROM item visible in a scope. Exactly one of table and
// rel is set.
type scopeEntry struct {
	key        string // normalized alias or table name
	table      string // qualified physical table name
	rel        *relation
	occurrence int // index into extractor.tables, or -1
}

// column resolves a column of this entry to its sources.
func (s *scopeEntry) column(e *extractor, name string) []SourceColumn {
	if s.rel == nil {
		return []SourceColumn{{Table: s.table, Column: name}}
	}
	want := e.normalize(name)
	for _, c := range s.rel.columns {
		if e.normalize(c.Name) == want {
			return c.Sources
		}
	}
	return nil
}

// scope is the name environment of one query level. Lookups fall back to
// the parent so correlated subqueries see the outer FROM items.
type scope struct {
	parent  *scope
	entries []*scopeEntry
	ctes    map[string]*relation
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, ctes: make(map[string]*relation)}
}

func (s *scope) local() []*scopeEntry {
	return s.entries
}

func (s *scope) lookup(key string) (*scopeEntry, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		for _, entry := range sc.entries {
			if entry.key == key {
				return entry, true
			}
		}
	}
	return nil, false
}

func (s *scope) lookupCTE(key string) (*relation, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if rel, ok := sc.ctes[key]; ok {
			return rel, true
		}
	}
	return nil, false
}

// resolveUnqualified finds the entry an unqualified column belongs to. The
// innermost level that has entries decides: a single entry owns every
// column, otherwise derived relations and schema tables are searched by
// column name.
func (s *scope) resolveUnqualified(e *extractor, column string) (*scopeEntry, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if len(sc.entries) == 0 {
			continue
		}
		if len(sc.entries) == 1 {
			return sc.entries[0], true
		}
		var found *scopeEntry
		for _, entry := range sc.entries {
			if entry.owns(e, column) {
				if found != nil {
					return nil, false
				}
				found = entry
			}
		}
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

func (s *scopeEntry) owns(e *extractor, column string) bool {
	if s.rel == nil {
		return e.hasColumn(s.table, column)
	}
	want := e.normalize(column)
	for _, c := range s.rel.columns {
		if e.normalize(c.Name) == want {
			return true
		}
	}
	return false
}

// occurrence returns the physical table occurrence named by key (an alias
// or table name) in this scope level. An empty key matches the only entry.
func (s *scope) occurrence(e *extractor, key string) (int, bool) {
	if key == "" {
		if len(s.entries) == 1 && s.entries[0].occurrence >= 0 {
			return s.entries[0].occurrence, true
		}
		return 0, false
	}
	want := e.normalize(key)
	for _, entry := range s.entries {
		if entry.key == want && entry.occurrence >= 0 {
			return entry.occurrence, true
		}
	}
	return 0, false
}
