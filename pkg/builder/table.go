package builder

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Table References ----------

func (b *builder) tableName(n *cst.Node) *core.TableName {
	if n == nil || b.failed() {
		return nil
	}
	t := &core.TableName{NodeInfo: info(n)}
	t.Schema, t.Name = b.qualifiedName(n.Child("name"), "table")
	if b.failed() {
		return nil
	}
	t.Partitions = b.idents(n.All("partition"))
	t.Alias = b.ident(n.Child("alias"))
	for _, h := range n.All("hint") {
		t.IndexHints = append(t.IndexHints, b.indexHint(h))
	}
	return t
}

// qualifiedName splits [schema.]name. what names the object in errors.
func (b *builder) qualifiedName(n *cst.Node, what string) (schema, name *core.Identifier) {
	parts := b.idents(n.All("part"))
	switch len(parts) {
	case 1:
		return nil, parts[0]
	case 2:
		return parts[0], parts[1]
	}
	b.fail(n, "%s name has too many qualifiers", what)
	return nil, nil
}

func (b *builder) indexHint(n *cst.Node) *core.IndexHint {
	return &core.IndexHint{
		NodeInfo: info(n),
		Action:   core.IndexHintAction(n.Child("action").Upper()),
		For:      n.Words("for"),
		Indexes:  b.idents(n.All("index")),
	}
}

func buildDerivedTable(b *builder, n *cst.Node) core.TableRef {
	return &core.DerivedTable{
		NodeInfo: info(n),
		Lateral:  n.Has("lateral"),
		Query:    b.selectStmt(n.Child("query")),
		Alias:    b.ident(n.Child("alias")),
		Columns:  b.idents(n.All("col")),
	}
}

var joinTypes = map[token.TokenType]core.JoinType{
	token.INNER:         core.JoinInner,
	token.CROSS:         core.JoinCross,
	token.STRAIGHT_JOIN: core.JoinStraight,
	token.LEFT:          core.JoinLeft,
	token.RIGHT:         core.JoinRight,
	token.FULL:          core.JoinFull,
}

func buildJoin(b *builder, n *cst.Node) core.TableRef {
	j := &core.JoinExpr{
		NodeInfo: info(n),
		Left:     b.tableRef(n.Child("left")),
		Natural:  n.Has("natural"),
		Right:    b.tableRef(n.Child("right")),
		On:       b.expr(n.Child("on")),
		Using:    b.idents(n.All("col")),
	}
	if t := n.Child("type"); t != nil {
		jt, ok := joinTypes[t.Token.Type]
		if !ok {
			b.fail(t, "unknown join type %s", t.Token.Raw)
			return nil
		}
		j.Type = jt
	}
	return j
}

func buildParenTableRef(b *builder, n *cst.Node) core.TableRef {
	return &core.ParenTableRef{NodeInfo: info(n), Items: b.tableRefs(n.All("ref"))}
}
