package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Resource Groups ----------
//
// Resource groups are the only CREATE, ALTER and DROP forms the front end
// accepts.
//
//	create → CREATE RESOURCE GROUP g TYPE [=] {SYSTEM|USER} [VCPU [=] range, ...]
//	         [THREAD_PRIORITY [=] n] [ENABLE|DISABLE]
//	alter  → ALTER RESOURCE GROUP g [VCPU [=] range, ...] [THREAD_PRIORITY [=] n]
//	         [ENABLE|DISABLE] [FORCE]
//	drop   → DROP RESOURCE GROUP g [FORCE]
//	range  → n [- n]

func resourceGroup(p spi.ParserOps, rule cst.Rule) (*cst.Node, error) {
	n := statement(p, rule)
	if !p.CheckWords("RESOURCE", "GROUP") {
		return nil, p.Unexpected("RESOURCE GROUP")
	}
	p.Consume(n, "")
	p.Consume(n, "")
	name, err := ident(p)
	if err != nil {
		return nil, err
	}
	n.Add("name", name)
	return n, nil
}

func parseCreate(p spi.ParserOps) (*cst.Node, error) {
	n, err := resourceGroup(p, cst.RuleCreateResourceGroup)
	if err != nil {
		return nil, err
	}
	if err := expectWords(p, n, "", "TYPE"); err != nil {
		return nil, err
	}
	optionalEquals(p, n)
	if err := expectWords(p, n, "type", "SYSTEM", "USER"); err != nil {
		return nil, err
	}
	if err := resourceGroupOptions(p, n); err != nil {
		return nil, err
	}
	return n, nil
}

func parseAlter(p spi.ParserOps) (*cst.Node, error) {
	n, err := resourceGroup(p, cst.RuleAlterResourceGroup)
	if err != nil {
		return nil, err
	}
	if err := resourceGroupOptions(p, n); err != nil {
		return nil, err
	}
	p.Match(n, "force", token.FORCE)
	return n, nil
}

func parseDrop(p spi.ParserOps) (*cst.Node, error) {
	n, err := resourceGroup(p, cst.RuleDropResourceGroup)
	if err != nil {
		return nil, err
	}
	p.Match(n, "force", token.FORCE)
	return n, nil
}

func resourceGroupOptions(p spi.ParserOps, n *cst.Node) error {
	if matchWords(p, n, "", "VCPU") {
		optionalEquals(p, n)
		for {
			r, err := vcpuRange(p)
			if err != nil {
				return err
			}
			n.Add("vcpu", r)
			if p.Check(token.COMMA) && p.Peek().Is(token.NUMBER) {
				p.Consume(n, "")
			}
			if !p.Check(token.NUMBER) {
				break
			}
		}
	}
	if matchWords(p, n, "", "THREAD_PRIORITY") {
		optionalEquals(p, n)
		prio, err := signedNumber(p)
		if err != nil {
			return err
		}
		n.Add("priority", prio)
	}
	matchWords(p, n, "enable", "ENABLE", "DISABLE")
	return nil
}

func vcpuRange(p spi.ParserOps) (*cst.Node, error) {
	r := cst.New(cst.RuleVCPU)
	start, err := number(p)
	if err != nil {
		return nil, err
	}
	r.Add("start", start)
	if p.Match(r, "", token.MINUS) {
		end, err := number(p)
		if err != nil {
			return nil, err
		}
		r.Add("end", end)
	}
	return r, nil
}
