package ecsgrid

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/ashfall-games/ecsgrid/grid"
	"github.com/ashfall-games/ecsgrid/mask"
)

// QueryNode is one node of a boolean expression over component bits:
// A, A&B, A|B, !A, composed via Query.And/Or/Not. Matching is decided
// per partition signature via evaluate, not by reducing the whole
// expression to a single mask pair up front — that reduction cannot
// represent disjunction (A|B), only conjunction.
type QueryNode interface {
	// validate resolves every component referenced anywhere in the
	// expression against w's schema, independent of any partition, so
	// an unregistered component is reported even against an empty world.
	validate(w *World) error
	// evaluate reports whether sig satisfies this node.
	evaluate(sig mask.Mask, w *World) (bool, error)
}

// Query is the composable root of a boolean component expression.
type Query interface {
	QueryNode
	And(items ...any) QueryNode
	Or(items ...any) QueryNode
	Not(items ...any) QueryNode
}

type queryOp int

const (
	opAnd queryOp = iota
	opOr
	opNot
)

type compositeNode struct {
	op         queryOp
	children   []QueryNode
	components []Component
}

func newCompositeNode(op queryOp, components []Component, children []QueryNode) *compositeNode {
	return &compositeNode{op: op, components: components, children: children}
}

func (n *compositeNode) validate(w *World) error {
	for _, c := range n.components {
		if _, ok := w.table.Bit(c); !ok {
			return UnknownComponentError{Component: c}
		}
	}
	for _, child := range n.children {
		if err := child.validate(w); err != nil {
			return err
		}
	}
	return nil
}

func (n *compositeNode) evaluate(sig mask.Mask, w *World) (bool, error) {
	has := func(c Component) (bool, error) {
		bit, ok := w.table.Bit(c)
		if !ok {
			return false, UnknownComponentError{Component: c}
		}
		return sig.Has(bit), nil
	}

	switch n.op {
	case opAnd:
		for _, c := range n.components {
			ok, err := has(c)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		for _, child := range n.children {
			ok, err := child.evaluate(sig, w)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case opOr:
		for _, c := range n.components {
			ok, err := has(c)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		for _, child := range n.children {
			ok, err := child.evaluate(sig, w)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	default: // opNot: true iff none of the listed components or children hold
		for _, c := range n.components {
			ok, err := has(c)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		for _, child := range n.children {
			ok, err := child.evaluate(sig, w)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		return true, nil
	}
}

type query struct {
	root QueryNode
}

// NewQuery returns an empty, composable Query. An empty query (no
// And/Or/Not ever called) matches every partition.
func NewQuery() Query {
	return &query{}
}

func (q *query) validate(w *World) error {
	if q.root == nil {
		return nil
	}
	return q.root.validate(w)
}

func (q *query) evaluate(sig mask.Mask, w *World) (bool, error) {
	if q.root == nil {
		return true, nil
	}
	return q.root.evaluate(sig, w)
}

func (q *query) And(items ...any) QueryNode {
	comps, children := q.processItems(items...)
	node := newCompositeNode(opAnd, comps, children)
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Or(items ...any) QueryNode {
	comps, children := q.processItems(items...)
	node := newCompositeNode(opOr, comps, children)
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Not(items ...any) QueryNode {
	comps, children := q.processItems(items...)
	node := newCompositeNode(opNot, comps, children)
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) processItems(items ...any) ([]Component, []QueryNode) {
	var comps []Component
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			comps = append(comps, v)
		case []Component:
			comps = append(comps, v...)
		case QueryNode:
			children = append(children, v)
		default:
			panic(bark.AddTrace(fmt.Errorf("invalid query item type: %T; want Component, []Component, or QueryNode", item)))
		}
	}
	return comps, children
}

// Resolve validates q against w, then returns every partition whose
// signature satisfies q.
func Resolve(w *World, q QueryNode) ([]*grid.Partition, error) {
	if err := q.validate(w); err != nil {
		return nil, err
	}
	var matched []*grid.Partition
	for _, p := range w.table.Partitions() {
		ok, err := q.evaluate(p.Signature, w)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// resolvedQuery is a cache entry: the partitions q matched the last
// time it was resolved, plus the table's partition generation at that
// time, so a cache hit can detect whether a new partition might now
// match or whether it's still accurate.
type resolvedQuery struct {
	partitions []*grid.Partition
	generation int
}

// ResolveCached resolves q against w, caching the result under key.
// A cached entry is reused as long as no new partition has been
// created on w since it was computed; otherwise it is recomputed and
// the cache entry replaced. This is sound for any boolean combination
// of And/Or/Not, unlike caching a single reduced mask pair.
func ResolveCached(w *World, key string, q QueryNode) ([]*grid.Partition, error) {
	if w.queryCache == nil {
		w.queryCache = FactoryNewCache[resolvedQuery](256)
	}
	gen := w.table.PartitionGeneration()
	if idx, ok := w.queryCache.GetIndex(key); ok {
		cached := w.queryCache.GetItem(idx)
		if cached.generation == gen {
			return cached.partitions, nil
		}
	}
	matched, err := Resolve(w, q)
	if err != nil {
		return nil, err
	}
	if _, err := w.queryCache.Register(key, resolvedQuery{partitions: matched, generation: gen}); err != nil {
		return nil, err
	}
	return matched, nil
}
