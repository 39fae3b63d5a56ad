package lattice

import (
	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []Component
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

// componentMask builds the node's mask at evaluation time since row indices belong to
// the storage's schema
func componentMask(components []Component, storage Storage) mask.Mask {
	var m mask.Mask
	for _, comp := range components {
		m.Mark(storage.RowIndexFor(comp))
	}
	return m
}

func (n *compositeNode) Evaluate(archetype Archetype, storage Storage) bool {
	nodeMask := componentMask(n.components, storage)
	archeMask := archetype.Table().(mask.Maskable).Mask()

	switch n.op {
	case OpAnd:
		if !archeMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(archetype, storage) {
				return false
			}
		}
		return true

	case OpOr:
		if len(n.components) > 0 && archeMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(archetype, storage) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(archetype, storage) {
				return false
			}
		}
		return len(n.components) == 0 || archeMask.ContainsNone(nodeMask)
	}
	return false
}

func (q *query) And(items ...any) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...any) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...any) QueryNode {
	return q.node(OpNot, items)
}

// node builds a composite node from items. The first node built becomes the query root.
func (q *query) node(op Operation, items []any) QueryNode {
	n := &compositeNode{op: op}
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			n.components = append(n.components, v)
		case []Component:
			n.components = append(n.components, v...)
		case QueryNode:
			n.children = append(n.children, v)
		}
	}
	if q.root == nil {
		q.root = n
	}
	return n
}

func (q *query) Evaluate(archetype Archetype, storage Storage) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(archetype, storage)
}
