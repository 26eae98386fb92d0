package spatial

import "github.com/banshee-data/velocity.report/internal/sim/simerr"

// Node is a node in the rigid-transform scene graph: it owns its children,
// holds a non-owning back-pointer to its parent, and lazily recomputes its
// global transform from a dirty cache. The zero value is not usable; create
// nodes with NewNode.
type Node struct {
	parent   *Node
	children []*Node

	local  Transform
	global Transform
	dirty  bool
}

// NewNode returns a root node (no parent) with the given local transform.
func NewNode(local Transform) *Node {
	return &Node{local: local, global: local, dirty: false}
}

// Parent returns the node's parent, or nil if it is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's owned children. Callers must not mutate the
// returned slice.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalTransform returns the node's transform relative to its parent.
func (n *Node) LocalTransform() Transform {
	return n.local
}

// SetLocalTransform replaces the node's local transform and marks the
// node's entire owned subtree dirty, breadth-first, before returning.
func (n *Node) SetLocalTransform(t Transform) {
	n.local = t
	n.markSubtreeDirty()
}

// GlobalTransform returns the node's transform in world space, recomputing
// it from the parent chain if the cache is stale.
func (n *Node) GlobalTransform() Transform {
	if n.dirty {
		if n.parent == nil {
			n.global = n.local
		} else {
			n.global = n.parent.GlobalTransform().Compose(n.local)
		}
		n.dirty = false
	}
	return n.global
}

// SetParent detaches n from its current parent (if any) and attaches it to
// newParent, marking n's subtree dirty. newParent may be nil to make n a
// root. SetParent is the only supported way to change a node's parentage;
// callers must not mutate the tree by any other means.
func (n *Node) SetParent(newParent *Node) error {
	if newParent != nil && (newParent == n || newParent.isDescendantOf(n)) {
		return &simerr.StateError{Msg: "setting parent would introduce a cycle in the transform tree"}
	}

	if n.parent != nil {
		n.parent.removeChildPointer(n)
	}
	n.parent = newParent
	if newParent != nil {
		newParent.children = append(newParent.children, n)
	}
	n.markSubtreeDirty()
	return nil
}

// AddChild attaches child to n via child.SetParent(n). Errors only if child
// is an ancestor of n.
func (n *Node) AddChild(child *Node) error {
	return child.SetParent(n)
}

// RemoveChild detaches child from n, turning it into a root. It is a no-op
// if child is not currently a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		return
	}
	_ = child.SetParent(nil)
}

// isDescendantOf reports whether n is somewhere in ancestor's owned subtree.
func (n *Node) isDescendantOf(ancestor *Node) bool {
	for _, c := range ancestor.children {
		if c == n || n.isDescendantOf(c) {
			return true
		}
	}
	return false
}

func (n *Node) removeChildPointer(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// markSubtreeDirty walks the owned subtree breadth-first, marking every
// node (including n itself) dirty before returning.
func (n *Node) markSubtreeDirty() {
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cur.dirty = true
		queue = append(queue, cur.children...)
	}
}
