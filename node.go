package herofx

import "slices"

// nodeIDCounter is not atomic. Nodes are created on the animator goroutine.
var nodeIDCounter uint32

// Node is an element of the scene tree. Every kind of node shares this one
// struct; Type selects which of the appearance fields are drawn.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Transform (local). Rotation holds Euler angles in radians, XYZ order.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Computed during the update walk.
	worldTransform Mat4
	transformDirty bool

	Visible bool

	// Appearance. Mesh is used by NodeTypeMesh and NodeTypeLines,
	// Cloud by NodeTypePoints.
	Material Material
	Mesh     *Mesh
	Cloud    *ParticleCloud

	// Motion selects the per-frame behavior the animator applies to this
	// node. The zero value is MotionStatic.
	Motion Motion

	disposed bool
}

// newNode returns a visible node of the given type with an identity
// transform and a fresh ID.
func newNode(name string, typ NodeType) *Node {
	nodeIDCounter++
	return &Node{
		ID:             nodeIDCounter,
		Name:           name,
		Type:           typ,
		Scale:          Vec3{1, 1, 1},
		Visible:        true,
		transformDirty: true,
		worldTransform: Identity4,
	}
}

// NewContainer creates a group node with no visual representation.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer)
}

// NewMesh creates a node that renders the triangles of mesh.
func NewMesh(name string, mesh *Mesh, mat Material) *Node {
	n := newNode(name, NodeTypeMesh)
	n.Mesh, n.Material = mesh, mat
	return n
}

// NewLines creates a node that renders mesh as a line list.
func NewLines(name string, mesh *Mesh, mat Material) *Node {
	n := newNode(name, NodeTypeLines)
	n.Mesh, n.Material = mesh, mat
	return n
}

// NewPoints creates a node that renders every particle of cloud.
func NewPoints(name string, cloud *ParticleCloud, mat Material) *Node {
	n := newNode(name, NodeTypePoints)
	n.Cloud, n.Material = cloud, mat
	return n
}

// --- Tree ---

// AddChild makes child the last child of n, detaching it from its current
// parent first. It panics if child is nil or if n lies inside child's
// subtree.
func (n *Node) AddChild(child *Node) {
	switch {
	case child == nil:
		panic("herofx: AddChild(nil)")
	case child.contains(n):
		panic("herofx: AddChild would create a cycle")
	}
	if old := child.Parent; old != nil {
		old.detach(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from n. It panics if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("herofx: RemoveChild of a node with another parent")
	}
	n.detach(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if p := n.Parent; p != nil {
		p.RemoveChild(n)
	}
}

// Children returns the direct children in draw order. Callers must not
// modify the slice.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns len(n.Children()).
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the i-th child.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	i := slices.IndexFunc(n.children, func(c *Node) bool { return c.Name == name })
	if i < 0 {
		return nil
	}
	return n.children[i]
}

// Walk calls fn for n and every descendant, depth-first, parents first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Dispose detaches n and releases it and its whole subtree. Disposed nodes
// have ID 0 and no geometry. Calling Dispose again is a no-op.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.release()
}

func (n *Node) release() {
	for _, c := range n.children {
		c.Parent = nil
		c.release()
	}
	*n = Node{Name: n.Name, Type: n.Type, disposed: true}
}

// IsDisposed reports whether Dispose has been called on n or an ancestor.
func (n *Node) IsDisposed() bool { return n.disposed }

// contains reports whether node is n or lies below it.
func (n *Node) contains(node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// detach drops child from n.children and leaves child.Parent alone.
func (n *Node) detach(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// markSubtreeDirty flags node and its descendants for a world transform
// recompute.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, c := range node.children {
		markSubtreeDirty(c)
	}
}
