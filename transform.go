package herofx

// computeLocalTransform computes the local matrix from the node's
// transform properties.
//
// Composition order:
//
//	Scale -> Rotate (Euler XYZ) -> Translate(Position)
func computeLocalTransform(n *Node) Mat4 {
	m := Translate4(n.Position).Mul(Euler4(n.Rotation))
	if n.Scale != (Vec3{1, 1, 1}) {
		m = m.Mul(Scale4(n.Scale))
	}
	return m
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parentTransform.Mul(computeLocalTransform(n))
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians, XYZ order) and
// marks it dirty.
func (n *Node) SetRotation(x, y, z float64) {
	n.Rotation = Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's scale and marks it dirty.
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = Vec3{x, y, z}
	n.transformDirty = true
}

// SetUniformScale sets all three scale components to s.
func (n *Node) SetUniformScale(s float64) {
	n.SetScale(s, s, s)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldTransform returns the last computed world matrix.
func (n *Node) WorldTransform() Mat4 {
	return n.worldTransform
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.worldTransform.MulPoint(p)
}
