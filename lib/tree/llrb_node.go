package tree

import (
	"math/bits"

	"github.com/nonme/redblacktree/lib/infra"
)

// A node owns its two children exclusively, there are no parent links.
// The color is the color of the link from the parent to the node.
type llrbNode[K infra.OrderedKey, V any] struct {
	left  *llrbNode[K, V]
	right *llrbNode[K, V]
	key   K
	val   V
	size  int64
	color Color
}

func (node *llrbNode[K, V]) Key() K {
	return node.key
}

func (node *llrbNode[K, V]) Val() V {
	return node.val
}

func (node *llrbNode[K, V]) Color() Color {
	return node.color
}

func (node *llrbNode[K, V]) Size() int64 {
	return node.count()
}

func (node *llrbNode[K, V]) Left() LLRBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *llrbNode[K, V]) Right() LLRBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

// A nil node is a black leaf.
func (node *llrbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *llrbNode[K, V]) count() int64 {
	if node == nil {
		return 0
	}
	return node.size
}

func (node *llrbNode[K, V]) resize() {
	node.size = 1 + node.left.count() + node.right.count()
}

func (node *llrbNode[K, V]) height() int {
	if node == nil {
		return 0
	}
	return 1 + max(node.left.height(), node.right.height())
}

// heightBound is an upper bound of the height of a LLRB with n nodes,
// 2*log2(n+1) rounded up.
func heightBound(n int64) int {
	if n <= 0 {
		return 0
	}
	return 2 * bits.Len64(uint64(n)+1)
}

func (node *llrbNode[K, V]) minimum() *llrbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *llrbNode[K, V]) maximum() *llrbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// Cut the links and drop the payload, so a stale handle can't reach
// the rest of the tree.
func (node *llrbNode[K, V]) release() {
	var (
		k K
		v V
	)
	node.left, node.right = nil, nil
	node.key, node.val = k, v
	node.size = 0
}

// Post-order, children are released before the parent.
func (node *llrbNode[K, V]) releaseAll() {
	if node == nil {
		return
	}
	node.left.releaseAll()
	node.right.releaseAll()
	node.release()
}

/*
<X> is a RED link.
[X] is a BLACK link (or NIL).
{X} is either a RED link or a BLACK link.

	  {H}                       {X}
	  / \    rotateLeft(H)      / \
	 a  <X>  ============>    <H>  c
	    / \                   / \
	   b   c                 a   b

X takes over H's color and size, H becomes red.
*/
func (node *llrbNode[K, V]) rotateLeft() *llrbNode[K, V] {
	if node == nil || !node.right.isRed() {
		// impossible run to here
		panic( /* debug assertion */ "[llrb] left rotate node h is nil or h.right is not red")
	}

	x := node.right
	node.right, x.left = x.left, node
	x.color, node.color = node.color, Red
	x.size = node.size
	node.resize()
	return x
}

/*
	    {H}                     {X}
	    / \   rotateRight(H)    / \
	  <X>  c  =============>   a  <H>
	  / \                         / \
	 a   b                       b   c

The demoted H becomes the right child of X.
*/
func (node *llrbNode[K, V]) rotateRight() *llrbNode[K, V] {
	if node == nil || !node.left.isRed() {
		// impossible run to here
		panic( /* debug assertion */ "[llrb] right rotate node h is nil or h.left is not red")
	}

	x := node.left
	node.left, x.right = x.right, node
	x.color, node.color = node.color, Red
	x.size = node.size
	node.resize()
	return x
}

/*
Splits a temporary 4-node on insert, or merges a 2-node with its
parent and sibling on remove.

	    [H]                 <H>
	    / \   flipColors    / \
	  <L> <R> <========>  [L] [R]
*/
func (node *llrbNode[K, V]) flipColors() {
	if node == nil || node.left == nil || node.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[llrb] flip colors without two children")
	}
	node.color = node.color.flip()
	node.left.color = node.left.color.flip()
	node.right.color = node.right.color.flip()
}

func (c Color) flip() Color {
	if c == Red {
		return Black
	}
	return Red
}

// Restores the left-leaning shape on the way up and recounts the size.
func (node *llrbNode[K, V]) balance() *llrbNode[K, V] {
	if node.right.isRed() {
		node = node.rotateLeft()
	}
	if node.left.isRed() && node.left.left.isRed() {
		node = node.rotateRight()
	}
	if node.left.isRed() && node.right.isRed() {
		node.flipColors()
	}
	node.resize()
	return node
}

// Assumes node is red and both node.left and node.left.left are black.
// Makes node.left or one of its children red.
func (node *llrbNode[K, V]) moveRedLeft() *llrbNode[K, V] {
	node.flipColors()
	if node.right.left.isRed() {
		node.right = node.right.rotateRight()
		node = node.rotateLeft()
		node.flipColors()
	}
	return node
}

// Assumes node is red and both node.right and node.right.left are black.
// Makes node.right or one of its children red.
func (node *llrbNode[K, V]) moveRedRight() *llrbNode[K, V] {
	node.flipColors()
	if node.left.left.isRed() {
		node = node.rotateRight()
		node.flipColors()
	}
	return node
}

func (node *llrbNode[K, V]) removeMin() *llrbNode[K, V] {
	if node.left == nil {
		node.release()
		return nil
	}
	if !node.left.isRed() && !node.left.left.isRed() {
		node = node.moveRedLeft()
	}
	node.left = node.left.removeMin()
	return node.balance()
}

func (node *llrbNode[K, V]) removeMax() *llrbNode[K, V] {
	if node.left.isRed() {
		node = node.rotateRight()
	}
	if node.right == nil {
		node.release()
		return nil
	}
	if !node.right.isRed() && !node.right.left.isRed() {
		node = node.moveRedRight()
	}
	node.right = node.right.removeMax()
	return node.balance()
}
