package tree

import (
	"fmt"
	"io"

	"github.com/nonme/redblacktree/lib/infra"
)

// References:
// https://sedgewick.io/wp-content/themes/sedgewick/papers/2008LLRB.pdf
// https://algs4.cs.princeton.edu/33balanced/RedBlackBST.java.html
// LLRB properties:
// p1. Red links lean left.
// p2. No node has two red links connected to it. (red-violation)
// p3. Every path from the root to a nil link has the same number of
//   black links. (black-violation)
// p4. The root is black.
// A LLRB is a 2-3 tree in a binary tree shape, red left links glue two
// nodes into a 3-node. So the longest path is at most 2 * the shortest
// path, and the height is at most 2*log2(n+1).

type llrbTree[K infra.OrderedKey, V any] struct {
	root       *llrbNode[K, V]
	keyCompare infra.OrderedKeyComparator[K]
	isDesc     bool
}

func (tree *llrbTree[K, V]) Len() int64 {
	return tree.root.count()
}

func (tree *llrbTree[K, V]) Height() int {
	return tree.root.height()
}

func (tree *llrbTree[K, V]) IsDesc() bool {
	return tree.isDesc
}

func (tree *llrbTree[K, V]) Root() LLRBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *llrbTree[K, V]) search(key K) *llrbNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := tree.keyCompare(key, aux.key)
		if /* equal */ res == 0 {
			return aux
		} else /* less */ if res < 0 {
			aux = aux.left
		} else /* greater */ {
			aux = aux.right
		}
	}
	return nil
}

func (tree *llrbTree[K, V]) Contains(key K) bool {
	return tree.search(key) != nil
}

func (tree *llrbTree[K, V]) Get(key K) (val V, err error) {
	x := tree.search(key)
	if x == nil {
		return val, infra.WrapErrorStackWithMessage(ErrNotFound, fmt.Sprintf("get key %v", key))
	}
	return x.val, nil
}

func (tree *llrbTree[K, V]) GetPtr(key K) (*V, error) {
	x := tree.search(key)
	if x == nil {
		return nil, infra.WrapErrorStackWithMessage(ErrNotFound, fmt.Sprintf("get key %v", key))
	}
	return &x.val, nil
}

func (tree *llrbTree[K, V]) Min() (key K, val V, err error) {
	if tree.root == nil {
		return key, val, infra.WrapErrorStackWithMessage(ErrEmpty, "min")
	}
	x := tree.root.minimum()
	return x.key, x.val, nil
}

func (tree *llrbTree[K, V]) Max() (key K, val V, err error) {
	if tree.root == nil {
		return key, val, infra.WrapErrorStackWithMessage(ErrEmpty, "max")
	}
	x := tree.root.maximum()
	return x.key, x.val, nil
}

// Insert replaces the value if the key exists.
func (tree *llrbTree[K, V]) Insert(key K, val V) {
	tree.root = tree.insert(tree.root, key, val)
	tree.root.color = Black
}

func (tree *llrbTree[K, V]) InsertIfAbsent(key K, val V) error {
	if tree.Contains(key) {
		return infra.WrapErrorStackWithMessage(ErrKeyExists, fmt.Sprintf("insert key %v", key))
	}
	tree.Insert(key, val)
	return nil
}

/*
A new node is always a red leaf. The repairs run at each node on the way
back to the root, in the fixed order.

i1: Right-leaning red link, rotate left.

	  [H]                   [X]
	  / \    rotateLeft     / \
	[a] <X>  =========>   <H> [c]

i2: Two red links in a row on the left, rotate right.

	      [H]                 [X]
	      /     rotateRight   / \
	    <X>     ==========> <a> <H>
	    /
	  <a>

i3: Both children are red (a temporary 4-node), flip colors and pass
the red link up.

	    [X]             <X>
	    / \   flip      / \
	  <a> <H> =====>  [a] [H]
*/
func (tree *llrbTree[K, V]) insert(node *llrbNode[K, V], key K, val V) *llrbNode[K, V] {
	if node == nil {
		return &llrbNode[K, V]{
			key:   key,
			val:   val,
			color: Red,
			size:  1,
		}
	}

	res := tree.keyCompare(key, node.key)
	if /* less */ res < 0 {
		node.left = tree.insert(node.left, key, val)
	} else /* greater */ if res > 0 {
		node.right = tree.insert(node.right, key, val)
	} else /* equal */ {
		node.val = val
	}

	if /* i1 */ node.right.isRed() && !node.left.isRed() {
		node = node.rotateLeft()
	}
	if /* i2 */ node.left.isRed() && node.left.left.isRed() {
		node = node.rotateRight()
	}
	if /* i3 */ node.left.isRed() && node.right.isRed() {
		node.flipColors()
	}
	node.resize()
	return node
}

// Remove returns false if the key is absent.
//
// r1: The root is a 2-node, paint it red. The descent always stands on
// a red node (or a node with a red left child), so the node finally
// removed is never a lone black leaf.
func (tree *llrbTree[K, V]) Remove(key K) bool {
	if !tree.Contains(key) {
		return false
	}

	if /* r1 */ !tree.root.left.isRed() && !tree.root.right.isRed() {
		tree.root.color = Red
	}
	tree.root = tree.remove(tree.root, key)
	if tree.root != nil {
		tree.root.color = Black
	}
	return true
}

/*
<X> is a RED link.
[X] is a BLACK link (or NIL).

rm1: Go left and the left child is a 2-node. Borrow a red link from the
right side by moveRedLeft.

	    <H>                      [H]                        <Rl>
	    / \      flipColors      / \    rotate (if <Rl>)    /  \
	  [L] [R]    =========>    <L> <R>  ==============>   [H]  [R]
	  /   /                    /   /                      /
	[a] <Rl>                 [a] <Rl>                   <L>

rm2: Go right with a red left child, rotate right first so the red
link leans to the right side of the descent.

rm3: The key matches and there is no right child. Since the left child
is black and the node stands on a red link, it is a red leaf, remove
it directly.

rm4: Go right and the right child is a 2-node. Borrow a red link from
the left side by moveRedRight.

rm5: The key matches with a right child. Copy the successor (minimum
of the right subtree) into the node and remove the successor.

Every node on the search path is balanced again on the way back up.
*/
func (tree *llrbTree[K, V]) remove(node *llrbNode[K, V], key K) *llrbNode[K, V] {
	if tree.keyCompare(key, node.key) < 0 {
		if /* rm1 */ !node.left.isRed() && !node.left.left.isRed() {
			node = node.moveRedLeft()
		}
		node.left = tree.remove(node.left, key)
	} else {
		if /* rm2 */ node.left.isRed() {
			node = node.rotateRight()
		}
		if /* rm3 */ tree.keyCompare(key, node.key) == 0 && node.right == nil {
			node.release()
			return nil
		}
		if /* rm4 */ !node.right.isRed() && !node.right.left.isRed() {
			node = node.moveRedRight()
		}
		if /* rm5 */ tree.keyCompare(key, node.key) == 0 {
			succ := node.right.minimum()
			node.key, node.val = succ.key, succ.val
			node.right = node.right.removeMin()
		} else {
			node.right = tree.remove(node.right, key)
		}
	}
	return node.balance()
}

// RemoveMin removes the first element in the tree order.
func (tree *llrbTree[K, V]) RemoveMin() (key K, val V, err error) {
	if tree.root == nil {
		return key, val, infra.WrapErrorStackWithMessage(ErrEmpty, "remove min")
	}

	_min := tree.root.minimum()
	key, val = _min.key, _min.val
	if /* r1 */ !tree.root.left.isRed() && !tree.root.right.isRed() {
		tree.root.color = Red
	}
	tree.root = tree.root.removeMin()
	if tree.root != nil {
		tree.root.color = Black
	}
	return key, val, nil
}

// RemoveMax removes the last element in the tree order.
func (tree *llrbTree[K, V]) RemoveMax() (key K, val V, err error) {
	if tree.root == nil {
		return key, val, infra.WrapErrorStackWithMessage(ErrEmpty, "remove max")
	}

	_max := tree.root.maximum()
	key, val = _max.key, _max.val
	if /* r1 */ !tree.root.left.isRed() && !tree.root.right.isRed() {
		tree.root.color = Red
	}
	tree.root = tree.root.removeMax()
	if tree.root != nil {
		tree.root.color = Black
	}
	return key, val, nil
}

// Inorder traversal to implement the DFS.
func (tree *llrbTree[K, V]) Foreach(action func(idx int64, color Color, key K, val V) bool) {
	aux := tree.root
	if aux == nil {
		return
	}

	// The stack never grows beyond the height.
	stack := make([]*llrbNode[K, V], 0, heightBound(aux.count()))
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// Print writes the values in the tree order, each one followed by a space.
func (tree *llrbTree[K, V]) Print(w io.Writer) (err error) {
	tree.Foreach(func(idx int64, color Color, key K, val V) bool {
		_, err = fmt.Fprint(w, val, " ")
		return err == nil
	})
	return infra.WrapErrorStack(err)
}

func (tree *llrbTree[K, V]) Clear() {
	tree.root.releaseAll()
	tree.root = nil
}

type LLRBTreeOpt[K infra.OrderedKey, V any] func(*llrbTree[K, V])

func WithLLRBTreeDesc[K infra.OrderedKey, V any]() LLRBTreeOpt[K, V] {
	return func(tree *llrbTree[K, V]) {
		tree.isDesc = true
	}
}

func NewLLRBTree[K infra.OrderedKey, V any](opts ...LLRBTreeOpt[K, V]) LLRBTree[K, V] {
	tree := &llrbTree[K, V]{
		isDesc: false,
	}

	for _, o := range opts {
		o(tree)
	}

	if tree.isDesc {
		tree.keyCompare = infra.DescKeyComparator[K]
	} else {
		tree.keyCompare = infra.AscKeyComparator[K]
	}
	return tree
}
