package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/nonme/redblacktree/lib/infra"
)

// LLRB rule validation utilities.

var (
	ErrOrderViolation = errors.New("[llrb] order violation")
	ErrRedViolation   = errors.New("[llrb] red violation")
	ErrLeanViolation  = errors.New("[llrb] lean violation")
	ErrBlackViolation = errors.New("[llrb] black violation")
	ErrSizeViolation  = errors.New("[llrb] size violation")
)

func isRedLink[K infra.OrderedKey, V any](node LLRBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func sizeOf[K infra.OrderedKey, V any](node LLRBNode[K, V]) int64 {
	if node == nil {
		return 0
	}
	return node.Size()
}

// Inorder traversal to validate the keys are strictly increasing in the
// tree order, so there are no duplicates either.
func OrderViolationValidate[K infra.OrderedKey, V any](tree LLRBTree[K, V]) error {
	less := func(i, j K) bool { return i < j }
	if tree.IsDesc() {
		less = func(i, j K) bool { return i > j }
	}

	var prev K
	stack := make([]LLRBNode[K, V], 0, heightBound(tree.Len()))
	defer func() {
		clear(stack)
	}()

	for aux := tree.Root(); aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}
	for idx := 0; len(stack) > 0; idx++ {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if idx > 0 && !less(prev, aux.Key()) {
			return infra.WrapErrorStackWithMessage(ErrOrderViolation,
				fmt.Sprintf("key %v is not after key %v", aux.Key(), prev))
		}
		prev = aux.Key()
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// The root is black and a red node never has a red child.
func RedViolationValidate[K infra.OrderedKey, V any](tree LLRBTree[K, V]) error {
	root := tree.Root()
	if isRedLink[K, V](root) {
		return infra.WrapErrorStackWithMessage(ErrRedViolation, fmt.Sprintf("red root %v", root.Key()))
	}
	return redViolationValidate[K, V](root)
}

func redViolationValidate[K infra.OrderedKey, V any](node LLRBNode[K, V]) error {
	if node == nil {
		return nil
	}
	if isRedLink[K, V](node) && (isRedLink[K, V](node.Left()) || isRedLink[K, V](node.Right())) {
		return infra.WrapErrorStackWithMessage(ErrRedViolation, fmt.Sprintf("red node %v has a red child", node.Key()))
	}
	if err := redViolationValidate[K, V](node.Left()); err != nil {
		return err
	}
	return redViolationValidate[K, V](node.Right())
}

// Red links only lean left.
func LeanViolationValidate[K infra.OrderedKey, V any](tree LLRBTree[K, V]) error {
	return leanViolationValidate[K, V](tree.Root())
}

func leanViolationValidate[K infra.OrderedKey, V any](node LLRBNode[K, V]) error {
	if node == nil {
		return nil
	}
	if isRedLink[K, V](node.Right()) {
		return infra.WrapErrorStackWithMessage(ErrLeanViolation, fmt.Sprintf("node %v has a red right link", node.Key()))
	}
	if err := leanViolationValidate[K, V](node.Left()); err != nil {
		return err
	}
	return leanViolationValidate[K, V](node.Right())
}

/*
<X> is a RED link.
[X] is a BLACK link (or NIL).

	          [13]
	          /  \
	       [8]    [17]
	       / \    /  \
	     [6] [11] [15] [25]
	     /
	   <1>

2-3 tree like:

	            [13]
	          /      \
	       [8]        [17]
	      /   \       /   \
	  <1>-[6] [11]  [15] [25]

Each nil link to root black depth are equal.
*/
func BlackViolationValidate[K infra.OrderedKey, V any](tree LLRBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}

	// Count black links along the left spine as the expected depth.
	expected := 0
	for aux := root; aux != nil; aux = aux.Left() {
		if !isRedLink[K, V](aux) {
			expected++
		}
	}
	return blackViolationValidate[K, V](root, 0, expected)
}

func blackViolationValidate[K infra.OrderedKey, V any](node LLRBNode[K, V], depth, expected int) error {
	if node == nil {
		if depth != expected {
			return infra.WrapErrorStackWithMessage(ErrBlackViolation,
				fmt.Sprintf("black depth %d, expected %d", depth, expected))
		}
		return nil
	}
	if !isRedLink[K, V](node) {
		depth++
	}
	if err := blackViolationValidate[K, V](node.Left(), depth, expected); err != nil {
		return err
	}
	return blackViolationValidate[K, V](node.Right(), depth, expected)
}

// Every subtree size equals 1 + left size + right size.
func SizeViolationValidate[K infra.OrderedKey, V any](tree LLRBTree[K, V]) error {
	_, err := sizeViolationValidate[K, V](tree.Root())
	return err
}

func sizeViolationValidate[K infra.OrderedKey, V any](node LLRBNode[K, V]) (int64, error) {
	if node == nil {
		return 0, nil
	}
	l, err := sizeViolationValidate[K, V](node.Left())
	if err != nil {
		return 0, err
	}
	r, err := sizeViolationValidate[K, V](node.Right())
	if err != nil {
		return 0, err
	}
	if size := sizeOf[K, V](node); size != l+r+1 {
		return 0, infra.WrapErrorStackWithMessage(ErrSizeViolation,
			fmt.Sprintf("node %v size %d, counted %d", node.Key(), size, l+r+1))
	}
	return l + r + 1, nil
}

// Validate runs all the LLRB rule validations and combines the violations.
func Validate[K infra.OrderedKey, V any](tree LLRBTree[K, V]) error {
	return multierr.Combine(
		OrderViolationValidate[K, V](tree),
		RedViolationValidate[K, V](tree),
		LeanViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		SizeViolationValidate[K, V](tree),
	)
}
