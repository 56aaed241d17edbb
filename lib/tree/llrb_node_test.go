package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilNode(t *testing.T) {
	var nilNode LLRBNode[uint64, uint64] = nil
	require.True(t, nilNode == nil)

	var nilNode2 *llrbNode[uint64, uint64] = nil
	require.False(t, nilNode2.isRed())
	require.Equal(t, int64(0), nilNode2.count())
	require.Equal(t, int64(0), nilNode2.Size())
	require.Equal(t, 0, nilNode2.height())
	require.Nil(t, nilNode2.Left())
	require.Nil(t, nilNode2.Right())
	require.Nil(t, nilNode2.minimum())
	require.Nil(t, nilNode2.maximum())
}

func TestHeightBound(t *testing.T) {
	require.Equal(t, 0, heightBound(0))
	require.Equal(t, 4, heightBound(1))
	require.Equal(t, 4, heightBound(2))
	require.Equal(t, 6, heightBound(4))
	require.Equal(t, 30, heightBound(1<<14))
}

func newTestNode(key uint64, color Color, left, right *llrbNode[uint64, uint64]) *llrbNode[uint64, uint64] {
	node := &llrbNode[uint64, uint64]{
		key:   key,
		val:   key,
		color: color,
		left:  left,
		right: right,
	}
	node.resize()
	return node
}

/*
	  [2]                 [4]
	  / \   rotateLeft    / \
	[1] <4> =========>  <2> [5]
	    / \             / \
	  [3] [5]         [1] [3]
*/
func TestLLRBNodeRotateLeft(t *testing.T) {
	n1, n3, n5 := newTestNode(1, Black, nil, nil), newTestNode(3, Black, nil, nil), newTestNode(5, Black, nil, nil)
	n4 := newTestNode(4, Red, n3, n5)
	n2 := newTestNode(2, Black, n1, n4)

	x := n2.rotateLeft()
	require.Same(t, n4, x)
	require.Equal(t, Black, x.color)
	require.Equal(t, int64(5), x.size)
	require.Same(t, n2, x.left)
	require.Same(t, n5, x.right)
	require.Equal(t, Red, n2.color)
	require.Equal(t, int64(3), n2.size)
	require.Same(t, n1, n2.left)
	require.Same(t, n3, n2.right)
}

/*
	    [4]                 [2]
	    / \   rotateRight   / \
	  <2> [5] ==========> [1] <4>
	  / \                     / \
	[1] [3]                 [3] [5]
*/
func TestLLRBNodeRotateRight(t *testing.T) {
	n1, n3, n5 := newTestNode(1, Black, nil, nil), newTestNode(3, Black, nil, nil), newTestNode(5, Black, nil, nil)
	n2 := newTestNode(2, Red, n1, n3)
	n4 := newTestNode(4, Black, n2, n5)

	x := n4.rotateRight()
	require.Same(t, n2, x)
	require.Equal(t, Black, x.color)
	require.Equal(t, int64(5), x.size)
	require.Same(t, n1, x.left)
	// The demoted node is the new right child, never a child of itself.
	require.Same(t, n4, x.right)
	require.NotSame(t, n4, n4.left)
	require.NotSame(t, n4, n4.right)
	require.Equal(t, Red, n4.color)
	require.Equal(t, int64(3), n4.size)
	require.Same(t, n3, n4.left)
	require.Same(t, n5, n4.right)
}

func TestLLRBNodeRotateAssertion(t *testing.T) {
	n1 := newTestNode(1, Black, nil, nil)
	n2 := newTestNode(2, Black, n1, nil)
	require.Panics(t, func() { n2.rotateRight() })
	require.Panics(t, func() { n2.rotateLeft() })

	var nilNode *llrbNode[uint64, uint64]
	require.Panics(t, func() { nilNode.rotateLeft() })
	require.Panics(t, func() { n2.flipColors() })
}

func TestLLRBNodeFlipColors(t *testing.T) {
	n1, n3 := newTestNode(1, Red, nil, nil), newTestNode(3, Red, nil, nil)
	n2 := newTestNode(2, Black, n1, n3)

	// Split a 4-node.
	n2.flipColors()
	require.Equal(t, Red, n2.color)
	require.Equal(t, Black, n1.color)
	require.Equal(t, Black, n3.color)

	// And merge it back.
	n2.flipColors()
	require.Equal(t, Black, n2.color)
	require.Equal(t, Red, n1.color)
	require.Equal(t, Red, n3.color)
	require.Equal(t, int64(3), n2.size)
}

func TestLLRBNodeBalance(t *testing.T) {
	type testcase struct {
		name     string
		build    func() *llrbNode[uint64, uint64]
		rootKey  uint64
		rootRed  bool
		leftKey  uint64
		rightKey uint64
	}
	testcases := []testcase{
		{
			name: "right leaning",
			build: func() *llrbNode[uint64, uint64] {
				return newTestNode(1, Black, nil, newTestNode(2, Red, nil, nil))
			},
			rootKey: 2,
			leftKey: 1,
		},
		{
			name: "double red on the left",
			build: func() *llrbNode[uint64, uint64] {
				return newTestNode(3, Black, newTestNode(2, Red, newTestNode(1, Red, nil, nil), nil), nil)
			},
			rootKey:  2,
			rootRed:  true,
			leftKey:  1,
			rightKey: 3,
		},
		{
			name: "4-node",
			build: func() *llrbNode[uint64, uint64] {
				return newTestNode(2, Black, newTestNode(1, Red, nil, nil), newTestNode(3, Red, nil, nil))
			},
			rootKey:  2,
			rootRed:  true,
			leftKey:  1,
			rightKey: 3,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			x := tc.build().balance()
			require.Equal(tt, tc.rootKey, x.key)
			require.Equal(tt, tc.rootRed, x.isRed())
			require.Equal(tt, tc.leftKey, x.left.key)
			if tc.rightKey > 0 {
				require.Equal(tt, tc.rightKey, x.right.key)
				require.False(tt, x.right.isRed())
			} else {
				require.Nil(tt, x.right)
			}
			require.Equal(tt, x.left.count()+x.right.count()+1, x.size)
		})
	}
}

func TestLLRBNodeReleaseAll(t *testing.T) {
	n1, n3 := newTestNode(1, Black, nil, nil), newTestNode(3, Black, nil, nil)
	n2 := newTestNode(2, Black, n1, n3)
	n2.releaseAll()
	for _, n := range []*llrbNode[uint64, uint64]{n1, n2, n3} {
		require.Nil(t, n.left)
		require.Nil(t, n.right)
		require.Equal(t, uint64(0), n.key)
		require.Equal(t, int64(0), n.size)
	}
}
