package tree

import (
	"errors"
	"io"

	"github.com/nonme/redblacktree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=Color
type Color uint8

const (
	Black Color = iota
	Red
)

var (
	ErrNotFound  = errors.New("[llrb] key not found")
	ErrKeyExists = errors.New("[llrb] key already exists")
	ErrEmpty     = errors.New("[llrb] empty tree")
)

// LLRBNode is a read-only view of a tree node. A view must not be kept
// across mutations, rotations move or release the node behind it.
type LLRBNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Color() Color
	Size() int64
	Left() LLRBNode[K, V]
	Right() LLRBNode[K, V]
}

// LLRBTree is an ordered key-value container. It is not thread-safe.
type LLRBTree[K infra.OrderedKey, V any] interface {
	Len() int64
	Height() int
	IsDesc() bool
	Root() LLRBNode[K, V]
	Insert(key K, val V)
	InsertIfAbsent(key K, val V) error
	Contains(key K) bool
	Get(key K) (V, error)
	// GetPtr returns a handle to the stored value. The handle is valid
	// until the next mutating call.
	GetPtr(key K) (*V, error)
	Min() (K, V, error)
	Max() (K, V, error)
	Remove(key K) bool
	RemoveMin() (K, V, error)
	RemoveMax() (K, V, error)
	Foreach(action func(idx int64, color Color, key K, val V) bool)
	Print(w io.Writer) error
	Clear()
}
