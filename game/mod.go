package game

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidTreeShape = errors.New("invalid tree shape")

// Tree is a game tree node. It is either a Leaf holding a terminal position
// value or a Branch holding the ordered, non-empty children of a choice.
// Trees are immutable once built.
type Tree interface {
	isTree()
}

type Leaf float64

// Branch children are ordered left to right, the order in which search visits them.
type Branch []Tree

func (Leaf) isTree()   {}
func (Branch) isTree() {}

func (l Leaf) String() string {
	return strconv.FormatFloat(float64(l), 'g', -1, 64)
}

func (b Branch) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, child := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		switch child := child.(type) {
		case Leaf:
			sb.WriteString(child.String())
		case Branch:
			sb.WriteString(child.String())
		default:
			sb.WriteString("?")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Height returns the number of plies from t down to its deepest leaf.
func Height(t Tree) int {
	b, ok := t.(Branch)
	if !ok {
		return 0
	}
	height := 0
	for _, child := range b {
		if h := Height(child); h > height {
			height = h
		}
	}
	return height + 1
}

// Size returns the number of nodes in t, leaves included.
func Size(t Tree) int {
	b, ok := t.(Branch)
	if !ok {
		return 1
	}
	size := 1
	for _, child := range b {
		size += Size(child)
	}
	return size
}
