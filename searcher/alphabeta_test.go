package searcher

import (
	"math"
	"testing"

	"minimax/game"
	"minimax/metrics"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Alpha-beta search over game trees
- terminal: leaf at any depth -> leaf value; branch at depth 0 -> shape error
- maximizing/minimizing root on the sample tree
- pruning: same value and same error as plain minimax, fewer or equal visits
- windows: value inside the window is exact; inverted window cuts after the first child
- errors: negative depth, nil node, empty branch, unknown node type
*/

type unknownNode struct{ game.Tree }

var sampleTree = game.Branch{
	game.Branch{game.Branch{game.Leaf(3), game.Leaf(5)}, game.Branch{game.Leaf(6), game.Leaf(9)}},
	game.Branch{game.Branch{game.Leaf(1), game.Leaf(2)}, game.Branch{game.Leaf(0), game.Leaf(-1)}},
}

func TestEvaluate(t *testing.T) {
	t.Run("maximizing first on the sample tree", func(t *testing.T) {
		got, err := Evaluate(sampleTree, 3, NegInf, PosInf, true)

		require.NoError(t, err)
		require.Equal(t, 5.0, got, "max(min(max(3,5), max(6,9)), min(max(1,2), max(0,-1)))")
	})

	t.Run("minimizing first on the sample tree", func(t *testing.T) {
		got, err := Evaluate(sampleTree, 3, NegInf, PosInf, false)

		require.NoError(t, err)
		require.Equal(t, 1.0, got, "min(max(min(3,5), min(6,9)), max(min(1,2), min(0,-1)))")
	})

	t.Run("leaf at depth zero", func(t *testing.T) {
		got, err := Evaluate(game.Leaf(-2.5), 0, NegInf, PosInf, true)

		require.NoError(t, err)
		require.Equal(t, -2.5, got, "Should return the leaf value")
	})

	t.Run("leaf above the depth limit", func(t *testing.T) {
		got, err := Evaluate(game.Leaf(7), 4, NegInf, PosInf, false)

		require.NoError(t, err)
		require.Equal(t, 7.0, got, "Should return the leaf value ignoring remaining depth")
	})

	t.Run("depth beyond the tree height", func(t *testing.T) {
		got, err := Evaluate(sampleTree, 10, NegInf, PosInf, true)

		require.NoError(t, err)
		require.Equal(t, 5.0, got, "Leaves should end the search before the depth limit")
	})

	t.Run("uneven tree", func(t *testing.T) {
		tree := game.Branch{game.Leaf(4), game.Branch{game.Leaf(8), game.Branch{game.Leaf(1), game.Leaf(10)}}}

		got, err := Evaluate(tree, 3, NegInf, PosInf, true)

		require.NoError(t, err)
		require.Equal(t, 8.0, got, "max(4, min(8, max(1,10)))")
	})

	t.Run("branch reached at the depth limit", func(t *testing.T) {
		_, err := Evaluate(sampleTree, 2, NegInf, PosInf, true)

		require.ErrorIs(t, err, game.ErrInvalidTreeShape, "A branch has no value of its own")
	})

	t.Run("value inside the window", func(t *testing.T) {
		got, err := Evaluate(sampleTree, 3, 4, 6, true)

		require.NoError(t, err)
		require.Equal(t, 5.0, got, "A narrowed window containing the value should not change it")
	})

	t.Run("inverted window", func(t *testing.T) {
		c := metrics.NewCollector()
		c.Start()

		got, err := NewAlphaBeta(WithMetrics(c)).Evaluate(sampleTree, 3, 10, -10, true)

		require.NoError(t, err)
		require.Equal(t, 3.0, got, "Every ply should stop after its first child")
		require.Equal(t, 4, c.Complete().Visits, "Should only visit the leftmost path")
		require.Equal(t, 3, c.Complete().Cutoffs, "Should cut off at every ply")
	})
}

func TestEvaluateErrors(t *testing.T) {
	t.Run("negative depth", func(t *testing.T) {
		_, err := Evaluate(sampleTree, -1, NegInf, PosInf, true)

		require.ErrorIs(t, err, ErrInvalidDepth, "Should reject negative depth")
	})

	t.Run("negative depth on a leaf", func(t *testing.T) {
		_, err := Evaluate(game.Leaf(1), -3, NegInf, PosInf, true)

		require.ErrorIs(t, err, ErrInvalidDepth, "Depth is checked before the node")
	})

	shapes := []struct {
		name string
		tree game.Tree
	}{
		{"nil root", nil},
		{"empty root", game.Branch{}},
		{"nil child", game.Branch{game.Leaf(1), nil}},
		{"empty child", game.Branch{game.Branch{}, game.Leaf(1)}},
		{"unknown node type", game.Branch{game.Leaf(1), unknownNode{}}},
		{"not-a-number leaf", game.Branch{game.Leaf(math.NaN()), game.Leaf(2)}},
		{"infinite leaf", game.Branch{game.Leaf(2), game.Leaf(math.Inf(-1))}},
	}
	for _, c := range shapes {
		t.Run(c.name, func(t *testing.T) {
			_, err := Minimax(c.tree, 3, true)

			require.ErrorIs(t, err, game.ErrInvalidTreeShape, "Should reject a malformed node")
		})
	}

	t.Run("locating the malformed node", func(t *testing.T) {
		tree := game.Branch{game.Branch{game.Leaf(1), game.Leaf(2)}, game.Branch{game.Leaf(0), nil}}

		_, err := Minimax(tree, 2, true)

		require.ErrorIs(t, err, game.ErrInvalidTreeShape)
		require.Contains(t, err.Error(), "$[1][1]", "Error should name the node path")
	})
}

func TestPruning(t *testing.T) {
	t.Run("visits on the sample tree", func(t *testing.T) {
		pruned := NewAlphaBeta(WithMetrics(metrics.NewCollector()))
		full := NewAlphaBeta(WithMetrics(metrics.NewCollector()), WithoutPruning())

		prunedValue, prunedMetric, err := pruned.Search(sampleTree, 3, true)
		require.NoError(t, err)
		fullValue, fullMetric, err := full.Search(sampleTree, 3, true)
		require.NoError(t, err)

		require.Equal(t, fullValue, prunedValue, "Pruning should not change the value")
		require.Equal(t, 15, fullMetric.Visits, "Plain minimax should visit every node")
		require.Equal(t, 0, fullMetric.Cutoffs, "Plain minimax should never cut off")
		require.Equal(t, 11, prunedMetric.Visits, "Should skip leaf 9 and the [0,-1] subtree")
		require.Equal(t, 2, prunedMetric.Cutoffs, "Should cut off twice")
	})

	t.Run("malformed node past a cutoff", func(t *testing.T) {
		// Right subtree would be cut off after its first leaf, before the malformed node
		tree := game.Branch{
			game.Branch{game.Leaf(3), game.Leaf(5)},
			game.Branch{game.Leaf(1), unknownNode{}},
		}
		c := metrics.NewCollector()

		_, metric, err := NewAlphaBeta(WithMetrics(c)).Search(tree, 2, true)
		require.ErrorIs(t, err, game.ErrInvalidTreeShape, "Tree is checked before pruning decides anything")
		require.Equal(t, 0, metric.Visits, "Search should not start on a malformed tree")

		_, err = Minimax(tree, 2, true)
		require.ErrorIs(t, err, game.ErrInvalidTreeShape, "Plain minimax should fail the same way")
	})

	t.Run("depth below the tree height", func(t *testing.T) {
		// Pruning would skip [7,8] after the leaf 1 in the right subtree
		tree := game.Branch{
			game.Branch{game.Leaf(3), game.Leaf(5)},
			game.Branch{game.Leaf(1), game.Branch{game.Leaf(7), game.Leaf(8)}},
		}

		_, prunedErr := Evaluate(tree, 2, NegInf, PosInf, true)
		_, fullErr := Minimax(tree, 2, true)

		require.ErrorIs(t, prunedErr, game.ErrInvalidTreeShape, "Pruned search should reject the depth limit")
		require.ErrorIs(t, fullErr, game.ErrInvalidTreeShape, "Plain search should reject the depth limit")

		got, err := Evaluate(tree, 3, NegInf, PosInf, true)
		require.NoError(t, err)
		require.Equal(t, 3.0, got, "max(min(3,5), min(1, max(7,8)))")
	})

	t.Run("matches plain minimax on random trees and depths", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 300; i++ {
			tree := randomTree(r, 1+r.Intn(6))
			depth := max(0, game.Height(tree)+r.Intn(4)-2)
			maximizing := r.Intn(2) == 0

			pruned := NewAlphaBeta(WithMetrics(metrics.NewCollector()))
			full := NewAlphaBeta(WithMetrics(metrics.NewCollector()), WithoutPruning())

			prunedValue, prunedMetric, prunedErr := pruned.Search(tree, depth, maximizing)
			fullValue, fullMetric, fullErr := full.Search(tree, depth, maximizing)

			if depth < game.Height(tree) {
				require.ErrorIs(t, prunedErr, game.ErrInvalidTreeShape, "Pruned search of %v at depth %d", tree, depth)
				require.ErrorIs(t, fullErr, game.ErrInvalidTreeShape, "Plain search of %v at depth %d", tree, depth)
				continue
			}
			require.NoError(t, prunedErr)
			require.NoError(t, fullErr)
			require.Equal(t, fullValue, prunedValue, "Pruning changed the value of %v", tree)
			require.LessOrEqual(t, prunedMetric.Visits, fullMetric.Visits, "Pruning visited more nodes in %v", tree)
			require.Equal(t, game.Size(tree), fullMetric.Visits, "Plain minimax should visit all of %v", tree)
		}
	})
}

func randomTree(r *rand.Rand, height int) game.Tree {
	if height == 0 || r.Intn(5) == 0 {
		return game.Leaf(r.Intn(41) - 20)
	}
	children := make(game.Branch, 1+r.Intn(4))
	for i := range children {
		children[i] = randomTree(r, height-1)
	}
	return children
}
