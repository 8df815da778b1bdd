package model

import (
	"fmt"
	"math"
)

// GBTree is a gradient boosted ensemble of regression trees.
type GBTree struct {
	BaseScore float32 `json:"base_score"`
	Features  int     `json:"num_features"`
	Trees     []Tree  `json:"trees"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is either a split or a leaf. A split sends a row left when
// row[Feature] < Threshold; NaN follows DefaultLeft.
type Node struct {
	Feature     int     `json:"feature"`
	Threshold   float32 `json:"threshold"`
	Left        int     `json:"left"`
	Right       int     `json:"right"`
	DefaultLeft bool    `json:"default_left"`
	Leaf        bool    `json:"leaf"`
	Value       float32 `json:"value"`
}

func (g *GBTree) NumFeatures() int {
	return g.Features
}

func (g *GBTree) Predict(rows [][]float32) ([]float32, error) {
	out := make([]float32, 0, len(rows))

	for _, row := range rows {
		if err := checkWidth(row, g.Features); err != nil {
			return nil, err
		}

		sum := g.BaseScore
		for i := range g.Trees {
			sum += g.Trees[i].score(row)
		}
		out = append(out, sum)
	}

	return out, nil
}

func (t *Tree) score(row []float32) float32 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Value
		}

		x := row[node.Feature]
		switch {
		case math.IsNaN(float64(x)):
			if node.DefaultLeft {
				idx = node.Left
			} else {
				idx = node.Right
			}
		case x < node.Threshold:
			idx = node.Left
		default:
			idx = node.Right
		}
	}
}

func (g *GBTree) validate() error {
	if g.Features <= 0 {
		return fmt.Errorf("%w: num_features must be positive", ErrInvalidModel)
	}

	if len(g.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidModel)
	}

	for t, tree := range g.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", ErrInvalidModel, t)
		}

		for n, node := range tree.Nodes {
			if node.Leaf {
				continue
			}

			if node.Feature < 0 || node.Feature >= g.Features {
				return fmt.Errorf("%w: tree %d node %d: feature %d out of range", ErrInvalidModel, t, n, node.Feature)
			}

			// Children after the parent guarantees every walk terminates.
			for _, child := range []int{node.Left, node.Right} {
				if child <= n || child >= len(tree.Nodes) {
					return fmt.Errorf("%w: tree %d node %d: child %d out of range", ErrInvalidModel, t, n, child)
				}
			}
		}
	}

	return nil
}
