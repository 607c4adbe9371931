package suitability

import (
	"math"
	"sort"
)

// treeNode is one node of a CART-style regression tree. Internal nodes
// route on x[feature] <= threshold; leaves carry the mean target of the
// samples that reached them.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// buildTree fits a regression tree by recursive binary splitting,
// choosing at each node the (feature, threshold) pair with the lowest
// post-split squared error. Features are scanned in index order and
// thresholds in ascending order with a strict-improvement rule, so the
// fit is fully deterministic without any random seed.
func buildTree(xs [][]float64, ys []float64) *treeNode {
	if len(ys) == 0 {
		return &treeNode{leaf: true}
	}
	if allEqual(ys) {
		return &treeNode{leaf: true, value: ys[0]}
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestSSE := math.Inf(1)
	for f := range xs[0] {
		for _, thr := range candidateThresholds(xs, f) {
			sse, ok := splitSSE(xs, ys, f, thr)
			if ok && sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = thr
			}
		}
	}
	if bestFeature < 0 {
		// No threshold separates the samples; collapse to the mean.
		return &treeNode{leaf: true, value: mean(ys)}
	}

	var leftXs, rightXs [][]float64
	var leftYs, rightYs []float64
	for i, x := range xs {
		if x[bestFeature] <= bestThreshold {
			leftXs = append(leftXs, x)
			leftYs = append(leftYs, ys[i])
		} else {
			rightXs = append(rightXs, x)
			rightYs = append(rightYs, ys[i])
		}
	}

	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      buildTree(leftXs, leftYs),
		right:     buildTree(rightXs, rightYs),
	}
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// candidateThresholds returns the midpoints between consecutive distinct
// values of feature f, in ascending order.
func candidateThresholds(xs [][]float64, f int) []float64 {
	values := make([]float64, 0, len(xs))
	for _, x := range xs {
		values = append(values, x[f])
	}
	sort.Float64s(values)

	var thresholds []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			thresholds = append(thresholds, (values[i]+values[i-1])/2)
		}
	}
	return thresholds
}

// splitSSE computes the summed squared error of the two children a
// split would produce. ok is false when the split leaves a side empty.
func splitSSE(xs [][]float64, ys []float64, f int, thr float64) (float64, bool) {
	var leftN, rightN float64
	var leftSum, rightSum float64
	var leftSumSq, rightSumSq float64
	for i, x := range xs {
		if x[f] <= thr {
			leftN++
			leftSum += ys[i]
			leftSumSq += ys[i] * ys[i]
		} else {
			rightN++
			rightSum += ys[i]
			rightSumSq += ys[i] * ys[i]
		}
	}
	if leftN == 0 || rightN == 0 {
		return 0, false
	}
	// SSE = sum(y^2) - n*mean^2 per side.
	sse := (leftSumSq - leftSum*leftSum/leftN) + (rightSumSq - rightSum*rightSum/rightN)
	return sse, true
}

func allEqual(ys []float64) bool {
	for _, y := range ys[1:] {
		if y != ys[0] {
			return false
		}
	}
	return true
}

func mean(ys []float64) float64 {
	var sum float64
	for _, y := range ys {
		sum += y
	}
	return sum / float64(len(ys))
}
