package strategy

import "CryptoSentry/internal/model"

// NeutralConfidence is the fixed confidence assigned when no direction wins.
const NeutralConfidence = 30.0

// Generator resolves the weighted indicator votes into a direction with a
// confidence score. It holds no mutable state between calls.
type Generator struct {
	weights Weights
}

// NewGenerator creates a Generator with the given vote weights.
func NewGenerator(w Weights) *Generator {
	return &Generator{weights: w}
}

// Generate runs every rule against the indicator set and resolves the vote.
// The outcome depends only on the set and price: permuting rule evaluation
// order cannot change the sums, the direction, or the confidence.
func (g *Generator) Generate(set model.IndicatorSet, currentPrice float64) (model.Direction, float64, []model.VoteReason) {
	var longSum, shortSum float64
	var reasons []model.VoteReason

	for _, r := range rules {
		dir, comment := r.eval(set, currentPrice)
		if dir == model.Neutral {
			continue
		}
		w := r.weight(g.weights)
		switch dir {
		case model.Long:
			longSum += w
		case model.Short:
			shortSum += w
		}
		reasons = append(reasons, model.VoteReason{
			Rule:      r.name,
			Direction: dir,
			Weight:    w,
			Comment:   comment,
		})
	}

	direction := model.Neutral
	winning := 0.0
	switch {
	case longSum > shortSum:
		direction = model.Long
		winning = longSum
	case shortSum > longSum:
		direction = model.Short
		winning = shortSum
	}

	if direction == model.Neutral {
		return model.Neutral, NeutralConfidence, reasons
	}

	total := g.weights.Total()
	if winning > total {
		total = winning
	}
	confidence := winning / total * 100
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return direction, confidence, reasons
}
