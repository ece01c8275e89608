package engine

import (
	"context"
	"math"
)

// Score scale bounds.
const (
	scoreFloor   = 200
	scoreCeiling = 800
	scoreRange   = 600
)

// Estimate is a scaled score derived from overall accuracy, with a
// 95% credible interval that narrows as attempts accumulate.
type Estimate struct {
	Score    int     `json:"score"`
	Low      int     `json:"low"`
	High     int     `json:"high"`
	Attempts int64   `json:"attempts"`
	Accuracy float64 `json:"accuracy"`
}

// EstimateScore estimates a learner's scaled score from their full
// attempt history.
func (e *Engine) EstimateScore(ctx context.Context, userID string) (Estimate, error) {
	correct, total, err := e.store.Attempts().Totals(ctx, userID)
	if err != nil {
		return Estimate{}, err
	}
	return estimateFromCounts(correct, total), nil
}

// estimateFromCounts maps counts onto the 200-800 scale through a
// Beta(1+correct, 1+wrong) posterior. With no attempts the uniform
// prior centers the estimate at 500 with a full-width interval.
func estimateFromCounts(correct, total int64) Estimate {
	alpha := float64(1 + correct)
	beta := float64(1 + total - correct)

	p := alpha / (alpha + beta)
	sd := math.Sqrt(alpha * beta / ((alpha + beta) * (alpha + beta) * (alpha + beta + 1)))

	est := Estimate{
		Score:    scaled(p),
		Low:      scaled(p - 1.96*sd),
		High:     scaled(p + 1.96*sd),
		Attempts: total,
	}
	if total > 0 {
		est.Accuracy = float64(correct) / float64(total)
	}
	return est
}

func scaled(p float64) int {
	s := scoreFloor + int(math.Round(scoreRange*p))
	if s < scoreFloor {
		return scoreFloor
	}
	if s > scoreCeiling {
		return scoreCeiling
	}
	return s
}
