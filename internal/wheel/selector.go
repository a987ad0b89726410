package wheel

import (
	"fmt"
	"math"
	"math/rand"
	"vault_backend/internal/model"
)

// Source - источник равномерных чисел из [0,1)
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultSource - глобальный генератор math/rand, безопасен для конкурентного использования
func DefaultSource() Source {
	return globalSource{}
}

// SourceFunc позволяет подставить функцию в качестве Source
type SourceFunc func() float64

func (f SourceFunc) Float64() float64 {
	return f()
}

// Select выбирает сектор с вероятностью weight_i / sum(weights).
// Возвращает сектор и его индекс в переданном порядке.
func Select(outcomes []model.Outcome, src Source) (model.Outcome, int, error) {
	var total float64
	lastDrawable := -1
	for i, o := range outcomes {
		if math.IsNaN(o.Weight) || math.IsInf(o.Weight, 0) || o.Weight < 0 {
			return model.Outcome{}, -1, fmt.Errorf("%w: outcome %d has weight %v", model.ErrInvalidWeight, o.ID, o.Weight)
		}
		if o.Weight > 0 {
			lastDrawable = i
		}
		total += o.Weight
	}
	if total <= 0 || math.IsInf(total, 0) {
		return model.Outcome{}, -1, model.ErrNoDrawableOutcome
	}

	r := src.Float64() * total
	for i, o := range outcomes {
		if r < o.Weight {
			return o, i, nil
		}
		r -= o.Weight
	}

	// Из-за округления ни один сектор не подошел - берем последний с ненулевым весом
	return outcomes[lastDrawable], lastDrawable, nil
}

// TotalWeight - сумма весов секторов
func TotalWeight(outcomes []model.Outcome) float64 {
	var total float64
	for _, o := range outcomes {
		total += o.Weight
	}
	return total
}
