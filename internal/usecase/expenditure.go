package usecase

import (
	"fmt"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
)

const (
	DimensionLanguage = "language"
	DimensionModel    = "model"
)

// Expenditure sums task payments per exact value of the dimension column, in
// first-seen order.
func Expenditure(tasks []model.Task, dimension string) (dto.Chart, error) {
	var key func(model.Task) string
	switch dimension {
	case DimensionLanguage:
		key = func(t model.Task) string { return t.Language }
	case DimensionModel:
		key = func(t model.Task) string { return t.Model }
	default:
		return dto.Chart{}, fmt.Errorf("%w: %s", ErrUnknownDimension, dimension)
	}

	index := map[string]int{}
	data := []dto.ChartData{}
	for _, t := range tasks {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(data)
			index[k] = i
			data = append(data, dto.ChartData{Name: k})
		}
		data[i].Value += t.TotalPayment()
	}

	var total, highest float64
	for i, d := range data {
		total += d.Value
		if i == 0 || d.Value > highest {
			highest = d.Value
		}
	}
	for i := range data {
		if total > 0 {
			data[i].Percentage = data[i].Value / total * 100
		}
	}
	summary := dto.ChartSummary{Total: total, Highest: highest}
	if len(data) > 0 {
		summary.Average = total / float64(len(data))
	}
	return dto.Chart{Dimension: dimension, Data: data, Summary: summary}, nil
}
