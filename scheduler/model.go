package scheduler

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Predicted durations are clamped to this range to reject model
// extrapolation artifacts.
const (
	MinPredictedDuration = 15.0
	MaxPredictedDuration = 120.0
)

// StandardScaler normalizes features to zero mean and unit variance using
// statistics captured at training time and reused at inference.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Fit captures per-column mean and standard deviation.
func (s *StandardScaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	column := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i, row := range rows {
			column[i] = row[j]
		}
		s.Mean[j] = stat.Mean(column, nil)
		s.Std[j] = stat.StdDev(column, nil)
		// Constant columns would otherwise divide by zero.
		if s.Std[j] == 0 || math.IsNaN(s.Std[j]) {
			s.Std[j] = 1
		}
	}
}

// Transform scales a single row using the fitted statistics.
func (s *StandardScaler) Transform(row []float64) []float64 {
	scaled := make([]float64, len(row))
	for j, v := range row {
		scaled[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return scaled
}

// logisticModel is a logistic-regression classifier fit by gradient descent.
type logisticModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func (m *logisticModel) fit(rows [][]float64, labels []float64, epochs int, learningRate float64) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	m.Weights = make([]float64, cols)
	m.Bias = 0
	grad := make([]float64, cols)
	n := float64(len(rows))

	for epoch := 0; epoch < epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		biasGrad := 0.0
		for i, row := range rows {
			err := sigmoid(floats.Dot(m.Weights, row)+m.Bias) - labels[i]
			for j, v := range row {
				grad[j] += err * v
			}
			biasGrad += err
		}
		for j := range m.Weights {
			m.Weights[j] -= learningRate * grad[j] / n
		}
		m.Bias -= learningRate * biasGrad / n
	}
}

func (m *logisticModel) predict(row []float64) float64 {
	return sigmoid(floats.Dot(m.Weights, row) + m.Bias)
}

// linearModel is a least-squares regressor fit by gradient descent.
type linearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

func (m *linearModel) fit(rows [][]float64, targets []float64, epochs int, learningRate float64) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	m.Weights = make([]float64, cols)
	// Starting from the target mean keeps early gradients small.
	m.Bias = stat.Mean(targets, nil)
	grad := make([]float64, cols)
	n := float64(len(rows))

	for epoch := 0; epoch < epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		biasGrad := 0.0
		for i, row := range rows {
			err := floats.Dot(m.Weights, row) + m.Bias - targets[i]
			for j, v := range row {
				grad[j] += err * v
			}
			biasGrad += err
		}
		for j := range m.Weights {
			m.Weights[j] -= learningRate * grad[j] / n
		}
		m.Bias -= learningRate * biasGrad / n
	}
}

func (m *linearModel) predict(row []float64) float64 {
	return floats.Dot(m.Weights, row) + m.Bias
}

// RankingModel pairs a success classifier with a duration regressor plus the
// scaler fit during training. Immutable after training; retraining builds a
// fresh model which is swapped in via ModelHolder.
type RankingModel struct {
	EncodingVersion int            `json:"encoding_version"`
	Classifier      logisticModel  `json:"classifier"`
	Regressor       linearModel    `json:"regressor"`
	Scaler          StandardScaler `json:"scaler"`
	TrainedAt       time.Time      `json:"trained_at"`
}

// PredictSuccess returns the predicted probability of appointment success.
func (m *RankingModel) PredictSuccess(features FeatureVector) float64 {
	return m.Classifier.predict(m.Scaler.Transform(features[:]))
}

// PredictDuration returns the predicted appointment duration in minutes,
// clamped to [MinPredictedDuration, MaxPredictedDuration].
func (m *RankingModel) PredictDuration(features FeatureVector) float64 {
	predicted := m.Regressor.predict(m.Scaler.Transform(features[:]))
	return math.Max(MinPredictedDuration, math.Min(MaxPredictedDuration, predicted))
}

// FeatureImportance reports the absolute classifier weights per feature, a
// rough diagnostic of which inputs drive the success prediction.
func (m *RankingModel) FeatureImportance() map[string]float64 {
	importance := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		if i < len(m.Classifier.Weights) {
			importance[name] = math.Abs(m.Classifier.Weights[i])
		}
	}
	return importance
}

// ModelHolder serves the current model to concurrent readers. Training is
// load-then-swap: in-flight inference keeps the previous model until Swap.
type ModelHolder struct {
	mu    sync.RWMutex
	model *RankingModel
}

func NewModelHolder() *ModelHolder {
	return &ModelHolder{}
}

// Current returns the active model, or ErrModelNotLoaded before any model
// has been trained or loaded.
func (h *ModelHolder) Current() (*RankingModel, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.model == nil {
		return nil, ErrModelNotLoaded
	}
	return h.model, nil
}

// Swap atomically replaces the active model.
func (h *ModelHolder) Swap(model *RankingModel) {
	h.mu.Lock()
	h.model = model
	h.mu.Unlock()
}
