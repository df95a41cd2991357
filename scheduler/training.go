package scheduler

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

const (
	classifierEpochs = 300
	classifierLR     = 0.5
	regressorEpochs  = 500
	regressorLR      = 0.05
	holdoutFraction  = 0.2
	crossValFolds    = 5
)

// TrainingExample is one historical (features, outcome) pair.
type TrainingExample struct {
	Features        FeatureVector `json:"features"`
	WasSuccessful   bool          `json:"was_successful"`
	DurationMinutes float64       `json:"duration_minutes"`
}

// TrainingMetrics are observability outputs of a training run, not
// correctness requirements.
type TrainingMetrics struct {
	Examples        int     `json:"examples"`
	SuccessAccuracy float64 `json:"success_accuracy"`
	DurationMSE     float64 `json:"duration_mse"`
	SuccessCVMean   float64 `json:"success_cv_mean"`
	DurationCVMSE   float64 `json:"duration_cv_mse"`
}

// Train fits the classifier and regressor on examples, evaluating on a
// held-out 20% split and reporting 5-fold cross-validated diagnostics. The
// seed fixes the shuffle so runs are reproducible.
func Train(examples []TrainingExample, seed int64) (*RankingModel, TrainingMetrics, error) {
	if len(examples) < crossValFolds*2 {
		return nil, TrainingMetrics{}, fmt.Errorf("not enough training examples: %d", len(examples))
	}

	rng := rand.New(rand.NewSource(seed))
	shuffled := make([]TrainingExample, len(examples))
	copy(shuffled, examples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	rows, labels, durations := splitColumns(shuffled)

	model := &RankingModel{
		EncodingVersion: EncodingVersion,
		TrainedAt:       time.Now(),
	}
	model.Scaler.Fit(rows)
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		scaled[i] = model.Scaler.Transform(row)
	}

	holdout := int(float64(len(scaled)) * holdoutFraction)
	if holdout < 1 {
		holdout = 1
	}
	trainRows, testRows := scaled[holdout:], scaled[:holdout]
	trainLabels, testLabels := labels[holdout:], labels[:holdout]
	trainDurations, testDurations := durations[holdout:], durations[:holdout]

	model.Classifier.fit(trainRows, trainLabels, classifierEpochs, classifierLR)
	model.Regressor.fit(trainRows, trainDurations, regressorEpochs, regressorLR)

	metrics := TrainingMetrics{
		Examples:        len(examples),
		SuccessAccuracy: accuracy(&model.Classifier, testRows, testLabels),
		DurationMSE:     meanSquaredError(&model.Regressor, testRows, testDurations),
		SuccessCVMean:   crossValAccuracy(scaled, labels),
		DurationCVMSE:   crossValMSE(scaled, durations),
	}

	// Refit on the full dataset now that evaluation is done.
	model.Classifier.fit(scaled, labels, classifierEpochs, classifierLR)
	model.Regressor.fit(scaled, durations, regressorEpochs, regressorLR)

	log.Printf("model trained on %d examples: accuracy=%.3f mse=%.1f cv_accuracy=%.3f cv_mse=%.1f",
		metrics.Examples, metrics.SuccessAccuracy, metrics.DurationMSE,
		metrics.SuccessCVMean, metrics.DurationCVMSE)
	return model, metrics, nil
}

// TrainFromHistory generates n synthetic historical appointments, trains a
// model on them and persists it through store. Used to bootstrap a fresh
// deployment with no saved model.
func TrainFromHistory(gen *DataGenerator, store ModelStore, n int, seed int64) (*RankingModel, TrainingMetrics, error) {
	examples := gen.GenerateHistory(n)
	model, metrics, err := Train(examples, seed)
	if err != nil {
		return nil, metrics, err
	}
	if err := store.Save(model); err != nil {
		return nil, metrics, fmt.Errorf("save trained model: %w", err)
	}
	return model, metrics, nil
}

func splitColumns(examples []TrainingExample) (rows [][]float64, labels, durations []float64) {
	rows = make([][]float64, len(examples))
	labels = make([]float64, len(examples))
	durations = make([]float64, len(examples))
	for i, ex := range examples {
		row := make([]float64, FeatureCount)
		copy(row, ex.Features[:])
		rows[i] = row
		if ex.WasSuccessful {
			labels[i] = 1
		}
		durations[i] = ex.DurationMinutes
	}
	return rows, labels, durations
}

func accuracy(m *logisticModel, rows [][]float64, labels []float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	correct := 0
	for i, row := range rows {
		predicted := 0.0
		if m.predict(row) >= 0.5 {
			predicted = 1.0
		}
		if predicted == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows))
}

func meanSquaredError(m *linearModel, rows [][]float64, targets []float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for i, row := range rows {
		diff := m.predict(row) - targets[i]
		sum += diff * diff
	}
	return sum / float64(len(rows))
}

func crossValAccuracy(rows [][]float64, labels []float64) float64 {
	total := 0.0
	for fold := 0; fold < crossValFolds; fold++ {
		trainRows, trainY, testRows, testY := foldSplit(rows, labels, fold)
		var m logisticModel
		m.fit(trainRows, trainY, classifierEpochs, classifierLR)
		total += accuracy(&m, testRows, testY)
	}
	return total / crossValFolds
}

func crossValMSE(rows [][]float64, targets []float64) float64 {
	total := 0.0
	for fold := 0; fold < crossValFolds; fold++ {
		trainRows, trainY, testRows, testY := foldSplit(rows, targets, fold)
		var m linearModel
		m.fit(trainRows, trainY, regressorEpochs, regressorLR)
		total += meanSquaredError(&m, testRows, testY)
	}
	return total / crossValFolds
}

func foldSplit(rows [][]float64, ys []float64, fold int) (trainRows [][]float64, trainY []float64, testRows [][]float64, testY []float64) {
	for i := range rows {
		if i%crossValFolds == fold {
			testRows = append(testRows, rows[i])
			testY = append(testY, ys[i])
		} else {
			trainRows = append(trainRows, rows[i])
			trainY = append(trainY, ys[i])
		}
	}
	return
}
