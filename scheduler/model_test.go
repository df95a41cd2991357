package scheduler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedModel(t *testing.T) *RankingModel {
	t.Helper()
	gen := NewDataGenerator(42)
	model, metrics, err := Train(gen.GenerateHistory(1000), 42)
	require.NoError(t, err)
	require.Equal(t, 1000, metrics.Examples)
	return model
}

func TestTrainProducesUsableModel(t *testing.T) {
	model := trainedModel(t)
	assert.Equal(t, EncodingVersion, model.EncodingVersion)
	assert.Len(t, model.Classifier.Weights, FeatureCount)
	assert.Len(t, model.Regressor.Weights, FeatureCount)
	assert.False(t, model.TrainedAt.IsZero())
}

func TestPredictSuccessWithinBounds(t *testing.T) {
	model := trainedModel(t)
	gen := NewDataGenerator(7)
	for _, ex := range gen.GenerateHistory(200) {
		p := model.PredictSuccess(ex.Features)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestPredictDurationClamped(t *testing.T) {
	model := trainedModel(t)

	// An extreme out-of-distribution vector must still land inside the clamp.
	extreme := FeatureVector{1000, 1, 1, 6, 23, 12, 1, 7, 6}
	d := model.PredictDuration(extreme)
	assert.GreaterOrEqual(t, d, MinPredictedDuration)
	assert.LessOrEqual(t, d, MaxPredictedDuration)

	gen := NewDataGenerator(7)
	for _, ex := range gen.GenerateHistory(200) {
		d := model.PredictDuration(ex.Features)
		assert.GreaterOrEqual(t, d, MinPredictedDuration)
		assert.LessOrEqual(t, d, MaxPredictedDuration)
	}
}

func TestTrainIsDeterministicForSeed(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(42)
	examples1 := gen1.GenerateHistory(500)
	examples2 := gen2.GenerateHistory(500)

	model1, _, err := Train(examples1, 7)
	require.NoError(t, err)
	model2, _, err := Train(examples2, 7)
	require.NoError(t, err)

	assert.Equal(t, model1.Classifier.Weights, model2.Classifier.Weights)
	assert.Equal(t, model1.Regressor.Weights, model2.Regressor.Weights)
}

func TestTrainRejectsTinyDatasets(t *testing.T) {
	gen := NewDataGenerator(42)
	_, _, err := Train(gen.GenerateHistory(3), 42)
	assert.Error(t, err)
}

func TestFeatureImportanceCoversAllFeatures(t *testing.T) {
	model := trainedModel(t)
	importance := model.FeatureImportance()
	require.Len(t, importance, FeatureCount)
	for _, name := range FeatureNames {
		assert.Contains(t, importance, name)
		assert.GreaterOrEqual(t, importance[name], 0.0)
	}
}

func TestModelHolderBeforeLoad(t *testing.T) {
	holder := NewModelHolder()
	_, err := holder.Current()
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestModelHolderSwapUnderLoad(t *testing.T) {
	holder := NewModelHolder()
	first := trainedModel(t)
	holder.Swap(first)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				model, err := holder.Current()
				assert.NoError(t, err)
				assert.NotNil(t, model)
			}
		}()
	}
	second := trainedModel(t)
	holder.Swap(second)
	wg.Wait()

	current, err := holder.Current()
	require.NoError(t, err)
	assert.Same(t, second, current)
}

func TestFileModelStoreRoundTrip(t *testing.T) {
	store := NewFileModelStore(t.TempDir())
	assert.False(t, store.Exists())

	model := trainedModel(t)
	require.NoError(t, store.Save(model))
	assert.True(t, store.Exists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Classifier.Weights, loaded.Classifier.Weights)
	assert.Equal(t, model.Regressor.Weights, loaded.Regressor.Weights)
	assert.Equal(t, model.Scaler.Mean, loaded.Scaler.Mean)
	assert.Equal(t, model.Scaler.Std, loaded.Scaler.Std)
}

func TestFileModelStoreRejectsStaleEncoding(t *testing.T) {
	store := NewFileModelStore(t.TempDir())
	model := trainedModel(t)
	model.EncodingVersion = EncodingVersion + 1
	require.NoError(t, store.Save(model))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestTrainFromHistoryPersistsModel(t *testing.T) {
	store := NewFileModelStore(t.TempDir())
	gen := NewDataGenerator(42)

	model, metrics, err := TrainFromHistory(gen, store, 500, 42)
	require.NoError(t, err)
	assert.NotNil(t, model)
	assert.Equal(t, 500, metrics.Examples)
	assert.True(t, store.Exists())
}

func TestStandardScalerHandlesConstantColumns(t *testing.T) {
	var scaler StandardScaler
	scaler.Fit([][]float64{{1, 5}, {1, 7}, {1, 9}})

	scaled := scaler.Transform([]float64{1, 7})
	assert.Equal(t, 0.0, scaled[0])
	assert.Equal(t, 0.0, scaled[1])
}
