package biometric

import (
	"context"
	"math"
	"testing"

	"faceguard.io/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealProbability(t *testing.T) {
	p, err := realProbability([]float64{0, 0}, 1, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	p, err = realProbability([]float64{1, 3}, 1, true)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(3)/(math.Exp(1)+math.Exp(3)), p, 1e-12)

	// large logits must not overflow
	p, err = realProbability([]float64{1000, 1001}, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.E), p, 1e-12)
}

func TestRealProbabilityWithoutSoftmax(t *testing.T) {
	p, err := realProbability([]float64{0.1, 0.9}, 1, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, p, 1e-12)

	// a second softmax would squash already normalised outputs
	squashed, err := realProbability([]float64{0.1, 0.9}, 1, true)
	require.NoError(t, err)
	assert.Less(t, squashed, 0.7)

	p, err = realProbability([]float64{-0.2, 1.3}, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	_, err = realProbability([]float64{0.5}, 1, false)
	assert.Error(t, err)
	_, err = realProbability([]float64{math.Inf(1), 0}, 1, false)
	assert.Error(t, err)
}

func TestDefaultClassifierAppliesSoftmax(t *testing.T) {
	assert.True(t, GetDefaultClassifierConfig().ApplySoftmax)
}

func TestRealProbabilityRejectsBadOutput(t *testing.T) {
	_, err := realProbability([]float64{0.2}, 1, true)
	assert.Error(t, err)

	_, err = realProbability(nil, 0, true)
	assert.Error(t, err)

	_, err = realProbability([]float64{math.NaN(), 0}, 0, true)
	assert.Error(t, err)
}

func TestClassifierWithoutModel(t *testing.T) {
	config := GetDefaultClassifierConfig()
	config.ModelPath = "./does-not-exist.onnx"
	classifier := NewONNXClassifier(config)
	assert.False(t, classifier.IsHealthy())

	crop := uniformCrop(40, 100)
	defer crop.Close()
	_, err := classifier.Classify(context.Background(), &crop, entities.FaceObservation{})
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
	assert.NoError(t, classifier.Close())
}
