package bootstrap

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Syeddabbas07/chest-ray/config"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/classifier"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassifier_WithoutURLMarksScansUnclear(t *testing.T) {
	log, hook := test.NewNullLogger()

	c := newClassifier(config.ClassifierConfig{}, log)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "CLASSIFIER_URL is not set, x-rays will be marked Unclear for expert review", entry.Message)

	analysis, err := c.Classify(context.Background(), classifier.Image{
		Name: "chest.png",
		Data: strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PredictionUnclear, entity.PredictionFromReport(analysis.Report))
}

func TestNewClassifier_WithURL(t *testing.T) {
	log, hook := test.NewNullLogger()

	c := newClassifier(config.ClassifierConfig{URL: "http://127.0.0.1:5000/predict", Timeout: time.Second, Threshold: 0.5}, log)

	assert.NotNil(t, c)
	assert.Empty(t, hook.AllEntries())
}
