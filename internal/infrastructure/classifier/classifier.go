// Package classifier turns a chest x-ray into the textual screening report
// consumed by the upload workflow.
package classifier

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
)

const (
	VerdictPneumonia    = "Pneumonia detected."
	VerdictNormal       = "Normal, no signs of pneumonia."
	VerdictInconclusive = "Inconclusive, refer to an expert."
)

// Image is the uploaded file handed to the model.
type Image struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// Analysis is the outcome of one classification. Report contains "Pneumonia"
// only when the model is confident of pneumonia and "Normal" only when it is
// confident there is none.
type Analysis struct {
	Report              string
	PneumoniaConfidence decimal.NullDecimal
}

type Classifier interface {
	Classify(ctx context.Context, img Image) (*Analysis, error)
}

// newAnalysis builds the report for the class probabilities [negative, positive].
func newAnalysis(negative, positive, threshold float64) *Analysis {
	verdict := VerdictInconclusive
	switch {
	case positive >= negative && positive >= threshold:
		verdict = VerdictPneumonia
	case negative > positive && negative >= threshold:
		verdict = VerdictNormal
	}
	return &Analysis{
		Report: fmt.Sprintf("Negative certainty: %.4f\nPositive certainty: %.4f\nPrediction: %s",
			negative, positive, verdict),
		PneumoniaConfidence: decimal.NewNullDecimal(decimal.NewFromFloat(positive).Round(4)),
	}
}

// softmax2 normalises two logits into probabilities.
func softmax2(a, b float64) (float64, float64) {
	m := math.Max(a, b)
	ea, eb := math.Exp(a-m), math.Exp(b-m)
	sum := ea + eb
	return ea / sum, eb / sum
}

type unavailableClassifier struct{}

// NewUnavailable returns a classifier for deployments without a model server.
// Every scan is reported inconclusive and left for expert review.
func NewUnavailable() Classifier {
	return unavailableClassifier{}
}

func (unavailableClassifier) Classify(ctx context.Context, img Image) (*Analysis, error) {
	return &Analysis{
		Report: "Automated screening is not configured.\nPrediction: " + VerdictInconclusive,
	}, nil
}
