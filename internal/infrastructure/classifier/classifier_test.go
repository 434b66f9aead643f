package classifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelServer(t *testing.T, reply any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "missing image", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "chest.png" || string(data) != "png-bytes" {
			http.Error(w, "unexpected upload", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply)
	}))
}

func classify(t *testing.T, c Classifier) *Analysis {
	t.Helper()
	analysis, err := c.Classify(context.Background(), Image{
		Name:        "chest.png",
		ContentType: "image/png",
		Data:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	return analysis
}

func TestHTTPClassifier_Verdicts(t *testing.T) {
	cases := []struct {
		name  string
		reply any
		want  entity.XrayPrediction
	}{
		{"pneumonia logits", map[string]any{"logits": []float64{-2, 3}}, entity.PredictionPneumonia},
		{"normal logits", map[string]any{"logits": []float64{4, -1}}, entity.PredictionNormal},
		{"close call", map[string]any{"probabilities": []float64{0.52, 0.48}}, entity.PredictionUnclear},
		{"normal probabilities", map[string]any{"probabilities": []float64{0.9, 0.1}}, entity.PredictionNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := modelServer(t, tc.reply)
			defer srv.Close()

			analysis := classify(t, NewHTTP(srv.URL, time.Second, 0.6))
			assert.Equal(t, tc.want, entity.PredictionFromReport(analysis.Report))
			assert.True(t, analysis.PneumoniaConfidence.Valid)
		})
	}
}

func TestHTTPClassifier_ReportFormat(t *testing.T) {
	srv := modelServer(t, map[string]any{"probabilities": []float64{0.25, 0.75}})
	defer srv.Close()

	analysis := classify(t, NewHTTP(srv.URL, time.Second, 0.6))
	assert.Equal(t, "Negative certainty: 0.2500\nPositive certainty: 0.7500\nPrediction: Pneumonia detected.", analysis.Report)
	assert.Equal(t, "0.75", analysis.PneumoniaConfidence.Decimal.String())
}

func TestHTTPClassifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, time.Second, 0.6).Classify(context.Background(), Image{Name: "a.png", Data: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPClassifier_MalformedResponse(t *testing.T) {
	srv := modelServer(t, map[string]any{"logits": []float64{1, 2, 3}})
	defer srv.Close()

	_, err := NewHTTP(srv.URL, time.Second, 0.6).Classify(context.Background(), Image{
		Name: "chest.png", Data: strings.NewReader("png-bytes"),
	})
	assert.ErrorIs(t, err, ErrBadModelResponse)
}

func TestHTTPClassifier_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, 20*time.Millisecond, 0.6).Classify(context.Background(), Image{Name: "a.png", Data: strings.NewReader("x")})
	assert.Error(t, err)
}

func TestUnavailableClassifier(t *testing.T) {
	analysis := classify(t, NewUnavailable())
	assert.Equal(t, entity.PredictionUnclear, entity.PredictionFromReport(analysis.Report))
	assert.False(t, analysis.PneumoniaConfidence.Valid)
}

func TestSoftmax2(t *testing.T) {
	neg, pos := softmax2(0, 0)
	assert.InDelta(t, 0.5, neg, 1e-9)
	assert.InDelta(t, 0.5, pos, 1e-9)

	neg, pos = softmax2(1000, 0)
	assert.InDelta(t, 1, neg, 1e-9)
	assert.InDelta(t, 0, pos, 1e-9)
}
