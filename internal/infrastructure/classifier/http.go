package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

var ErrBadModelResponse = errors.New("classifier: malformed model response")

type modelResponse struct {
	Logits        []float64 `json:"logits"`
	Probabilities []float64 `json:"probabilities"`
}

type httpClassifier struct {
	url       string
	client    *http.Client
	threshold float64
}

// NewHTTP returns a classifier that posts images to a model server at url.
func NewHTTP(url string, timeout time.Duration, threshold float64) Classifier {
	return &httpClassifier{
		url:       url,
		client:    &http.Client{Timeout: timeout},
		threshold: threshold,
	}
}

func (c *httpClassifier) Classify(ctx context.Context, img Image) (*Analysis, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Name))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, img.Data); err != nil {
		return nil, fmt.Errorf("classifier: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("classifier: model server returned %d: %s", res.StatusCode, bytes.TrimSpace(msg))
	}

	var out modelResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelResponse, err)
	}

	switch {
	case len(out.Logits) == 2:
		neg, pos := softmax2(out.Logits[0], out.Logits[1])
		return newAnalysis(neg, pos, c.threshold), nil
	case len(out.Probabilities) == 2:
		neg, pos := out.Probabilities[0], out.Probabilities[1]
		if neg < 0 || pos < 0 || neg+pos == 0 {
			return nil, fmt.Errorf("%w: probabilities %v", ErrBadModelResponse, out.Probabilities)
		}
		sum := neg + pos
		return newAnalysis(neg/sum, pos/sum, c.threshold), nil
	default:
		return nil, fmt.Errorf("%w: expected two classes", ErrBadModelResponse)
	}
}
