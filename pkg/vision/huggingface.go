package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BoundingBox locates a detection inside the submitted image, in pixels.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Detection is one labelled object returned by the vision backend.
type Detection struct {
	Label string      `json:"label"`
	Score float64     `json:"score"`
	Box   BoundingBox `json:"box"`
}

// Detector is the contract for the remote object-detection backend.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

const defaultDetectionURL = "https://api-inference.huggingface.co/models/hustvl/yolos-tiny"

// HuggingFaceDetector calls the Hugging Face Inference API with a base64
// encoded image and decodes the returned detections. No filtering happens
// here; thresholds are the caller's policy.
type HuggingFaceDetector struct {
	apiToken string
	url      string
	client   *http.Client
}

func NewHuggingFaceDetector(apiToken string) *HuggingFaceDetector {
	return &HuggingFaceDetector{
		apiToken: apiToken,
		url:      defaultDetectionURL,
		client:   &http.Client{},
	}
}

type detectRequest struct {
	Inputs string `json:"inputs"`
}

func (d *HuggingFaceDetector) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	payload := detectRequest{Inputs: base64.StdEncoding.EncodeToString(image)}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", d.apiToken))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return parseDetections(bodyBytes)
}

// parseDetections accepts both the flat detection array the Inference API
// returns for object-detection models and the wrapped
// [{"predictions": [...]}] layout some deployments emit.
func parseDetections(body []byte) ([]Detection, error) {
	// The wrapped layout also decodes as a flat array of zero-valued
	// detections, so it has to be probed first.
	var wrapped []struct {
		Predictions []Detection `json:"predictions"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped) > 0 && wrapped[0].Predictions != nil {
		return wrapped[0].Predictions, nil
	}

	var flat []Detection
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	return nil, fmt.Errorf("failed to decode detection response: %s", string(body))
}
