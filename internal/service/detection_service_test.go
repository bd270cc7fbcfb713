package service

import (
	"context"
	"encoding/base64"
	"testing"

	"shopchat-be/internal/dto"
	"shopchat-be/pkg/vision"

	"github.com/stretchr/testify/assert"
)

type fakeDetector struct {
	detections []vision.Detection
	err        error
	gotImage   []byte
}

func (f *fakeDetector) Detect(ctx context.Context, image []byte) ([]vision.Detection, error) {
	f.gotImage = image
	return f.detections, f.err
}

func TestDetectFiltersLowConfidence(t *testing.T) {
	detector := &fakeDetector{detections: []vision.Detection{
		{Label: "cat", Score: 0.95, Box: vision.BoundingBox{XMin: 1, YMin: 2, XMax: 3, YMax: 4}},
		{Label: "dog", Score: 0.29},
		{Label: "person", Score: 0.3},
	}}
	svc := NewDetectionService(detector, testLogger{})

	image := base64.StdEncoding.EncodeToString([]byte("raw-bytes"))
	res, err := svc.Detect(context.Background(), &dto.DetectRequest{Image: image})
	assert.NoError(t, err)

	assert.Len(t, res.Detections, 2, "scores below 0.3 are dropped")
	assert.Equal(t, "cat", res.Detections[0].Label)
	assert.Equal(t, "person", res.Detections[1].Label)
	assert.Equal(t, 3.0, res.Detections[0].Box.XMax)

	assert.Equal(t, []byte("raw-bytes"), detector.gotImage, "payload is decoded before the backend call")
}

func TestDetectRejectsInvalidBase64(t *testing.T) {
	detector := &fakeDetector{}
	svc := NewDetectionService(detector, testLogger{})

	_, err := svc.Detect(context.Background(), &dto.DetectRequest{Image: "!!not-base64!!"})
	assert.Error(t, err)
	assert.Nil(t, detector.gotImage, "backend is not called for bad input")
}

func TestDetectPropagatesBackendError(t *testing.T) {
	detector := &fakeDetector{err: assert.AnError}
	svc := NewDetectionService(detector, testLogger{})

	image := base64.StdEncoding.EncodeToString([]byte("img"))
	_, err := svc.Detect(context.Background(), &dto.DetectRequest{Image: image})
	assert.Error(t, err)
}
