package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetectionsFlatArray(t *testing.T) {
	body := []byte(`[
		{"label":"cat","score":0.91,"box":{"xmin":10,"ymin":20,"xmax":110,"ymax":220}},
		{"label":"dog","score":0.42,"box":{"xmin":1,"ymin":2,"xmax":3,"ymax":4}}
	]`)

	got, err := parseDetections(body)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "cat", got[0].Label)
	assert.Equal(t, 0.91, got[0].Score)
	assert.Equal(t, 110.0, got[0].Box.XMax)
}

func TestParseDetectionsWrappedPredictions(t *testing.T) {
	body := []byte(`[{"predictions":[{"label":"person","score":0.77,"box":{"xmin":0,"ymin":0,"xmax":50,"ymax":80}}]}]`)

	got, err := parseDetections(body)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "person", got[0].Label)
}

func TestParseDetectionsRejectsGarbage(t *testing.T) {
	_, err := parseDetections([]byte(`{"error":"model loading"}`))
	assert.Error(t, err)
}
