package dto

type DetectRequest struct {
	// Image is the raw image, base64 encoded by the client.
	Image string `json:"image" validate:"required"`
}

type DetectionBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

type DetectionResponse struct {
	Label string       `json:"label"`
	Score float64      `json:"score"`
	Box   DetectionBox `json:"box"`
}

type DetectResponse struct {
	Detections []DetectionResponse `json:"detections"`
}
