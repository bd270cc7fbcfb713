package service

import (
	"context"
	"encoding/base64"
	"errors"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/pkg/vision"
)

// minConfidence drops noisy low-score detections before they reach clients.
const minConfidence = 0.3

type IDetectionService interface {
	Detect(ctx context.Context, req *dto.DetectRequest) (*dto.DetectResponse, error)
}

type detectionService struct {
	detector vision.Detector
	logger   logger.ILogger
}

func NewDetectionService(detector vision.Detector, log logger.ILogger) IDetectionService {
	return &detectionService{
		detector: detector,
		logger:   log,
	}
}

func (s *detectionService) Detect(ctx context.Context, req *dto.DetectRequest) (*dto.DetectResponse, error) {
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return nil, errors.New("image must be valid base64")
	}

	detections, err := s.detector.Detect(ctx, image)
	if err != nil {
		s.logger.Error("DetectionService", "Detection call failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	out := make([]dto.DetectionResponse, 0, len(detections))
	for _, d := range detections {
		if d.Score < minConfidence {
			continue
		}
		out = append(out, dto.DetectionResponse{
			Label: d.Label,
			Score: d.Score,
			Box: dto.DetectionBox{
				XMin: d.Box.XMin,
				YMin: d.Box.YMin,
				XMax: d.Box.XMax,
				YMax: d.Box.YMax,
			},
		})
	}

	return &dto.DetectResponse{Detections: out}, nil
}
