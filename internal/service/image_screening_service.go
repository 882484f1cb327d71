package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/rs/zerolog/log"

	cfg "github.com/nilecart/storefront_api/internal/config"
)

// maxImageBytes caps how much of a submitted image is downloaded for
// screening. Rekognition's byte-payload limit is 5 MB.
const maxImageBytes = 5 * 1024 * 1024

// minLabelConfidence filters out low-confidence moderation labels.
const minLabelConfidence = 80

// ImageScreeningService checks submitted image URLs for unsafe content using
// AWS Rekognition. It is strictly advisory: callers treat every failure as a
// clean result and moderators still review each submission by hand.
type ImageScreeningService struct {
	rekognitionClient *rekognition.Client
	httpClient        *http.Client
}

// NewImageScreeningService creates the screening service. Credentials are
// loaded through the standard AWS chain (env vars, shared config).
func NewImageScreeningService(apiCfg *cfg.Config) (*ImageScreeningService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(apiCfg.AWS.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &ImageScreeningService{
		rekognitionClient: rekognition.NewFromConfig(awsCfg),
		httpClient:        &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// ScreenURL downloads the image and runs Rekognition moderation labels over
// it. It returns the top-level label names found above the confidence floor.
func (s *ImageScreeningService) ScreenURL(ctx context.Context, imageURL string) ([]string, error) {
	imageBytes, err := s.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	out, err := s.rekognitionClient.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: imageBytes},
		MinConfidence: aws.Float32(minLabelConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition error: %w", err)
	}

	seen := make(map[string]bool)
	var labels []string
	for _, l := range out.ModerationLabels {
		name := aws.ToString(l.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		labels = append(labels, name)
	}
	if len(labels) > 0 {
		log.Debug().Str("image_url", imageURL).Strs("labels", labels).Msg("Moderation labels detected")
	}
	return labels, nil
}

func (s *ImageScreeningService) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("image read failed: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte screening limit", maxImageBytes)
	}
	return data, nil
}
