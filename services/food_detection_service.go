package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/models"
)

// FoodDetectionService recognizes a dish from a photo and maps it back onto
// the knowledge base so the client can pre-fill a log entry. Recognition is
// an external service; only its interface matters here.
type FoodDetectionService struct {
	client *rekognition.Client
	kb     *knowledge.Base
}

func NewFoodDetectionService(kb *knowledge.Base) (*FoodDetectionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &FoodDetectionService{client: rekognition.NewFromConfig(cfg), kb: kb}, nil
}

// FoodMatch is a knowledge-base food entry that matched a detected label,
// with the nutrient it contributes to.
type FoodMatch struct {
	Nutrient models.Nutrient              `json:"nutrient"`
	Item     knowledge.RecommendationItem `json:"item"`
}

type DetectionResult struct {
	DishName string      `json:"dish_name"`
	Labels   []string    `json:"labels"`
	Matches  []FoodMatch `json:"matches"`
}

// DetectFood runs label detection on a base64 data-URI image and looks the
// labels up in the knowledge base. An image with no food match still returns
// the labels so the client can fall back to manual entry.
func (s *FoodDetectionService) DetectFood(ctx context.Context, base64Img string) (*DetectionResult, error) {
	idx := strings.Index(base64Img, ",")
	if !strings.HasPrefix(base64Img, "data:image") || idx < 0 {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := s.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}

	result := &DetectionResult{Labels: labels, DishName: "Unknown"}
	if len(labels) > 0 {
		result.DishName = labels[0]
	}
	result.Matches = s.LookupFood(result.DishName)
	return result, nil
}

// LookupFood scans the knowledge base for food entries matching the name
// (case-insensitive substring either way).
func (s *FoodDetectionService) LookupFood(name string) []FoodMatch {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var matches []FoodMatch
	for _, nutrient := range models.TrackedNutrients {
		for _, item := range s.kb.RecommendationsFor(nutrient) {
			if item.Type != knowledge.ItemFood {
				continue
			}
			food := strings.ToLower(item.Food)
			if strings.Contains(food, needle) || strings.Contains(needle, food) {
				matches = append(matches, FoodMatch{Nutrient: nutrient, Item: item})
			}
		}
	}
	return matches
}
