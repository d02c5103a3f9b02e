package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yonurhan/MomCare-Final/services"
)

type FoodDetectionController struct {
	svc *services.FoodDetectionService
}

func NewFoodDetectionController(svc *services.FoodDetectionService) *FoodDetectionController {
	return &FoodDetectionController{svc: svc}
}

type detectInput struct {
	Image string `json:"image" binding:"required"` // base64 data URI
}

func (fc *FoodDetectionController) Detect(c *gin.Context) {
	if _, ok := userIDFromCtx(c); !ok {
		return
	}

	var input detectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := fc.svc.DetectFood(c.Request.Context(), input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
