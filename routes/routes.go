package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/controllers"
	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/middlewares"
	"github.com/Yonurhan/MomCare-Final/pkg/logger"
	"github.com/Yonurhan/MomCare-Final/services"
)

// Deps carries everything the route tree needs. Push and detection are
// optional: when their AWS clients could not be built the endpoints are
// simply not mounted.
type Deps struct {
	DB        *gorm.DB
	KB        *knowledge.Base
	Log       *logger.Logger
	Hub       *services.RealtimeHub
	Push      *services.PushService
	Detection *services.FoodDetectionService
}

func Setup(r *gin.Engine, deps Deps) {
	assessmentSvc := services.NewAssessmentService(deps.DB, deps.KB, deps.Log, deps.Hub, deps.Push)

	auth := controllers.NewAuthController(deps.DB, deps.Log)
	user := controllers.NewUserController(deps.DB)
	nutrition := controllers.NewNutritionController(deps.DB)
	assessment := controllers.NewAssessmentController(deps.DB, assessmentSvc)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/verify-mfa", auth.VerifyMFA)
		authGroup.POST("/forgot-password", auth.ForgotPassword)
		authGroup.POST("/reset-password", auth.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		userGroup := protected.Group("/user")
		{
			userGroup.GET("/profile", user.GetProfile)
			userGroup.PUT("/profile", user.UpdateProfile)
		}

		nutritionGroup := protected.Group("/nutrition")
		{
			nutritionGroup.POST("/log", nutrition.LogIntake)
			nutritionGroup.GET("/log/today", nutrition.TodayLog)
			nutritionGroup.GET("/goal", nutrition.Goal)
			nutritionGroup.GET("/summary", nutrition.Summary)
		}

		assessmentGroup := protected.Group("/assessment")
		{
			assessmentGroup.POST("/perform", assessment.Perform)
			assessmentGroup.GET("/status", assessment.Status)
			assessmentGroup.GET("/result/:id", assessment.Result)
			assessmentGroup.GET("/history", assessment.History)
		}

		if deps.Hub != nil {
			realtime := controllers.NewRealtimeController(deps.Hub, deps.Log)
			protected.GET("/ws", realtime.Subscribe)
		}

		if deps.Push != nil {
			device := controllers.NewDeviceController(deps.Push)
			protected.POST("/devices", device.Register)
		}

		if deps.Detection != nil {
			detection := controllers.NewFoodDetectionController(deps.Detection)
			protected.POST("/detection/food", detection.Detect)
		}
	}
}
