package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Yonurhan/MomCare-Final/config"
	"github.com/Yonurhan/MomCare-Final/knowledge"
	"github.com/Yonurhan/MomCare-Final/pkg/logger"
	"github.com/Yonurhan/MomCare-Final/routes"
	"github.com/Yonurhan/MomCare-Final/services"
	"github.com/Yonurhan/MomCare-Final/utils"
)

func main() {
	config.LoadEnv()

	log := logger.New()
	defer log.Sync()

	config.InitDB()

	kb, err := knowledge.Load()
	if err != nil {
		log.Fatalw("failed to load knowledge base", "error", err)
	}

	if err := utils.InitS3(); err != nil {
		log.Warnw("s3 unavailable, profile picture uploads disabled", "error", err)
	}
	if err := utils.InitSES(); err != nil {
		log.Warnw("ses unavailable, emails disabled", "error", err)
	}

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Warnw("push service unavailable", "error", err)
		push = nil
	}

	detection, err := services.NewFoodDetectionService(kb)
	if err != nil {
		log.Warnw("food detection unavailable", "error", err)
		detection = nil
	}

	r := gin.Default()
	routes.Setup(r, routes.Deps{
		DB:        config.DB,
		KB:        kb,
		Log:       log,
		Hub:       hub,
		Push:      push,
		Detection: detection,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infow("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
