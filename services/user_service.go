package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/models"
	"github.com/Yonurhan/MomCare-Final/utils"
)

type ProfileInput struct {
	Age            int                   `json:"age"`
	Height         float64               `json:"height"`
	Weight         float64               `json:"weight"`
	LMPDate        string                `json:"lmp_date"` // YYYY-MM-DD
	Preferences    *models.Preferences   `json:"preferences"`
	HealthProfile  *models.HealthProfile `json:"health_profile"`
	ProfilePicture string                `json:"profile_picture"` // base64 data URI
	MFAEnabled     *bool                 `json:"mfa_enabled"`
}

func GetUserProfile(db *gorm.DB, userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	var lmp, dueDate string
	week := 0
	trimester := 0
	if user.LMPDate != nil {
		lmp = user.LMPDate.Format("2006-01-02")
		dueDate = DueDate(*user.LMPDate).Format("2006-01-02")
		week = GestationalWeek(*user.LMPDate, time.Now())
		trimester = Trimester(week)
	}

	return map[string]interface{}{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"age":              user.Age,
		"height":           user.Height,
		"weight":           user.Weight,
		"lmp_date":         lmp,
		"due_date":         dueDate,
		"gestational_week": week,
		"trimester":        trimester,
		"preferences":      user.ParsedPreferences(),
		"health_profile":   user.ParsedHealthProfile(),
		"profile_picture":  user.ProfilePicture,
		"mfa_enabled":      user.MFAEnabled,
	}, nil
}

func UpdateUserProfile(db *gorm.DB, userID uint, input ProfileInput) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.LMPDate != "" {
		lmp, err := time.Parse("2006-01-02", input.LMPDate)
		if err != nil {
			return fmt.Errorf("invalid lmp_date: %v", err)
		}
		user.LMPDate = &lmp
	}
	if input.Preferences != nil {
		raw, err := json.Marshal(input.Preferences)
		if err != nil {
			return err
		}
		user.Preferences = raw
	}
	if input.HealthProfile != nil {
		raw, err := json.Marshal(input.HealthProfile)
		if err != nil {
			return err
		}
		user.HealthProfile = raw
	}
	if input.MFAEnabled != nil {
		user.MFAEnabled = *input.MFAEnabled
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, fmt.Sprintf("profiles/%d", userID))
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	return db.Save(&user).Error
}
