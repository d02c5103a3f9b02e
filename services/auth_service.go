package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/models"
	"github.com/Yonurhan/MomCare-Final/utils"
)

type RegisterInput struct {
	Username string     `json:"username" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Age      int        `json:"age" binding:"required"`
	Height   float64    `json:"height" binding:"required"`
	Weight   float64    `json:"weight" binding:"required"`
	LMPDate  *time.Time `json:"lmp_date"`
}

func RegisterUser(db *gorm.DB, input RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Age:      input.Age,
		Height:   input.Height,
		Weight:   input.Weight,
		LMPDate:  input.LMPDate,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errors.New("invalid email or password")
	}
	return &user, nil
}

func FindUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
