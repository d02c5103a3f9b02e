package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Yonurhan/MomCare-Final/pkg/logger"
	"github.com/Yonurhan/MomCare-Final/services"
	"github.com/Yonurhan/MomCare-Final/utils"
)

const (
	mfaCodeLength  = 6
	mfaCodeTTL     = 10 * time.Minute
	resetTokenTTL  = 15 * time.Minute
	resetTokenSize = 8
)

type AuthController struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthController(db *gorm.DB, log *logger.Logger) *AuthController {
	return &AuthController{db: db, log: log}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.RegisterUser(ac.db, input)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already registered"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registrasi berhasil.",
		"user_id": user.ID,
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.AuthenticateUser(ac.db, input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if user.MFAEnabled {
		code := utils.GenerateRandomToken(mfaCodeLength)
		user.MFACode = code
		user.MFACodeExp = time.Now().Add(mfaCodeTTL)
		if err := ac.db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start verification"})
			return
		}
		if err := utils.SendMFAEmail(user.Email, code); err != nil {
			ac.log.Warnw("failed to send mfa email", "user_id", user.ID, "error", err)
		}
		c.JSON(http.StatusOK, gin.H{"mfa_required": true, "message": "Kode verifikasi telah dikirim ke email Anda."})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}

type verifyMFAInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (ac *AuthController) VerifyMFA(c *gin.Context) {
	var input verifyMFAInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.FindUserByEmail(ac.db, input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		return
	}
	if user.MFACode == "" || user.MFACode != input.Code || time.Now().After(user.MFACodeExp) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		return
	}

	user.MFACode = ""
	if err := ac.db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete verification"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}

type forgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input forgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Always answer 200 so the endpoint does not leak which emails exist.
	user, err := services.FindUserByEmail(ac.db, input.Email)
	if err == nil {
		token := utils.GenerateRandomToken(resetTokenSize)
		user.ResetToken = token
		user.ResetTokenExp = time.Now().Add(resetTokenTTL)
		if err := ac.db.Save(user).Error; err == nil {
			if err := utils.SendResetEmail(user.Email, token); err != nil {
				ac.log.Warnw("failed to send reset email", "user_id", user.ID, "error", err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Jika email terdaftar, kode reset telah dikirim."})
}

type resetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input resetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.FindUserByEmail(ac.db, input.Email)
	if err != nil || user.ResetToken == "" || user.ResetToken != input.Token || time.Now().After(user.ResetTokenExp) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset token"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	user.Password = hashed
	user.ResetToken = ""
	if err := ac.db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kata sandi berhasil diubah."})
}
