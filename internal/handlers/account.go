package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"autoshop/api/internal/middleware"
	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/service"
)

func (h HandlerSet) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

type updateProfileRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
	Region    string  `json:"region"`
	Province  string  `json:"province"`
	City      string  `json:"city"`
	Barangay  string  `json:"barangay"`
	Street    string  `json:"street"`
	Country   string  `json:"country"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}

	updated, err := h.accountService.UpdateProfile(c.Request.Context(), user.ID, service.ProfileUpdateInput{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Address: models.Address{
			Region:   req.Region,
			Province: req.Province,
			City:     req.City,
			Barangay: req.Barangay,
			Street:   req.Street,
			Country:  req.Country,
		},
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "email is already in use")
			return
		}
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("profile update failed")
		fail(c, http.StatusInternalServerError, "PROFILE_ERROR", "unable to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"user":    toUserResponse(updated),
	})
}

func (h HandlerSet) ExportData(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}

	bundle, err := h.accountService.Export(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("export failed")
		fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "unable to export data")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="account-export.json"`)
	c.JSON(http.StatusOK, bundle)
}

type deleteAccountRequest struct {
	Password         string `json:"password"`
	ConfirmationWord string `json:"confirmationWord"`
	ProvidedWord     string `json:"providedWord"`
}

func (h HandlerSet) DeleteAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}

	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "password and confirmation are required")
		return
	}

	err := h.accountService.DeleteAccount(c.Request.Context(), user.ID, service.DeleteAccountInput{
		Password:         req.Password,
		ConfirmationWord: req.ConfirmationWord,
		ProvidedWord:     req.ProvidedWord,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "password is incorrect")
		case errors.Is(err, service.ErrConfirmationMismatch):
			fail(c, http.StatusBadRequest, "CONFIRMATION_MISMATCH", "confirmation word does not match")
		default:
			h.log.Error().Err(err).Str("user_id", user.ID).Msg("account deletion failed")
			fail(c, http.StatusInternalServerError, "PROFILE_ERROR", "unable to delete account")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

const maxAvatarSize = 5 << 20

func (h HandlerSet) UploadAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		fail(c, http.StatusBadRequest, "PROFILE_ERROR", "avatar must be 5MB or smaller")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		fail(c, http.StatusBadRequest, "PROFILE_ERROR", "avatar must be png, jpeg, or webp")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "PROFILE_ERROR", "unable to read avatar")
		return
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s%s", user.ID, ext)
	avatarURL, err := h.store.PutAvatar(c.Request.Context(), objectName, file, fileHeader.Size, contentType)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("avatar upload failed")
		fail(c, http.StatusInternalServerError, "PROFILE_ERROR", "unable to store avatar")
		return
	}

	if err := h.users.SetAvatar(c.Request.Context(), user.ID, avatarURL); err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("avatar save failed")
		fail(c, http.StatusInternalServerError, "PROFILE_ERROR", "unable to save avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "avatar updated",
		"avatarUrl": avatarURL,
	})
}
