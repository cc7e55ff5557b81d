package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	_, err := h.store.FindUserByEmail(ctx.Request.Context(), req.Email)

	if err == nil {
		fail(ctx, http.StatusConflict, "Email already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("failed to check existing user: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if err != nil {
		log.Printf("failed to hash password: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := h.store.CreateUser(ctx.Request.Context(), &user); err != nil {
		log.Printf("failed to create user: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondWithTokens(ctx, http.StatusCreated, &user)
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.FindUserByEmail(ctx.Request.Context(), req.Email)

	// A missing user and a wrong password are indistinguishable.
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(ctx, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("failed to fetch user: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		fail(ctx, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.respondWithTokens(ctx, http.StatusOK, user)
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.store.FindUserByID(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		log.Printf("failed to fetch user: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	success(ctx, http.StatusOK, types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) respondWithTokens(ctx *gin.Context, code int, user *models.User) {
	accessToken, err := h.tokens.IssueAccessToken(user.ID)

	if err != nil {
		log.Printf("failed to issue access token: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	refreshToken, err := h.tokens.IssueRefreshToken(user.ID)

	if err != nil {
		log.Printf("failed to issue refresh token: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	success(ctx, code, types.TokenResponse{
		User: types.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}
