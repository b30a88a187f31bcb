package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *TerminalHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Username and password required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.session.Login(ctx, h.auth, req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Login successful", user))
}

func (h *TerminalHTTPHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse("Session retrieved successfully", h.session.Info(c.Request.Context())))
}

func (h *TerminalHTTPHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Logout successful", nil))
}
