package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/access"
)

// success wraps every 2xx payload in the common envelope.
func success(ctx *gin.Context, code int, data interface{}) {
	ctx.JSON(code, gin.H{
		"status":  "success",
		"data":    data,
		"message": nil,
	})
}

func fail(ctx *gin.Context, code int, message string) {
	ctx.JSON(code, gin.H{"error": message})
}

// failAccess maps access-check errors onto HTTP statuses. Existence
// failures come out as 404 and authorization failures as 403; anything
// else is a server error.
func failAccess(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrProjectNotFound):
		fail(ctx, http.StatusNotFound, "Project not found")
	case errors.Is(err, access.ErrForbidden), errors.Is(err, access.ErrOwnerOnly):
		fail(ctx, http.StatusForbidden, err.Error())
	default:
		log.Printf("access check failed: %v", err)
		fail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

// pageParams reads page/size query values, clamping size to 1..100.
func pageParams(ctx *gin.Context, defaultSize int) (page, size int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	if err != nil || page < 1 {
		page = 1
	}

	size, err = strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(defaultSize)))

	if err != nil || size < 1 {
		size = defaultSize
	}

	if size > 100 {
		size = 100
	}

	return page, size
}
