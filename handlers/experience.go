package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListExperiences returns the full catalog.
func ListExperiences(c *gin.Context) {
	exps, err := Catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list experiences", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiences": exps})
}

// GetExperience returns one experience by numeric id.
func GetExperience(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience id"})
		return
	}

	exp, err := Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "experience not found"})
		return
	}
	c.JSON(http.StatusOK, exp)
}
