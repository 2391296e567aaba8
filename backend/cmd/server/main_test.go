package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestIntQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", func(c *gin.Context) {
		value, ok := intQuery(c, "limit", 10)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"limit": value})
	})

	// Missing parameter falls back to the default
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(10), response["limit"])

	// Valid parameter is parsed
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/probe?limit=5", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(5), response["limit"])

	// Malformed parameter is a 400
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/probe?limit=many", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFloatQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", func(c *gin.Context) {
		value, ok := floatQuery(c, "min_similarity", 0.3)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"min_similarity": value})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/probe?min_similarity=0.75", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 0.75, response["min_similarity"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/probe?min_similarity=high", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
