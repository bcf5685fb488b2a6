// internal/handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/resalex/backend/internal/config"
	"github.com/resalex/backend/internal/models"
	"github.com/resalex/backend/internal/services"
	"github.com/resalex/backend/internal/utils"
)

var handlerTestDBCounter int

type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	handlerTestDBCounter++
	dsn := fmt.Sprintf("file:handlertestdb%d?mode=memory&cache=shared", handlerTestDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.ChatMessage{}))
	suite.db = db

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	authHandler := NewAuthHandler(services.NewAuthService(db, cfg))

	suite.router = gin.New()
	auth := suite.router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}
}

func (suite *AuthHandlerTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	jsonData, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestRegisterSuccess() {
	w := suite.postJSON("/auth/register", map[string]interface{}{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response["success"].(bool))

	data := response["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	suite.Equal("user", user["role"])
	suite.NotContains(user, "password_hash")
}

func (suite *AuthHandlerTestSuite) TestRegisterDuplicateEmailConflict() {
	first := suite.postJSON("/auth/register", map[string]interface{}{
		"username": "userone",
		"email":    "same@example.com",
		"password": "password123",
	})
	suite.Equal(http.StatusCreated, first.Code)

	second := suite.postJSON("/auth/register", map[string]interface{}{
		"username": "usertwo",
		"email":    "same@example.com",
		"password": "password123",
	})
	suite.Equal(http.StatusConflict, second.Code)
}

func (suite *AuthHandlerTestSuite) TestRegisterValidationError() {
	w := suite.postJSON("/auth/register", map[string]interface{}{
		"username": "x",
		"email":    "not-an-email",
		"password": "123",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLoginAndRefresh() {
	suite.postJSON("/auth/register", map[string]interface{}{
		"username": "flowuser",
		"email":    "flow@example.com",
		"password": "password123",
	})

	login := suite.postJSON("/auth/login", map[string]interface{}{
		"username": "flowuser",
		"password": "password123",
	})
	suite.Equal(http.StatusOK, login.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(login.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	suite.NotEmpty(data["token"])

	refresh := suite.postJSON("/auth/refresh", map[string]interface{}{
		"refresh_token": data["refresh_token"],
	})
	suite.Equal(http.StatusOK, refresh.Code)
}

func (suite *AuthHandlerTestSuite) TestLoginBadCredentials() {
	w := suite.postJSON("/auth/login", map[string]interface{}{
		"username": "ghost",
		"password": "whatever",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
