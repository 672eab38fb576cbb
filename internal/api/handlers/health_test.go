package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/user-service/internal/api/dto"
	"github.com/unifiedui/user-service/internal/api/handlers"
	"github.com/unifiedui/user-service/internal/mocks"
	"github.com/unifiedui/user-service/internal/testutils"
)

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.On("Ping", mock.Anything).Return(nil)
	mockUsers := &mocks.MockUsersService{}
	mockUsers.On("Healthy", mock.Anything).Return(true)

	handler := handlers.NewHealthHandler(mockDocDB, mockUsers)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutils.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "healthy", response.Components["docdb"])
	assert.Equal(t, "healthy", response.Components["users"])

	mockDocDB.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestHealthHandler_Health_DatabaseUnreachable(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.On("Ping", mock.Anything).Return(assert.AnError)
	mockUsers := &mocks.MockUsersService{}
	mockUsers.On("Healthy", mock.Anything).Return(false)

	handler := handlers.NewHealthHandler(mockDocDB, mockUsers)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutils.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var response dto.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "unhealthy", response.Components["docdb"])
	assert.Equal(t, "unhealthy", response.Components["users"])
}

func TestHealthHandler_Health_UsersUnreachable(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.On("Ping", mock.Anything).Return(nil)
	mockUsers := &mocks.MockUsersService{}
	mockUsers.On("Healthy", mock.Anything).Return(false)

	handler := handlers.NewHealthHandler(mockDocDB, mockUsers)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutils.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var response dto.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "healthy", response.Components["docdb"])
	assert.Equal(t, "unhealthy", response.Components["users"])

	mockUsers.AssertExpectations(t)
	mockDocDB.GetMockUsersCollection().AssertNotCalled(t, "CheckConnection", mock.Anything)
}

func TestHealthHandler_Ready(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockDocDB, &mocks.MockUsersService{})

	router := testutils.SetupTestRouter()
	router.GET("/ready", handler.Ready)

	w := testutils.PerformRequest(router, http.MethodGet, "/ready", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
}

func TestHealthHandler_Ready_NotReady(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.On("Ping", mock.Anything).Return(assert.AnError)

	handler := handlers.NewHealthHandler(mockDocDB, &mocks.MockUsersService{})

	router := testutils.SetupTestRouter()
	router.GET("/ready", handler.Ready)

	w := testutils.PerformRequest(router, http.MethodGet, "/ready", nil, nil)

	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var response map[string]string
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "docdb unavailable", response["reason"])
}

func TestHealthHandler_Live(t *testing.T) {
	handler := handlers.NewHealthHandler(mocks.NewMockDocDBClient(), &mocks.MockUsersService{})

	router := testutils.SetupTestRouter()
	router.GET("/live", handler.Live)

	w := testutils.PerformRequest(router, http.MethodGet, "/live", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response map[string]string
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "alive", response["status"])
}
