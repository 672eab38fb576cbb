package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unifiedui/user-service/internal/api/dto"
	"github.com/unifiedui/user-service/internal/api/handlers"
	"github.com/unifiedui/user-service/internal/domain/errors"
	"github.com/unifiedui/user-service/internal/domain/models"
	"github.com/unifiedui/user-service/internal/mocks"
	"github.com/unifiedui/user-service/internal/services/users"
	"github.com/unifiedui/user-service/internal/testutils"
)

func setupUsersRouter(svc *mocks.MockUsersService) *gin.Engine {
	handler := handlers.NewUsersHandler(svc)

	router := testutils.SetupTestRouter()
	router.POST("/users", handler.CreateUser)
	router.GET("/users", handler.ListUsers)
	router.DELETE("/users", handler.DeleteAllUsers)
	router.POST("/users/indexes", handler.CreateIndex)
	router.GET("/users/by-name/:name", handler.GetUserByName)
	router.PATCH("/users/by-name/:name", handler.UpdateUserByName)
	router.GET("/users/:userId", handler.GetUser)
	router.PATCH("/users/:userId", handler.UpdateUser)
	router.DELETE("/users/:userId", handler.DeleteUser)
	return router
}

func TestUsersHandler_CreateUser(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID()

	svc.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "ada" && u.Age == 36 && u.ID.IsZero()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = id
	}).Return(nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPost, "/users",
		dto.CreateUserRequest{Name: "ada", Age: 36, Blog: "https://ada.dev"}, nil)

	testutils.AssertStatusCode(t, http.StatusCreated, w)

	var response dto.CreateUserResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, id.Hex(), response.ID)

	svc.AssertExpectations(t)
}

func TestUsersHandler_CreateUser_InvalidBody(t *testing.T) {
	svc := &mocks.MockUsersService{}

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPost, "/users", `{"age": 3}`, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, errors.ErrCodeValidation, response.Code)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUsersHandler_CreateUser_ServiceValidation(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("Create", mock.Anything, mock.Anything).
		Return(errors.NewValidationError("invalid user", "age failed on lte"))

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPost, "/users",
		dto.CreateUserRequest{Name: "old", Age: 400}, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestUsersHandler_GetUser(t *testing.T) {
	svc := &mocks.MockUsersService{}
	user := testutils.NewUser("grace", 45)
	svc.On("Get", mock.Anything, user.ID.Hex()).Return(user, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users/"+user.ID.Hex(), nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.UserResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, user.ID.Hex(), response.ID)
	assert.Equal(t, "grace", response.Name)
	assert.Equal(t, 45, response.Age)
	assert.Equal(t, "Berlin", response.Location)
}

func TestUsersHandler_GetUser_NotFound(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()
	svc.On("Get", mock.Anything, id).Return(nil, errors.NewNotFoundError("user", id))

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users/"+id, nil, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, errors.ErrCodeNotFound, response.Code)
	assert.Equal(t, id, response.Details)
}

func TestUsersHandler_GetUser_MalformedID(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("Get", mock.Anything, "nope").Return(nil, errors.NewValidationError("invalid user id", "nope"))

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users/nope", nil, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestUsersHandler_GetUser_InternalError(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()
	svc.On("Get", mock.Anything, id).Return(nil, assert.AnError)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users/"+id, nil, nil)

	testutils.AssertStatusCode(t, http.StatusInternalServerError, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, errors.ErrCodeInternal, response.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestUsersHandler_ListUsers_Paged(t *testing.T) {
	svc := &mocks.MockUsersService{}
	page := []*models.User{testutils.NewUser("a", 1), testutils.NewUser("b", 2)}
	svc.On("List", mock.Anything, &users.ListOptions{Offset: 2, Limit: 2}).
		Return(&users.ListResult{Users: page, Total: 5, Offset: 2, Limit: 2}, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users?offset=2&limit=2", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ListUsersResponse
	testutils.ParseJSONResponse(t, w, &response)
	require.Len(t, response.Users, 2)
	assert.Equal(t, int64(5), response.Total)
	assert.Equal(t, int64(2), response.Offset)
	assert.Equal(t, int64(2), response.Limit)
	assert.Equal(t, "a", response.Users[0].Name)
}

func TestUsersHandler_ListUsers_OffsetOnly(t *testing.T) {
	svc := &mocks.MockUsersService{}
	rest := []*models.User{testutils.NewUser("c", 3), testutils.NewUser("d", 4), testutils.NewUser("e", 5)}
	svc.On("List", mock.Anything, &users.ListOptions{Offset: 2}).
		Return(&users.ListResult{Users: rest, Total: 5, Offset: 2, Limit: users.DefaultPageSize}, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users?offset=2", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ListUsersResponse
	testutils.ParseJSONResponse(t, w, &response)
	require.Len(t, response.Users, 3)
	assert.Equal(t, "c", response.Users[0].Name)
	assert.Equal(t, int64(5), response.Total)
	assert.Equal(t, users.DefaultPageSize, response.Limit)
}

func TestUsersHandler_ListUsers_ByField(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("List", mock.Anything, &users.ListOptions{Field: "age", Value: "30"}).
		Return(&users.ListResult{Users: []*models.User{testutils.NewUser("c", 30)}, Total: 1}, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users?field=age&value=30", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.ListUsersResponse
	testutils.ParseJSONResponse(t, w, &response)
	require.Len(t, response.Users, 1)
	assert.Equal(t, 30, response.Users[0].Age)
}

func TestUsersHandler_ListUsers_EmptyIsArray(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("List", mock.Anything, &users.ListOptions{}).
		Return(&users.ListResult{Users: []*models.User{}}, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), `"users":[]`)
}

func TestUsersHandler_ListUsers_InvalidQuery(t *testing.T) {
	svc := &mocks.MockUsersService{}

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users?limit=-1", nil, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUsersHandler_UpdateUser(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()
	svc.On("UpdateField", mock.Anything, id, "location", "Lisbon").Return(true, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPatch, "/users/"+id,
		dto.UpdateFieldRequest{Field: "location", Value: "Lisbon"}, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.UpdateFieldResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.True(t, response.Modified)
}

func TestUsersHandler_UpdateUser_UnknownField(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPatch, "/users/"+id,
		dto.UpdateFieldRequest{Field: "email", Value: "x@example.com"}, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
	svc.AssertNotCalled(t, "UpdateField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUsersHandler_UpdateUser_NotFound(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()
	svc.On("UpdateField", mock.Anything, id, "age", "40").Return(false, errors.NewNotFoundError("user", id))

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPatch, "/users/"+id,
		dto.UpdateFieldRequest{Field: "age", Value: "40"}, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)
}

func TestUsersHandler_DeleteUser(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodDelete, "/users/"+id, nil, nil)

	testutils.AssertStatusCode(t, http.StatusNoContent, w)
	assert.Empty(t, w.Body.String())
}

func TestUsersHandler_DeleteUser_NotFound(t *testing.T) {
	svc := &mocks.MockUsersService{}
	id := primitive.NewObjectID().Hex()
	svc.On("Delete", mock.Anything, id).Return(errors.NewNotFoundError("user", id))

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodDelete, "/users/"+id, nil, nil)

	testutils.AssertStatusCode(t, http.StatusNotFound, w)
}

func TestUsersHandler_DeleteAllUsers(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("DeleteAll", mock.Anything).Return(int64(7), nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodDelete, "/users", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.DeleteUsersResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, int64(7), response.DeletedCount)
}

func TestUsersHandler_GetUserByName(t *testing.T) {
	svc := &mocks.MockUsersService{}
	user := testutils.NewUser("linus", 50)
	svc.On("GetByName", mock.Anything, "linus").Return(user, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodGet, "/users/by-name/linus", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.UserResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, user.ID.Hex(), response.ID)
}

func TestUsersHandler_UpdateUserByName(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("UpdateFieldByName", mock.Anything, "linus", "blog", "https://lwn.net").Return(false, nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPatch, "/users/by-name/linus",
		dto.UpdateFieldRequest{Field: "blog", Value: "https://lwn.net"}, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response dto.UpdateFieldResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.False(t, response.Modified)
}

func TestUsersHandler_CreateIndex(t *testing.T) {
	svc := &mocks.MockUsersService{}
	svc.On("CreateIndex", mock.Anything, "name").Return("name_1", nil)

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPost, "/users/indexes",
		dto.CreateIndexRequest{Field: "name"}, nil)

	testutils.AssertStatusCode(t, http.StatusCreated, w)

	var response dto.CreateIndexResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "name_1", response.Name)
}

func TestUsersHandler_CreateIndex_MissingField(t *testing.T) {
	svc := &mocks.MockUsersService{}

	w := testutils.PerformRequest(setupUsersRouter(svc), http.MethodPost, "/users/indexes", `{}`, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
}
