package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/store"
	"github.com/amterp/boardkit/testutil"
)

// testAPI provides a complete test environment for API handler tests.
type testAPI struct {
	svc *testutil.Services
	mux *http.ServeMux
}

// setupTestAPI creates a test environment with services over an in-memory store.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	svc := testutil.NewServices(t)
	handler := NewHandler(svc.Boards, svc.Lists, svc.Cards)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &testAPI{svc: svc, mux: mux}
}

// seed stores Groceries > [Produce > [Apples], Dairy].
func (api *testAPI) seed(t *testing.T) {
	t.Helper()
	testutil.Seed(t, api.svc.Store, model.NewCollection().WithBoards([]model.Board{
		testutil.Board("b1", "Groceries",
			testutil.List("l1", "Produce", testutil.Card("c1", "Apples")),
			testutil.List("l2", "Dairy"),
		),
	}))
}

// request makes an HTTP request to the test server.
func (api *testAPI) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.mux.ServeHTTP(w, req)
	return w
}

// decodeJSON decodes a JSON response body.
func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

// ============================================================================
// Board Handlers
// ============================================================================

func TestListBoards_Empty(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("GET", "/api/v1/boards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"boards":[]}`, w.Body.String())
}

func TestCreateBoard(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/boards", TitleRequest{Title: "Groceries"})
	require.Equal(t, http.StatusCreated, w.Code)

	board := decodeJSON[model.Board](t, w)
	assert.Equal(t, "Groceries", board.Title)
	assert.NotEmpty(t, board.ID)
	assert.NotNil(t, board.Lists)

	w = api.request("GET", "/api/v1/boards", nil)
	resp := decodeJSON[struct{ Boards []model.Board }](t, w)
	assert.Equal(t, []model.Board{board}, resp.Boards)
}

func TestCreateBoard_BlankTitle(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request("POST", "/api/v1/boards", TitleRequest{Title: "  "})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, api.svc.Store.Writes())
}

func TestCreateBoard_InvalidJSON(t *testing.T) {
	api := setupTestAPI(t)

	req := httptest.NewRequest("POST", "/api/v1/boards", bytes.NewBufferString("{nope"))
	w := httptest.NewRecorder()
	api.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeJSON[ErrorResponse](t, w).Code)
}

func TestGetBoard(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("GET", "/api/v1/boards/b1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decodeJSON[model.Board](t, w)
	assert.Len(t, board.Lists, 2)

	w = api.request("GET", "/api/v1/boards/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeJSON[ErrorResponse](t, w).Code)
}

func TestRenameBoard(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("PATCH", "/api/v1/boards/b1", TitleRequest{Title: "Shopping"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shopping", decodeJSON[model.Board](t, w).Title)
}

func TestDeleteBoard_Idempotent(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("DELETE", "/api/v1/boards/b1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.request("DELETE", "/api/v1/boards/b1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.request("GET", "/api/v1/boards", nil)
	assert.JSONEq(t, `{"boards":[]}`, w.Body.String())
}

// ============================================================================
// List Handlers
// ============================================================================

func TestCreateList(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("POST", "/api/v1/boards/b1/lists", TitleRequest{Title: "Bakery"})
	require.Equal(t, http.StatusOK, w.Code)

	board := decodeJSON[model.Board](t, w)
	require.Len(t, board.Lists, 3)
	assert.Equal(t, "Bakery", board.Lists[2].Title)

	w = api.request("POST", "/api/v1/boards/missing/lists", TitleRequest{Title: "Bakery"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceList(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	replacement := testutil.List("l1", "Fruit", testutil.Card("c9", "Plums"))
	w := api.request("PUT", "/api/v1/boards/b1/lists/l1", replacement)
	require.Equal(t, http.StatusOK, w.Code)

	board := decodeJSON[model.Board](t, w)
	assert.Equal(t, replacement, board.Lists[0])
}

func TestReplaceList_MatchesGet(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("PUT", "/api/v1/boards/b1/lists/l1", map[string]any{"id": "l1", "title": "Fruit"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cards":[]`)
	put := decodeJSON[model.Board](t, w)

	w = api.request("GET", "/api/v1/boards/b1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, decodeJSON[model.Board](t, w), put)
}

func TestReplaceList_BlankTitle(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("PUT", "/api/v1/boards/b1/lists/l1", map[string]any{"id": "l1", "title": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decodeJSON[ErrorResponse](t, w).Code)
}

func TestReplaceList_IDMismatch(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("PUT", "/api/v1/boards/b1/lists/l1", testutil.List("other", "Fruit"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input", decodeJSON[ErrorResponse](t, w).Code)
}

func TestRenameList(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("PATCH", "/api/v1/boards/b1/lists/l2", TitleRequest{Title: "Milk & Eggs"})
	require.Equal(t, http.StatusOK, w.Code)

	board := decodeJSON[model.Board](t, w)
	assert.Equal(t, "Milk & Eggs", board.Lists[1].Title)
}

func TestDeleteList(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("DELETE", "/api/v1/boards/b1/lists/l1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	board := decodeJSON[model.Board](t, w)
	require.Len(t, board.Lists, 1)
	assert.Equal(t, "l2", board.Lists[0].ID)
}

// ============================================================================
// Card Handlers
// ============================================================================

func TestCreateCard(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("POST", "/api/v1/boards/b1/lists/l1/cards", TitleRequest{Title: "Pears"})
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSON[model.List](t, w)
	require.Len(t, list.Cards, 2)
	assert.Equal(t, "Apples", list.Cards[0].Title)
	assert.Equal(t, "Pears", list.Cards[1].Title)

	w = api.request("POST", "/api/v1/boards/b1/lists/missing/cards", TitleRequest{Title: "Pears"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenameCard(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("PATCH", "/api/v1/boards/b1/lists/l1/cards/c1", TitleRequest{Title: "Green apples"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Green apples", decodeJSON[model.List](t, w).Cards[0].Title)

	w = api.request("PATCH", "/api/v1/boards/b1/lists/l1/cards/missing", TitleRequest{Title: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCard(t *testing.T) {
	api := setupTestAPI(t)
	api.seed(t)

	w := api.request("DELETE", "/api/v1/boards/b1/lists/l1/cards/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeJSON[model.List](t, w).Cards)

	// Deleting again is a no-op
	w = api.request("DELETE", "/api/v1/boards/b1/lists/l1/cards/c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Error mapping
// ============================================================================

func TestCorruptDataReturns500(t *testing.T) {
	api := setupTestAPI(t)
	require.NoError(t, api.svc.Store.Write(t.Context(), store.CollectionKey, []byte("not json")))

	w := api.request("GET", "/api/v1/boards", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "corrupt_data", decodeJSON[ErrorResponse](t, w).Code)
}

func TestStoreFailureReturns503(t *testing.T) {
	api := setupTestAPI(t)
	api.svc.Store.FailWrites(true)

	w := api.request("POST", "/api/v1/boards", TitleRequest{Title: "Groceries"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "store_unavailable", decodeJSON[ErrorResponse](t, w).Code)
}
