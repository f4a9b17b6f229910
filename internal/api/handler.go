package api

import (
	"encoding/json"
	"net/http"

	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/service"
)

// Handler contains all HTTP handlers for the API.
//
// Handlers are thin: they decode the request, call one service operation
// and render whatever value it returns. Ordering and consistency are the
// services' job.
type Handler struct {
	boards *service.BoardService
	lists  *service.ListService
	cards  *service.CardService
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(boards *service.BoardService, lists *service.ListService, cards *service.CardService) *Handler {
	return &Handler{
		boards: boards,
		lists:  lists,
		cards:  cards,
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Board routes
	mux.HandleFunc("GET /api/v1/boards", h.ListBoards)
	mux.HandleFunc("POST /api/v1/boards", h.CreateBoard)
	mux.HandleFunc("GET /api/v1/boards/{board}", h.GetBoard)
	mux.HandleFunc("PATCH /api/v1/boards/{board}", h.RenameBoard)
	mux.HandleFunc("DELETE /api/v1/boards/{board}", h.DeleteBoard)

	// List routes
	mux.HandleFunc("POST /api/v1/boards/{board}/lists", h.CreateList)
	mux.HandleFunc("PUT /api/v1/boards/{board}/lists/{list}", h.ReplaceList)
	mux.HandleFunc("PATCH /api/v1/boards/{board}/lists/{list}", h.RenameList)
	mux.HandleFunc("DELETE /api/v1/boards/{board}/lists/{list}", h.DeleteList)

	// Card routes
	mux.HandleFunc("POST /api/v1/boards/{board}/lists/{list}/cards", h.CreateCard)
	mux.HandleFunc("PATCH /api/v1/boards/{board}/lists/{list}/cards/{card}", h.RenameCard)
	mux.HandleFunc("DELETE /api/v1/boards/{board}/lists/{list}/cards/{card}", h.DeleteCard)
}

// TitleRequest is the body for every create and rename request.
type TitleRequest struct {
	Title string `json:"title"`
}

func decodeTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid JSON: "+err.Error())
		return "", false
	}
	return req.Title, true
}

// --- Board Handlers ---

// ListBoards returns every board with its lists and cards.
func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.List(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"boards": boards})
}

// CreateBoard adds a board. A blank title creates nothing and returns 204.
func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	board, err := h.boards.Add(r.Context(), title)
	if err != nil {
		Error(w, err)
		return
	}
	if board == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	JSON(w, http.StatusCreated, board)
}

// GetBoard returns a single board.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.boards.Get(r.Context(), r.PathValue("board"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, board)
}

// RenameBoard changes a board's title.
func (h *Handler) RenameBoard(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	board, err := h.boards.Rename(r.Context(), r.PathValue("board"), title)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, board)
}

// DeleteBoard removes a board. Unknown boards are not an error.
func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.boards.Remove(r.Context(), r.PathValue("board")); err != nil {
		Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- List Handlers ---

// CreateList adds a list and returns the updated board.
func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	board, err := h.lists.AddList(r.Context(), r.PathValue("board"), title)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, board)
}

// ReplaceList overwrites a list with the request body.
func (h *Handler) ReplaceList(w http.ResponseWriter, r *http.Request) {
	var list model.List
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		BadRequest(w, "Invalid JSON: "+err.Error())
		return
	}

	board, err := h.lists.UpdateList(r.Context(), r.PathValue("board"), r.PathValue("list"), list)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, board)
}

// RenameList changes a list's title.
func (h *Handler) RenameList(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	board, err := h.lists.RenameList(r.Context(), r.PathValue("board"), r.PathValue("list"), title)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, board)
}

// DeleteList removes a list and its cards and returns the updated board.
func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	board, err := h.lists.DeleteList(r.Context(), r.PathValue("board"), r.PathValue("list"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, board)
}

// --- Card Handlers ---

// CreateCard adds a card and returns the updated list.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	list, err := h.cards.AddCardTo(r.Context(), r.PathValue("board"), r.PathValue("list"), title)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, list)
}

// RenameCard changes a card's title and returns the updated list.
func (h *Handler) RenameCard(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	list, err := h.cards.RenameCardIn(r.Context(), r.PathValue("board"), r.PathValue("list"), r.PathValue("card"), title)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, list)
}

// DeleteCard removes a card and returns the updated list.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	list, err := h.cards.DeleteCardFrom(r.Context(), r.PathValue("board"), r.PathValue("list"), r.PathValue("card"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, list)
}
