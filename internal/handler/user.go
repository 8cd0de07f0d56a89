package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/SpotTheSpy/backend/internal/errors"
	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/repository"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{userID}", h.GetByID)
	r.Get("/by_external/{externalID}", h.GetByExternalID)

	return r
}

type createUserRequest struct {
	ExternalID int64   `json:"external_id"`
	FirstName  string  `json:"first_name"`
	Username   *string `json:"username,omitempty"`
	Locale     *string `json:"locale,omitempty"`
}

// POST /v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.ExternalID == 0 {
		writeError(w, apperrors.MissingRequired("external_id"))
		return
	}
	if req.FirstName == "" {
		writeError(w, apperrors.MissingRequired("first_name"))
		return
	}

	existing, err := h.userRepo.FindByExternalID(r.Context(), req.ExternalID)
	if err != nil {
		writeError(w, apperrors.Database(err))
		return
	}
	if existing != nil {
		writeError(w, apperrors.AlreadyExists("User"))
		return
	}

	user, err := h.userRepo.Create(r.Context(), model.CreateUserParams{
		ExternalID: req.ExternalID,
		FirstName:  req.FirstName,
		Username:   req.Username,
		Locale:     req.Locale,
	})
	if err != nil {
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// GET /v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination := ParsePagination(r)

	users, err := h.userRepo.FindAll(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		writeError(w, apperrors.Database(err))
		return
	}
	if users == nil {
		users = []model.User{}
	}

	writeJSON(w, http.StatusOK, paginated(users, pagination))
}

// GET /v1/users/{userID}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, apperrors.Database(err))
		return
	}
	if user == nil {
		writeError(w, apperrors.NotFound("User"))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GET /v1/users/by_external/{externalID}
func (h *UserHandler) GetByExternalID(w http.ResponseWriter, r *http.Request) {
	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		writeError(w, apperrors.InvalidInput("externalID", "must be an integer"))
		return
	}

	user, err := h.userRepo.FindByExternalID(r.Context(), externalID)
	if err != nil {
		writeError(w, apperrors.Database(err))
		return
	}
	if user == nil {
		writeError(w, apperrors.NotFound("User"))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
