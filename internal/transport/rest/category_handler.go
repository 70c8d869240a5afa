package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/internal/service/category"
)

type categoryService interface {
	CreateCategory(ctx context.Context, input category.CreateCategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, input category.UpdateCategoryInput) (*domain.Category, error)
	DeactivateCategory(ctx context.Context, categoryID uuid.UUID) (*domain.Category, error)
}

// CategoryHandler serves category endpoints.
type CategoryHandler struct {
	categories categoryService
	log        *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(log *slog.Logger, categories categoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

type createCategoryRequest struct {
	Name             string      `json:"name"`
	Description      *string     `json:"description"`
	Icon             *string     `json:"icon"`
	Color            *string     `json:"color"`
	Slug             string      `json:"slug"`
	ParentID         *uuid.UUID  `json:"parent_id"`
	RequiresApproval bool        `json:"requires_approval"`
	AllowedRoles     []string    `json:"allowed_roles"`
	Moderators       []uuid.UUID `json:"moderators"`
	DisplayOrder     int         `json:"display_order"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	created, err := h.categories.CreateCategory(r.Context(), category.CreateCategoryInput{
		Name:             req.Name,
		Description:      req.Description,
		Icon:             req.Icon,
		Color:            req.Color,
		Slug:             req.Slug,
		ParentID:         req.ParentID,
		RequiresApproval: req.RequiresApproval,
		AllowedRoles:     req.AllowedRoles,
		Moderators:       req.Moderators,
		DisplayOrder:     req.DisplayOrder,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryDTO(created))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	c, err := h.categories.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryDTO(c))
}

func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.categories.GetCategoryBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryDTO(c))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context(), queryBool(r, "include_inactive"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateCategoryRequest struct {
	Name             *string     `json:"name"`
	Description      *string     `json:"description"`
	Icon             *string     `json:"icon"`
	Color            *string     `json:"color"`
	IsActive         *bool       `json:"is_active"`
	RequiresApproval *bool       `json:"requires_approval"`
	AllowedRoles     []string    `json:"allowed_roles"`
	Moderators       []uuid.UUID `json:"moderators"`
	DisplayOrder     *int        `json:"display_order"`
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	updated, err := h.categories.UpdateCategory(r.Context(), category.UpdateCategoryInput{
		CategoryID:       id,
		Name:             req.Name,
		Description:      req.Description,
		Icon:             req.Icon,
		Color:            req.Color,
		IsActive:         req.IsActive,
		RequiresApproval: req.RequiresApproval,
		AllowedRoles:     req.AllowedRoles,
		Moderators:       req.Moderators,
		DisplayOrder:     req.DisplayOrder,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryDTO(updated))
}

func (h *CategoryHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	deactivated, err := h.categories.DeactivateCategory(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryDTO(deactivated))
}
