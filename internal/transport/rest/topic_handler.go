package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/internal/service/forum"
)

type forumService interface {
	CreateTopic(ctx context.Context, input forum.CreateTopicInput) (*domain.Topic, error)
	GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	ListTopics(ctx context.Context, filter domain.TopicFilter) (*domain.TopicPage, error)
	UpdateTopic(ctx context.Context, input forum.UpdateTopicInput) (*domain.Topic, error)
	DeleteTopic(ctx context.Context, topicID uuid.UUID) error
	ModerateTopic(ctx context.Context, input forum.ModerateTopicInput) (*domain.Topic, error)
	SetPinned(ctx context.Context, topicID uuid.UUID, pinned bool) error
	SetLocked(ctx context.Context, topicID uuid.UUID, locked bool) error
}

type viewRecorder interface {
	RecordView(ctx context.Context, topicID uuid.UUID) error
}

// TopicHandler serves topic endpoints.
type TopicHandler struct {
	topics forumService
	views  viewRecorder
	log    *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(log *slog.Logger, topics forumService, views viewRecorder) *TopicHandler {
	return &TopicHandler{topics: topics, views: views, log: log}
}

type createTopicRequest struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Tags        []string        `json:"tags"`
	Priority    string          `json:"priority"`
	Attachments []attachmentDTO `json:"attachments"`
}

func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	created, err := h.topics.CreateTopic(r.Context(), forum.CreateTopicInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		Priority:    domain.TopicPriority(req.Priority),
		Attachments: fromAttachmentDTOs(req.Attachments),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTopicDTO(created))
}

// Get returns a topic and records a view. The view bump is best-effort;
// a failed increment never fails the read.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	topic, err := h.topics.GetTopic(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.views.RecordView(r.Context(), id); err != nil {
		h.log.WarnContext(r.Context(), "record view failed",
			slog.String("topic_id", id.String()),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, http.StatusOK, toTopicDTO(topic))
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.TopicFilter{
		SortBy:   domain.TopicSort(r.URL.Query().Get("sort")),
		PageSize: queryInt(r, "page_size"),
		Cursor:   queryCursor(r),
	}

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, h.log, domain.NewValidationError("category_id", "must be a UUID"))
			return
		}
		filter.CategoryID = &id
	}
	if raw := r.URL.Query().Get("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, h.log, domain.NewValidationError("author_id", "must be a UUID"))
			return
		}
		filter.AuthorID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TopicStatus(raw)
		if !status.IsValid() {
			writeError(w, h.log, domain.NewValidationError("status", "invalid"))
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("pinned"); raw != "" {
		pinned := queryBool(r, "pinned")
		filter.IsPinned = &pinned
	}

	page, err := h.topics.ListTopics(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicPageDTO(page))
}

type updateTopicRequest struct {
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	Tags        []string        `json:"tags"`
	Priority    *string         `json:"priority"`
	Attachments []attachmentDTO `json:"attachments"`
}

func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req updateTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	input := forum.UpdateTopicInput{
		TopicID: id,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if req.Priority != nil {
		p := domain.TopicPriority(*req.Priority)
		input.Priority = &p
	}
	if req.Attachments != nil {
		input.Attachments = fromAttachmentDTOs(req.Attachments)
	}

	updated, err := h.topics.UpdateTopic(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicDTO(updated))
}

func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.topics.DeleteTopic(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type moderateTopicRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason"`
}

func (h *TopicHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req moderateTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	moderated, err := h.topics.ModerateTopic(r.Context(), forum.ModerateTopicInput{
		TopicID: id,
		Status:  domain.TopicStatus(req.Status),
		Reason:  req.Reason,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicDTO(moderated))
}

type flagRequest struct {
	Value bool `json:"value"`
}

func (h *TopicHandler) Pin(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.topics.SetPinned)
}

func (h *TopicHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.topics.SetLocked)
}

func (h *TopicHandler) setFlag(
	w http.ResponseWriter,
	r *http.Request,
	set func(ctx context.Context, topicID uuid.UUID, value bool) error,
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req flagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := set(r.Context(), id, req.Value); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
