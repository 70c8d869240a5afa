package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
	"github.com/heartmarshall/community-forum-backend/internal/service/reply"
)

type replyService interface {
	CreateReply(ctx context.Context, input reply.CreateReplyInput) (*domain.Reply, error)
	GetReply(ctx context.Context, replyID uuid.UUID) (*domain.Reply, error)
	ListReplies(ctx context.Context, topicID uuid.UUID, pageSize int, cursor *string) (*domain.ReplyPage, error)
	EditReply(ctx context.Context, input reply.EditReplyInput) (*domain.Reply, error)
	ModerateReply(ctx context.Context, input reply.ModerateReplyInput) (*domain.Reply, error)
	SetAcceptedAnswer(ctx context.Context, replyID uuid.UUID, accepted bool) (*domain.Reply, error)
	DeleteReply(ctx context.Context, replyID uuid.UUID) error
}

// ReplyHandler serves reply endpoints.
type ReplyHandler struct {
	replies replyService
	log     *slog.Logger
}

// NewReplyHandler creates a ReplyHandler.
func NewReplyHandler(log *slog.Logger, replies replyService) *ReplyHandler {
	return &ReplyHandler{replies: replies, log: log}
}

type createReplyRequest struct {
	ParentReplyID *uuid.UUID      `json:"parent_reply_id"`
	Content       string          `json:"content"`
	Attachments   []attachmentDTO `json:"attachments"`
}

func (h *ReplyHandler) Create(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req createReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	created, err := h.replies.CreateReply(r.Context(), reply.CreateReplyInput{
		TopicID:       topicID,
		ParentReplyID: req.ParentReplyID,
		Content:       req.Content,
		Attachments:   fromAttachmentDTOs(req.Attachments),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReplyDTO(created))
}

func (h *ReplyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	rep, err := h.replies.GetReply(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReplyDTO(rep))
}

func (h *ReplyHandler) ListByTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	page, err := h.replies.ListReplies(r.Context(), topicID, queryInt(r, "page_size"), queryCursor(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReplyPageDTO(page))
}

type editReplyRequest struct {
	Content string `json:"content"`
}

func (h *ReplyHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req editReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	edited, err := h.replies.EditReply(r.Context(), reply.EditReplyInput{
		ReplyID: id,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReplyDTO(edited))
}

type moderateReplyRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason"`
}

func (h *ReplyHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req moderateReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	moderated, err := h.replies.ModerateReply(r.Context(), reply.ModerateReplyInput{
		ReplyID: id,
		Status:  domain.ReplyStatus(req.Status),
		Reason:  req.Reason,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReplyDTO(moderated))
}

type acceptAnswerRequest struct {
	Accepted bool `json:"accepted"`
}

func (h *ReplyHandler) AcceptAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req acceptAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	updated, err := h.replies.SetAcceptedAnswer(r.Context(), id, req.Accepted)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReplyDTO(updated))
}

func (h *ReplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.replies.DeleteReply(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
