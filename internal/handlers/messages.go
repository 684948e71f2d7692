package handlers

import (
	"context"

	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/thread"
)

type MessageHandler struct {
	threads      *thread.Store
	materializer *thread.Materializer
}

func NewMessageHandler(threads *thread.Store, materializer *thread.Materializer) *MessageHandler {
	return &MessageHandler{threads: threads, materializer: materializer}
}

type MessageBody struct {
	ID              uint   `json:"id"`
	Booking         uint   `json:"booking"`
	ParentMessageID *uint  `json:"parent_message_id"`
	Sender          string `json:"sender"`
	Content         string `json:"content"`
	Timestamp       string `json:"timestamp" format:"date-time"`
}

func messageBody(m *models.Message) MessageBody {
	return MessageBody{
		ID:              m.ID,
		Booking:         m.BookingID,
		ParentMessageID: m.ParentMessageID,
		Sender:          m.Sender,
		Content:         m.Content,
		Timestamp:       m.Timestamp.UTC().Format("2006-01-02T15:04:05.999999Z07:00"),
	}
}

type MessageResponse struct {
	Body MessageBody
}

type PostMessageRequest struct {
	BookingID uint `path:"id"`
	Body      struct {
		Sender          string `json:"sender" doc:"Free-text sender identity" required:"true" maxLength:"100"`
		Content         string `json:"content" doc:"Message text" required:"true"`
		ParentMessageID *uint  `json:"parent_message_id,omitempty" doc:"Message being replied to"`
	}
}

func (h *MessageHandler) HandlePost(ctx context.Context, input *PostMessageRequest) (*MessageResponse, error) {
	m, err := h.threads.Post(ctx, input.BookingID, input.Body.Sender, input.Body.Content, input.Body.ParentMessageID)
	if err != nil {
		return nil, apiError(err)
	}
	return &MessageResponse{Body: messageBody(m)}, nil
}

type ThreadRequest struct {
	BookingID uint `path:"id"`
}

type ThreadResponse struct {
	Body struct {
		Depth    int            `json:"depth" doc:"Deepest reply level present"`
		Messages []*thread.Node `json:"messages"`
	}
}

func (h *MessageHandler) HandleThread(ctx context.Context, input *ThreadRequest) (*ThreadResponse, error) {
	_, t, err := h.materializer.Materialize(ctx, input.BookingID)
	if err != nil {
		return nil, apiError(err)
	}
	res := &ThreadResponse{}
	res.Body.Depth = t.Depth
	res.Body.Messages = t.Roots
	return res, nil
}

type AttachMessageRequest struct {
	ID   uint `path:"id"`
	Body struct {
		ParentMessageID *uint `json:"parent_message_id,omitempty" doc:"New parent; omit or null to make the message a root"`
	}
}

func (h *MessageHandler) HandleAttach(ctx context.Context, input *AttachMessageRequest) (*MessageResponse, error) {
	m, err := h.threads.Attach(ctx, input.ID, input.Body.ParentMessageID)
	if err != nil {
		return nil, apiError(err)
	}
	return &MessageResponse{Body: messageBody(m)}, nil
}

type MessageIDInput struct {
	ID uint `path:"id"`
}

type DeleteMessageResponse struct {
	Body struct {
		Removed int `json:"removed" doc:"Messages removed, replies included"`
	}
}

func (h *MessageHandler) HandleDelete(ctx context.Context, input *MessageIDInput) (*DeleteMessageResponse, error) {
	n, err := h.threads.Delete(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	res := &DeleteMessageResponse{}
	res.Body.Removed = n
	return res, nil
}
