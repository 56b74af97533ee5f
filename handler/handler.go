// Package handler adapts API Gateway proxy events to the chat and contact
// use cases.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/rogerjeasy/bav-roger/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// ChatUseCase handles one chat turn.
type ChatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

// ContactUseCase handles one contact-form submission.
type ContactUseCase interface {
	Submit(ctx context.Context, in usecase.ContactInput) (usecase.ContactOutput, error)
}

type chatRequest struct {
	Content string `json:"content"`
	ModelID string `json:"modelId"`
}

type chatResponse struct {
	Message string `json:"message"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler routes proxy events to the two API endpoints.
type Handler struct {
	chat    ChatUseCase
	contact ContactUseCase
}

func NewHandler(chat ChatUseCase, contact ContactUseCase) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	if contact == nil {
		return nil, errors.New("handler: contact use case must not be nil")
	}
	return &Handler{chat: chat, contact: contact}, nil
}

// Handle dispatches on method and path. All failures are converted to a JSON
// error body here; nothing escalates past this boundary.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)

	if event.HTTPMethod != http.MethodPost {
		return respond(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"}, corrID), nil
	}

	switch event.Path {
	case "/api/chat":
		return h.handleChat(ctx, event, corrID), nil
	case "/api/contact":
		return h.handleContact(ctx, event, corrID), nil
	default:
		return respond(http.StatusNotFound, errorResponse{Error: "not found"}, corrID), nil
	}
}

func (h *Handler) handleChat(ctx context.Context, event events.APIGatewayProxyRequest, corrID string) events.APIGatewayProxyResponse {
	var req chatRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return respond(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput)}, corrID)
	}

	out, err := h.chat.Chat(ctx, usecase.ChatInput{Content: req.Content, ModelID: req.ModelID})
	if err != nil {
		code := errorCode(err)
		slog.Error("chat request failed", "err", err, "correlationId", corrID)
		if code == usecase.ErrorInvalidInput {
			return respond(http.StatusBadRequest, errorResponse{Error: string(code)}, corrID)
		}
		// Invalid model, provider and persistence failures all collapse to a
		// single generic 500.
		return respond(http.StatusInternalServerError, errorResponse{Error: string(code)}, corrID)
	}

	return respond(http.StatusOK, chatResponse{Message: out.Message}, corrID)
}

func (h *Handler) handleContact(ctx context.Context, event events.APIGatewayProxyRequest, corrID string) events.APIGatewayProxyResponse {
	var req contactRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return respond(http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal)}, corrID)
	}

	out, err := h.contact.Submit(ctx, usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		// Validation and persistence failures share one 500 on this route.
		slog.Error("contact submission failed", "err", err, "correlationId", corrID)
		return respond(http.StatusInternalServerError, errorResponse{Error: string(errorCode(err))}, corrID)
	}

	return respond(http.StatusCreated, contactResponse{ID: out.ID}, corrID)
}

func errorCode(err error) usecase.ErrorCode {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		return ucErr.Code
	}
	return usecase.ErrorInternal
}

func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func respond(status int, body any, corrID string) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		raw = []byte(`{"error":"INTERNAL_ERROR"}`)
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(raw),
	}
}
