// Package server exposes the chat and contact use cases over plain HTTP for
// running outside Lambda.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rogerjeasy/bav-roger/internal/provider"
	"github.com/rogerjeasy/bav-roger/internal/usecase"
)

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

// Server wires the router and handler dependencies.
type Server struct {
	router  chi.Router
	chat    ChatUseCase
	contact ContactUseCase
}

// New creates a Server with routes and middleware installed.
func New(chat ChatUseCase, contact ContactUseCase) (*Server, error) {
	if chat == nil {
		return nil, errors.New("server: chat use case must not be nil")
	}
	if contact == nil {
		return nil, errors.New("server: contact use case must not be nil")
	}
	s := &Server{chat: chat, contact: contact}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/api/models", s.handleModels)
	r.Post("/api/chat", s.handleChat)
	r.Post("/api/contact", s.handleContact)

	s.router = r
}

// ServeHTTP makes Server satisfy http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleModels serves the static model table the widget populates its
// selector from.
func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, provider.Models())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput)})
		return
	}

	out, err := s.chat.Chat(r.Context(), usecase.ChatInput{Content: req.Content, ModelID: req.ModelID})
	if err != nil {
		code := errorCode(err)
		slog.Error("chat request failed", "err", err)
		if code == usecase.ErrorInvalidInput {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: string(code)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: string(code)})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Message: out.Message})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal)})
		return
	}

	out, err := s.contact.Submit(r.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		// Validation and persistence failures share one 500 on this route.
		slog.Error("contact submission failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: string(errorCode(err))})
		return
	}

	writeJSON(w, http.StatusCreated, contactResponse{ID: out.ID})
}

func errorCode(err error) usecase.ErrorCode {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		return ucErr.Code
	}
	return usecase.ErrorInternal
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}
