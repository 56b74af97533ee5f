// Command chat is a terminal client for the portfolio chat API. It keeps the
// same transcript semantics as the site widget: optimistic user append,
// assistant append on success, silent drop on failure, and a local system
// message when the model is switched with "/model <id>".
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/rogerjeasy/bav-roger/internal/domain"
	"github.com/rogerjeasy/bav-roger/internal/provider"
	"github.com/rogerjeasy/bav-roger/internal/transcript"
)

const defaultModel = provider.ModelGPT4

type chatRequest struct {
	Content string `json:"content"`
	ModelID string `json:"modelId"`
}

type chatResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// apiSender posts user messages to a running portfolio backend.
type apiSender struct {
	baseURL    string
	httpClient *http.Client
}

func (s *apiSender) Send(ctx context.Context, content, modelID string) (string, error) {
	body, err := json.Marshal(chatRequest{Content: content, ModelID: modelID})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = res.Body.Close() }()

	var payload chatResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed with status %d: %s", res.StatusCode, payload.Error)
	}
	return payload.Message, nil
}

func main() {
	baseURL := os.Getenv("CHAT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sender := &apiSender{baseURL: strings.TrimRight(baseURL, "/"), httpClient: &http.Client{}}
	t, err := transcript.New(sender, defaultModel, slog.Default())
	if err != nil {
		slog.Error("failed to create transcript", "err", err)
		os.Exit(1)
	}

	fmt.Println("Chat with Roger. /model <id> switches models, /quit exits.")
	printModels()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", t.Model())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/models":
			printModels()
			continue
		case strings.HasPrefix(line, "/model "):
			id := strings.TrimSpace(strings.TrimPrefix(line, "/model "))
			if err := t.SwitchModel(id); err != nil {
				fmt.Println(err)
				continue
			}
		default:
			before := len(t.Messages())
			t.Submit(context.Background(), line)
			printNew(t.Messages(), before+1) // skip the echoed user message
			continue
		}
		printNew(t.Messages(), len(t.Messages())-1)
	}
}

func printModels() {
	for _, m := range provider.Models() {
		fmt.Printf("  %-8s %s\n", m.ID, m.Name)
	}
}

func printNew(messages []domain.ChatMessage, from int) {
	for _, m := range messages[from:] {
		fmt.Printf("%s: %s\n", m.Role, m.Content)
	}
}
