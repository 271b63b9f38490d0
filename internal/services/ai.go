package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyPulse-backend/internal/config"
	model "github.com/MassBabyGeek/StudyPulse-backend/internal/models"
)

// ErrRateLimited le fournisseur IA a renvoyé 429 (quota quotidien atteint)
var ErrRateLimited = errors.New("ai provider rate limit exceeded")

// AIService client d'une API de complétion compatible OpenAI
type AIService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewAIService(cfg *config.Config) (*AIService, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai configuration is missing")
	}

	return &AIService{
		apiKey:  cfg.OpenAIAPIKey,
		baseURL: cfg.OpenAIBaseURL,
		model:   cfg.OpenAIModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *AIService) complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	reqBody := chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if jsonMode {
		reqBody.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("ai request failed: status %d: %s", resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not decode ai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Chat envoie un message de l'utilisateur à l'assistant et retourne la réponse
func (s *AIService) Chat(ctx context.Context, message string) (string, error) {
	return s.complete(ctx, message, false)
}

// GenerateQuiz demande un quiz JSON sur un sujet donné
func (s *AIService) GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) (*model.Quiz, error) {
	prompt := fmt.Sprintf(`Generate a %s level quiz about %s with %d questions.
    Format the response as a JSON object with the following structure:
    {
      "questions": [
        {
          "question": "Question text",
          "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
          "correctAnswer": 0
        }
      ]
    }`, difficulty, topic, numQuestions)

	content, err := s.complete(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var quiz model.Quiz
	if err := json.Unmarshal([]byte(content), &quiz); err != nil {
		return nil, fmt.Errorf("could not parse generated quiz: %w", err)
	}
	return &quiz, nil
}
