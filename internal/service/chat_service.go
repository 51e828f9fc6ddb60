package service

import (
	"strings"

	apperrors "mindcare/internal/errors"
)

// ChatService stands in for the remote text-generation service with fixed
// replies.
type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

func (s *ChatService) Reply(message string) (string, *apperrors.APIError) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.BadRequest("invalid_message", "message is required")
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "exam") || strings.Contains(lower, "study"):
		return "Exams can feel overwhelming.\n\n- Break revision into short blocks\n- Sleep before the exam day\n" +
			"- Talk to a counsellor if the pressure keeps building", nil
	case strings.Contains(lower, "sleep"):
		return "Sleep problems are common under stress.\n\n• Keep a fixed bedtime\n• Avoid screens an hour before bed\n" +
			"• Try the breathing exercise in the Relaxation section", nil
	default:
		return "Thank you for sharing. I am here to listen.\n\n- Take a slow breath\n- Reach out to someone you trust\n" +
			"- You can book a counsellor from your dashboard", nil
	}
}
