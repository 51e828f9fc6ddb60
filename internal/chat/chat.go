// Package chat relays messages to the support assistant and raises a
// critical alert when a message reads like a crisis.
package chat

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mindcare/internal/api"
)

const (
	Greeting      = "Hello! I'm here to provide mental health first aid support. I understand the unique challenges faced by college students in India. How can I help you today?"
	EmptyReply    = "Sorry, I could not generate a response."
	FailedReply   = "Sorry, I am having trouble responding right now. Please try again later."
	LevelCritical = "critical"
)

var crisisPhrases = []string{"suicide", "kill myself", "end my life", "hurt myself", "self harm"}

var bulletPrefix = regexp.MustCompile(`^[-•]\s*`)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID      string
	Role    Role
	Content string
	SentAt  time.Time
}

type Backend interface {
	Chat(ctx context.Context, message string) (string, error)
	CreateAlert(ctx context.Context, message, level string) error
	AlertInbox(ctx context.Context) ([]api.Alert, error)
}

type Conversation struct {
	backend Backend

	mu      sync.Mutex
	history []Message
}

// New starts a conversation with the assistant's greeting.
func New(backend Backend) *Conversation {
	return &Conversation{
		backend: backend,
		history: []Message{newMessage(RoleAssistant, Greeting)},
	}
}

// Send posts input and returns the assistant's reply. Blank input is ignored
// and reports false. Backend failures never surface; the reply carries a
// fallback text instead.
func (c *Conversation) Send(ctx context.Context, input string) (Message, bool) {
	if strings.TrimSpace(input) == "" {
		return Message{}, false
	}
	c.append(newMessage(RoleUser, input))

	reply, err := c.backend.Chat(ctx, input)
	switch {
	case err != nil:
		log.Printf("chat request failed: %v", err)
		reply = FailedReply
	case reply == "":
		reply = EmptyReply
	}

	if IsCrisis(input) {
		if err := c.backend.CreateAlert(ctx, input, LevelCritical); err != nil {
			log.Printf("crisis alert not delivered: %v", err)
		}
	}

	message := newMessage(RoleAssistant, Normalize(reply))
	c.append(message)
	return message, true
}

func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// Inbox lists alerts for counsellors and admins.
func (c *Conversation) Inbox(ctx context.Context) ([]api.Alert, error) {
	return c.backend.AlertInbox(ctx)
}

func (c *Conversation) append(message Message) {
	c.mu.Lock()
	c.history = append(c.history, message)
	c.mu.Unlock()
}

// IsCrisis reports whether text contains a crisis phrase, ignoring case.
func IsCrisis(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Normalize trims every line, drops blank ones and rewrites "-" and "•"
// bullets as "• ".
func Normalize(reply string) string {
	lines := strings.Split(reply, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bulletPrefix.MatchString(line) {
			line = "• " + bulletPrefix.ReplaceAllString(line, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func newMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		SentAt:  time.Now().UTC(),
	}
}
