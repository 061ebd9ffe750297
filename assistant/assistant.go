// Package assistant wraps the platform's assistant chat/session API.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
)

// ChatSession is a server-side assistant conversation.
type ChatSession struct {
	ID        string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Message is one turn sent to the assistant.
type Message struct {
	Content string `json:"content"`
}

// Reply is the assistant's answer to a message.
type Reply struct {
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content"`
}

// Service wraps the assistant endpoints.
type Service struct {
	client *api.Client
}

// NewService creates an assistant service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// CreateSession opens a new assistant conversation.
func (s *Service) CreateSession(ctx context.Context) (*ChatSession, error) {
	session, err := api.Create[ChatSession](ctx, s.client, api.RouteAssistantSessions, struct{}{})
	if err != nil {
		return nil, errors.Wrap(err, "[assistant.Service.CreateSession]")
	}
	return &session, nil
}

// SendMessage sends one message in an existing conversation.
func (s *Service) SendMessage(ctx context.Context, sessionID, content string) (*Reply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.Wrap(consoleerrors.ErrInvalidForm, "message is empty")
	}
	path := fmt.Sprintf("%s/%s/messages", api.RouteAssistantSessions, sessionID)
	reply, err := api.Create[Reply](ctx, s.client, path, Message{Content: content})
	if err != nil {
		return nil, errors.Wrap(err, "[assistant.Service.SendMessage]")
	}
	return &reply, nil
}

// EndSession closes a conversation.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := api.Delete(ctx, s.client, api.RouteAssistantSessions+"/"+sessionID); err != nil {
		return errors.Wrap(err, "[assistant.Service.EndSession]")
	}
	return nil
}
