package service

import (
	"context"
	"sort"
	"time"

	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
	"github.com/openflea/fleamarket-backend/internal/repository"
	"github.com/openflea/fleamarket-backend/pkg/cache"
)

// MessageService business logic for threaded private messages
type MessageService interface {
	SendMessage(senderID uint64, req *domain.SendMessageRequest) (*domain.MessageResponse, error)
	GetConversation(userID, messageID uint64) (*domain.ConversationResponse, error)
	ListInbox(userID uint64) ([]*domain.MessageResponse, error)
	ListSent(userID uint64) ([]*domain.MessageResponse, error)
	DeleteConversation(userID, headID uint64) error
	UnreadCount(userID uint64) (int64, error)
}

type messageService struct {
	repo     repository.MessageRepository
	userRepo repository.UserRepository
	cache    cache.Service // optional, may be nil
}

// NewMessageService creates a new MessageService. cacheService may be nil.
func NewMessageService(repo repository.MessageRepository, userRepo repository.UserRepository, cacheService cache.Service) MessageService {
	return &messageService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheService,
	}
}

// SendMessage creates a message, attaching it to an existing thread when
// ParentID is given. A message that starts a new thread becomes its own
// head: the auto-increment id only exists after the first insert, so the
// self-link is backfilled with a second write.
func (s *messageService) SendMessage(senderID uint64, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, common.ErrSelfMessage
	}

	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, common.ErrUserNotFound
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Body:       req.Body,
		SentAt:     time.Now(),
	}

	if req.ParentID != nil {
		parent, err := s.repo.FindByID(*req.ParentID)
		if err != nil {
			return nil, common.ErrMessageNotFound
		}
		// Strangers must not be able to graft onto a thread by probing ids;
		// answer is the same "not found" either way.
		if !parent.IsParticipant(senderID) {
			return nil, common.ErrMessageNotFound
		}
		msg.ParentID = &parent.ID
		headID := parent.ThreadHeadID()
		msg.ConversationStarterID = &headID
	}

	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}

	if msg.ConversationStarterID == nil {
		selfID := msg.ID
		msg.ConversationStarterID = &selfID
		if err := s.repo.Save(msg); err != nil {
			return nil, err
		}
	}

	s.invalidateUnread(req.ReceiverID)

	return msg.ToResponse(), nil
}

// GetConversation resolves any message id to its thread: canonicalizes to
// the thread head, returns the messages still visible to the user in
// chronological order, and marks unread received messages as read.
func (s *messageService) GetConversation(userID, messageID uint64) (*domain.ConversationResponse, error) {
	msg, err := s.repo.FindByID(messageID)
	if err != nil {
		return nil, common.ErrMessageNotFound
	}
	if !msg.VisibleTo(userID) {
		return nil, common.ErrMessageNotFound
	}

	headID := msg.ThreadHeadID()
	thread, err := s.repo.FindThread(headID)
	if err != nil {
		return nil, err
	}

	var unreadIDs []uint64
	responses := make([]*domain.MessageResponse, 0, len(thread))
	for _, m := range thread {
		if !m.VisibleTo(userID) {
			continue
		}
		if m.ReceiverID == userID && !m.IsRead {
			unreadIDs = append(unreadIDs, m.ID)
			m.IsRead = true
		}
		responses = append(responses, m.ToResponse())
	}

	// Read flag is monotone and idempotent; a lost race with a concurrent
	// viewer is harmless, so this write is best-effort.
	if len(unreadIDs) > 0 {
		s.repo.MarkRead(unreadIDs) //nolint:errcheck
		s.invalidateUnread(userID)
	}

	return &domain.ConversationResponse{
		ThreadHeadID: headID,
		Messages:     responses,
	}, nil
}

// ListInbox returns one summary row per thread the user can still see,
// most recently active first.
func (s *messageService) ListInbox(userID uint64) ([]*domain.MessageResponse, error) {
	return s.listConversations(userID, false)
}

// ListSent is like ListInbox but only surfaces threads the user has a
// visible sent message in. The summary row is still the latest visible
// message overall, which may have been sent by the counterpart.
func (s *messageService) ListSent(userID uint64) ([]*domain.MessageResponse, error) {
	return s.listConversations(userID, true)
}

type threadGroup struct {
	latest  *domain.Message
	hasSent bool
}

func (s *messageService) listConversations(userID uint64, sentOnly bool) ([]*domain.MessageResponse, error) {
	candidates, err := s.repo.FindParticipating(userID)
	if err != nil {
		return nil, err
	}

	// Group visible messages by thread head; each group tracks the latest
	// visible message and whether the user sent anything in it.
	groups := make(map[uint64]*threadGroup)
	for _, m := range candidates {
		headID := m.ThreadHeadID()
		g, ok := groups[headID]
		if !ok {
			g = &threadGroup{}
			groups[headID] = g
		}
		if g.latest == nil || m.SentAt.After(g.latest.SentAt) ||
			(m.SentAt.Equal(g.latest.SentAt) && m.ID > g.latest.ID) {
			g.latest = m
		}
		if m.SenderID == userID {
			g.hasSent = true
		}
	}

	rows := make([]*domain.Message, 0, len(groups))
	for _, g := range groups {
		if sentOnly && !g.hasSent {
			continue
		}
		rows = append(rows, g.latest)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].SentAt.Equal(rows[j].SentAt) {
			return rows[i].SentAt.After(rows[j].SentAt)
		}
		return rows[i].ID > rows[j].ID
	})

	responses := make([]*domain.MessageResponse, len(rows))
	for i, m := range rows {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// DeleteConversation soft-deletes the user's side of every message in a
// thread. The counterpart's visibility and the rows themselves are
// untouched.
func (s *messageService) DeleteConversation(userID, headID uint64) error {
	head, err := s.repo.FindByID(headID)
	if err != nil {
		return common.ErrMessageNotFound
	}
	// Any reply id converges on the same thread head.
	if canonical := head.ThreadHeadID(); canonical != head.ID {
		head, err = s.repo.FindByID(canonical)
		if err != nil {
			return common.ErrMessageNotFound
		}
	}
	if !head.IsParticipant(userID) {
		return common.ErrForbidden
	}

	thread, err := s.repo.FindThread(head.ID)
	if err != nil {
		return err
	}

	var asSender, asReceiver []uint64
	for _, m := range thread {
		switch {
		case m.SenderID == userID && !m.DeletedBySender:
			asSender = append(asSender, m.ID)
		case m.ReceiverID == userID && !m.DeletedByReceiver:
			asReceiver = append(asReceiver, m.ID)
		}
	}

	if err := s.repo.SetDeletedBySender(asSender); err != nil {
		return err
	}
	if err := s.repo.SetDeletedByReceiver(asReceiver); err != nil {
		return err
	}

	s.invalidateUnread(userID)
	return nil
}

// UnreadCount returns the inbox badge count, served from cache when warm.
func (s *messageService) UnreadCount(userID uint64) (int64, error) {
	ctx := context.Background()
	if s.cache != nil {
		if count, err := s.cache.GetUnreadCount(ctx, userID); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		s.cache.SetUnreadCount(ctx, userID, count) //nolint:errcheck
	}
	return count, nil
}

func (s *messageService) invalidateUnread(userID uint64) {
	if s.cache != nil {
		s.cache.InvalidateUnreadCount(context.Background(), userID) //nolint:errcheck
	}
}
