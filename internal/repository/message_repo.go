package repository

import (
	"github.com/openflea/fleamarket-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access interface. Thread and visibility
// semantics live in the service layer; this interface only shapes the
// queries it needs: equality/OR filters on the participant columns, ordering
// on sent_at, and batched flag updates.
type MessageRepository interface {
	Create(msg *domain.Message) error
	Save(msg *domain.Message) error
	FindByID(id uint64) (*domain.Message, error)
	// FindThread returns the head and every message linked to it,
	// oldest first.
	FindThread(headID uint64) ([]*domain.Message, error)
	// FindParticipating returns every message the user can still see on
	// either side, newest first.
	FindParticipating(userID uint64) ([]*domain.Message, error)
	MarkRead(ids []uint64) error
	SetDeletedBySender(ids []uint64) error
	SetDeletedByReceiver(ids []uint64) error
	CountUnread(userID uint64) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(msg *domain.Message) error {
	return r.db.Create(msg).Error
}

func (r *messageRepository) Save(msg *domain.Message) error {
	return r.db.Save(msg).Error
}

func (r *messageRepository) FindByID(id uint64) (*domain.Message, error) {
	var msg domain.Message
	if err := r.db.Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) FindThread(headID uint64) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.
		Where("id = ? OR conversation_starter_id = ?", headID, headID).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindParticipating(userID uint64) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.
		Where("(sender_id = ? AND deleted_by_sender = ?) OR (receiver_id = ? AND deleted_by_receiver = ?)",
			userID, false, userID, false).
		Order("sent_at DESC, id DESC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkRead(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.Message{}).
		Where("id IN ?", ids).
		Update("is_read", true).Error
}

func (r *messageRepository) SetDeletedBySender(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.Message{}).
		Where("id IN ?", ids).
		Update("deleted_by_sender", true).Error
}

func (r *messageRepository) SetDeletedByReceiver(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&domain.Message{}).
		Where("id IN ?", ids).
		Update("deleted_by_receiver", true).Error
}

func (r *messageRepository) CountUnread(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ? AND deleted_by_receiver = ?", userID, false, false).
		Count(&count).Error
	return count, err
}
