package domain

import "time"

// Message a private message between two users. Messages form threads: every
// message points at the thread head via ConversationStarterID, and a head
// points at itself once persisted (nil only in the window between the first
// insert and the self-link backfill). Deletion is per-side: each participant
// has an independent flag that hides the row from them without touching the
// other side.
type Message struct {
	ID                    uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID              uint64    `gorm:"column:sender_id;index" json:"sender_id"`
	ReceiverID            uint64    `gorm:"column:receiver_id;index" json:"receiver_id"`
	Subject               string    `gorm:"column:subject;type:varchar(255)" json:"subject"`
	Body                  string    `gorm:"column:body;type:text" json:"body"`
	SentAt                time.Time `gorm:"column:sent_at;autoCreateTime;index" json:"sent_at"`
	IsRead                bool      `gorm:"column:is_read;default:false" json:"is_read"`
	ParentID              *uint64   `gorm:"column:parent_id" json:"parent_id,omitempty"`
	ConversationStarterID *uint64   `gorm:"column:conversation_starter_id;index" json:"conversation_starter_id,omitempty"`
	DeletedBySender       bool      `gorm:"column:deleted_by_sender;default:false" json:"-"`
	DeletedByReceiver     bool      `gorm:"column:deleted_by_receiver;default:false" json:"-"`
}

func (Message) TableName() string { return "messages" }

// VisibleTo reports whether userID may still see this message: they must be
// a participant and must not have soft-deleted their side.
func (m *Message) VisibleTo(userID uint64) bool {
	if m.SenderID == userID && !m.DeletedBySender {
		return true
	}
	if m.ReceiverID == userID && !m.DeletedByReceiver {
		return true
	}
	return false
}

// IsParticipant reports whether userID is sender or receiver, ignoring
// soft-delete flags.
func (m *Message) IsParticipant(userID uint64) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// ThreadHeadID returns the canonical head id of the thread this message
// belongs to. A message with no starter link is its own head.
func (m *Message) ThreadHeadID() uint64 {
	if m.ConversationStarterID != nil {
		return *m.ConversationStarterID
	}
	return m.ID
}

// SendMessageRequest compose payload. ParentID attaches the message to an
// existing thread; omitted it starts a new one.
type SendMessageRequest struct {
	ReceiverID uint64  `json:"receiver_id" binding:"required"`
	Subject    string  `json:"subject" binding:"required,max=255"`
	Body       string  `json:"body" binding:"required"`
	ParentID   *uint64 `json:"parent_id"`
}

// MessageResponse a message in API responses
type MessageResponse struct {
	ID                    uint64    `json:"id"`
	SenderID              uint64    `json:"sender_id"`
	ReceiverID            uint64    `json:"receiver_id"`
	Subject               string    `json:"subject"`
	Body                  string    `json:"body"`
	SentAt                time.Time `json:"sent_at"`
	IsRead                bool      `json:"is_read"`
	ParentID              *uint64   `json:"parent_id,omitempty"`
	ConversationStarterID *uint64   `json:"conversation_starter_id,omitempty"`
}

// ToResponse converts Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:                    m.ID,
		SenderID:              m.SenderID,
		ReceiverID:            m.ReceiverID,
		Subject:               m.Subject,
		Body:                  m.Body,
		SentAt:                m.SentAt,
		IsRead:                m.IsRead,
		ParentID:              m.ParentID,
		ConversationStarterID: m.ConversationStarterID,
	}
}

// ConversationResponse a resolved thread: the canonical head id and the
// messages visible to the requesting user in chronological order.
type ConversationResponse struct {
	ThreadHeadID uint64             `json:"thread_head_id"`
	Messages     []*MessageResponse `json:"messages"`
}
