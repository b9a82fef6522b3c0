package game

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npezzotti/go-molehunt/internal/database"
	"github.com/npezzotti/go-molehunt/internal/types"
)

// MaxMessageLength bounds chat messages, in runes. Longer messages are
// rejected outright, never truncated.
const MaxMessageLength = 500

// ChatFeed appends chat messages and serves incremental reads above a
// client-held watermark. Poll never blocks; live delivery is layered on top
// by feed.Streamer.
type ChatFeed struct {
	db database.GameRepository
}

func NewChatFeed(db database.GameRepository) *ChatFeed {
	return &ChatFeed{db: db}
}

// Post validates and stores one chat message. The stored text is the
// caller's original input; trimming applies to the emptiness check only.
func (f *ChatFeed) Post(userId int, text string) (types.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return types.ChatMessage{}, fmt.Errorf("%w: empty message", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return types.ChatMessage{}, fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, MaxMessageLength)
	}

	dbMsg, err := f.db.CreateMessage(database.CreateMessageParams{
		AccountId: userId,
		Content:   text,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return types.ChatMessage{}, fmt.Errorf("%w: user %d", ErrNotFound, userId)
		}
		return types.ChatMessage{}, &StoreError{Op: "create message", Err: err}
	}

	return chatMessage(dbMsg), nil
}

// Poll returns every message with id greater than sinceId, oldest first.
func (f *ChatFeed) Poll(sinceId int) ([]types.ChatMessage, error) {
	dbMsgs, err := f.db.GetMessagesSince(sinceId)
	if err != nil {
		return nil, &StoreError{Op: "get messages", Err: err}
	}

	messages := make([]types.ChatMessage, 0, len(dbMsgs))
	for _, m := range dbMsgs {
		messages = append(messages, chatMessage(m))
	}

	return messages, nil
}

func chatMessage(m database.Message) types.ChatMessage {
	return types.ChatMessage{
		Id:        m.Id,
		UserId:    m.AccountId,
		Username:  m.Username,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
