package models

import "time"

// TimestampFormat is the canonical text form for message timestamps on the
// API surface. The store's native timestamp type is not client-portable,
// so reads convert to this at the store boundary.
const TimestampFormat = time.RFC3339

// Author identifies a non-anonymous message sender. A nil *Author on a
// message means the visitor posted anonymously.
type Author struct {
	DisplayName string `bson:"display_name" json:"displayName"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photoURL,omitempty"`
}

// Message is one inbound item in a member's message box as persisted.
//
// MessageNo is the per-member sequence number assigned inside the post
// transaction; it is unique within the member and is the sole ordering and
// pagination key. Reply and ReplyAt are set together exactly once, or not
// at all.
type Message struct {
	ID        string     `bson:"_id"`
	MemberUID string     `bson:"member_uid"`
	MessageNo int64      `bson:"message_no"`
	Message   string     `bson:"message"`
	Author    *Author    `bson:"author,omitempty"`
	CreateAt  time.Time  `bson:"create_at"`
	Reply     string     `bson:"reply,omitempty"`
	ReplyAt   *time.Time `bson:"reply_at,omitempty"`
}

// HasReply reports whether the message already carries its one reply.
func (m *Message) HasReply() bool { return m.ReplyAt != nil }

// MessageView is the client-facing shape of a Message, with timestamps
// rendered in TimestampFormat.
type MessageView struct {
	ID        string  `json:"id"`
	MessageNo int64   `json:"messageNo"`
	Message   string  `json:"message"`
	Author    *Author `json:"author,omitempty"`
	CreateAt  string  `json:"createAt"`
	Reply     string  `json:"reply,omitempty"`
	ReplyAt   string  `json:"replyAt,omitempty"`
}

// View converts the persisted message to its API shape.
func (m *Message) View() MessageView {
	v := MessageView{
		ID:        m.ID,
		MessageNo: m.MessageNo,
		Message:   m.Message,
		Author:    m.Author,
		CreateAt:  m.CreateAt.UTC().Format(TimestampFormat),
	}
	if m.ReplyAt != nil {
		v.Reply = m.Reply
		v.ReplyAt = m.ReplyAt.UTC().Format(TimestampFormat)
	}
	return v
}
