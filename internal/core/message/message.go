// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package message is the internal mailbox shared by every role.

A message has one sender and one recipient. The backend decides who may
write to whom; the client only keeps the form well formed.
*/
package message

import "time"

// # Domain Entities

// Message is a single mailbox entry.
type Message struct {
	ID            string     `json:"id"`
	SenderID      string     `json:"senderId"`
	SenderName    string     `json:"senderName,omitempty"`
	RecipientID   string     `json:"recipientId"`
	RecipientName string     `json:"recipientName,omitempty"`
	Subject       string     `json:"subject"`
	Body          string     `json:"content"`
	Read          bool       `json:"isRead"`
	SentAt        *time.Time `json:"createdAt,omitempty"`
}

// Draft is the payload that sends a message.
type Draft struct {
	RecipientID string `json:"recipientId"`
	Subject     string `json:"subject"`
	Body        string `json:"content"`
}

// Mailbox is a folder listing with its unread count.
type Mailbox struct {
	Messages []Message `json:"messages"`
	Unread   int       `json:"unread"`
}

// NewMailbox counts the unread entries of messages.
func NewMailbox(messages []Message) Mailbox {
	box := Mailbox{Messages: messages}
	if box.Messages == nil {
		box.Messages = []Message{}
	}
	for _, m := range messages {
		if !m.Read {
			box.Unread++
		}
	}
	return box
}

// # Field Identifiers

const (
	FieldRecipientID = "recipientId"
	FieldSubject     = "subject"
	FieldBody        = "content"
)

const (
	MaxSubjectLength = 200
	MaxBodyLength    = 10000
)
