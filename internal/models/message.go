package models

import "fmt"

// MessageKind names the audience a message was addressed to.
type MessageKind string

const (
	KindPersonal  MessageKind = "personal"
	KindGroup     MessageKind = "group"
	KindCommunity MessageKind = "community"
)

var MessageKinds = []MessageKind{KindPersonal, KindGroup, KindCommunity}

func ParseMessageKind(s string) (MessageKind, error) {
	for _, k := range MessageKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown message kind %q (want personal, group or community)", s)
}

// MessageBase is the shape every message variant shares.
type MessageBase struct {
	ID        int             `json:"id"`
	Category  MessageCategory `json:"category"`
	Subject   string          `json:"subject"`
	Content   string          `json:"content"`
	CreatedAt Timestamp       `json:"created_at"`
	IsRead    bool            `json:"is_read"`
}

// Message is implemented only by the three variants below.
type Message interface {
	Kind() MessageKind
	Base() MessageBase
	sealed()
}

type PersonalMessage struct {
	MessageBase
}

type GroupMessage struct {
	MessageBase
}

type CommunityMessage struct {
	MessageBase
	CommunityNames []string `json:"community_names"`
}

func (PersonalMessage) Kind() MessageKind  { return KindPersonal }
func (GroupMessage) Kind() MessageKind     { return KindGroup }
func (CommunityMessage) Kind() MessageKind { return KindCommunity }

func (m PersonalMessage) Base() MessageBase  { return m.MessageBase }
func (m GroupMessage) Base() MessageBase     { return m.MessageBase }
func (m CommunityMessage) Base() MessageBase { return m.MessageBase }

func (PersonalMessage) sealed()  {}
func (GroupMessage) sealed()     {}
func (CommunityMessage) sealed() {}

// CountUnread returns how many messages have not been read.
func CountUnread(msgs []Message) int {
	n := 0
	for _, m := range msgs {
		if !m.Base().IsRead {
			n++
		}
	}
	return n
}
