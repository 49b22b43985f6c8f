package model

import "time"

type Room struct {
	Id          int64     `json:"id"`
	Members     []*User   `json:"members"`
	LastMessage *Message  `json:"lastMessage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Message struct {
	Id        int64      `json:"id"`
	RoomId    int64      `json:"roomId"`
	Sender    *User      `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"-"`
}
