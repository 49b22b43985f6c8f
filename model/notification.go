package model

import "time"

type NotificationType string

const (
	NotificationTypeFollow  NotificationType = "FOLLOW"
	NotificationTypeLike    NotificationType = "LIKE"
	NotificationTypeComment NotificationType = "COMMENT"
	NotificationTypeReply   NotificationType = "REPLY"
	NotificationTypeMention NotificationType = "MENTION"
	NotificationTypeNgl     NotificationType = "NGL"
)

type Notification struct {
	Id        int64            `json:"id"`
	ToUserId  string           `json:"toUserId"`
	From      *User            `json:"from,omitempty"` // nil for anonymous sources (ngl)
	Type      NotificationType `json:"type"`
	ContentId string           `json:"contentId"`
	ReadAt    *time.Time       `json:"readAt"`
	CreatedAt time.Time        `json:"createdAt"`
}
