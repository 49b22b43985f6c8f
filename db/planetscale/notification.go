package planetscale

import (
	"context"
	"time"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/db/dao"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/upper/db/v4"
)

type NotificationDB struct {
	sess db.Session
}

func getNotificationDB(sess db.Session) *NotificationDB {
	return &NotificationDB{sess}
}

func (ndb *NotificationDB) CreateNotification(ctx context.Context, req *appDb.CreateNotification) (int64, error) {
	var fromUserId interface{}
	if req.FromUserId != "" {
		fromUserId = req.FromUserId
	}
	res, err := ndb.sess.SQL().
		InsertInto("notification").
		Columns("to_user_id", "from_user_id", "type", "content_id").
		Values(req.ToUserId, fromUserId, req.Type, req.ContentId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedNotification struct {
	Id              int64                  `db:"id"`
	ToUserId        string                 `db:"to_user_id"`
	FromUserId      dao.NullString         `db:"from_user_id"`
	FromUsername    dao.NullString         `db:"username"`
	FromDisplayName dao.NullString         `db:"from_display_name"`
	Type            model.NotificationType `db:"type"`
	ContentId       string                 `db:"content_id"`
	ReadAt          *time.Time             `db:"read_at"`
	CreatedAt       time.Time              `db:"created_at"`
}

func (ndb *NotificationDB) GetNotificationsForUser(ctx context.Context, userId string, limit, offset int) ([]*model.Notification, error) {
	var flattenedNotifications []flattenedNotification
	if err := ndb.sess.SQL().
		Select(
			"n.id",
			"n.to_user_id",
			"n.from_user_id",
			"person.username",
			"person.display_name as from_display_name",
			"n.type",
			"n.content_id",
			"n.read_at",
			"n.created_at",
		).
		From("notification AS n").
		LeftJoin("person").On("n.from_user_id = person.firebase_id").
		Where("n.to_user_id = ?", userId).
		OrderBy("n.created_at DESC", "n.id DESC").
		Limit(limit).
		Offset(offset).
		IteratorContext(ctx).
		All(&flattenedNotifications); err != nil {
		return nil, err
	}

	notifications := make([]*model.Notification, len(flattenedNotifications))
	for i, flattened := range flattenedNotifications {
		notification := &model.Notification{
			Id:        flattened.Id,
			ToUserId:  flattened.ToUserId,
			Type:      flattened.Type,
			ContentId: flattened.ContentId,
			ReadAt:    flattened.ReadAt,
			CreatedAt: flattened.CreatedAt,
		}
		if fromId := flattened.FromUserId.AsString(); fromId != "" {
			notification.From = &model.User{
				Id:          fromId,
				Username:    flattened.FromUsername.AsString(),
				DisplayName: flattened.FromDisplayName.AsString(),
			}
		}
		notifications[i] = notification
	}
	return notifications, nil
}

func (ndb *NotificationDB) MarkNotificationAsRead(ctx context.Context, id int64, userId string) error {
	res, err := ndb.sess.SQL().
		Update("notification").
		Set("read_at", db.Raw("NOW()")).
		Where("id = ? AND to_user_id = ? AND read_at IS NULL", id, userId).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appDb.ErrNoRowsAffected
	}
	return nil
}

func (ndb *NotificationDB) MarkAllNotificationsAsRead(ctx context.Context, userId string) error {
	_, err := ndb.sess.SQL().
		Update("notification").
		Set("read_at", db.Raw("NOW()")).
		Where("to_user_id = ? AND read_at IS NULL", userId).
		ExecContext(ctx)
	return err
}
