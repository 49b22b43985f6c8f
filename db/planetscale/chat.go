package planetscale

import (
	"context"
	"time"

	"github.com/kabsu-me/kabsu-be/db/dao"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/upper/db/v4"
)

type ChatDB struct {
	sess db.Session
}

func getChatDB(sess db.Session) *ChatDB {
	return &ChatDB{sess}
}

func (cdb *ChatDB) OpenRoom(ctx context.Context, userId, otherUserId string) (int64, error) {
	var existing struct {
		RoomId int64 `db:"room_id"`
	}
	err := cdb.sess.SQL().
		Select("rm1.room_id").
		From("room_member AS rm1").
		Join("room_member AS rm2").On("rm1.room_id = rm2.room_id").
		Where("rm1.user_id = ? AND rm2.user_id = ?", userId, otherUserId).
		IteratorContext(ctx).
		One(&existing)
	if err == nil {
		return existing.RoomId, nil
	}
	if err != db.ErrNoMoreRows {
		return 0, err
	}

	var roomId int64
	err = cdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto("room").
			Columns("created_at").
			Values(db.Raw("NOW()")).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		roomId, err = res.LastInsertId()
		if err != nil {
			return err
		}

		batchInserter := sess.SQL().
			InsertInto("room_member").
			Columns("room_id", "user_id").
			Batch(2)
		batchInserter.Values(roomId, userId)
		batchInserter.Values(roomId, otherUserId)
		batchInserter.Done()
		return batchInserter.Wait()
	}, nil)
	return roomId, err
}

type flattenedRoom struct {
	flattenedAuthor `db:",inline"`
	Id              int64          `db:"id"`
	CreatedAt       time.Time      `db:"created_at"`
	LastMessageId   dao.NullInt64  `db:"last_message_id"`
	LastMessage     dao.NullString `db:"last_message"`
	LastSenderId    dao.NullString `db:"last_sender_id"`
}

func (cdb *ChatDB) GetRoomsForUser(ctx context.Context, userId string, limit, offset int) ([]*model.Room, error) {
	var flattenedRooms []flattenedRoom
	if err := cdb.sess.SQL().
		Select(
			"r.id",
			"r.created_at",
			"person.firebase_id as author_id",
			"person.username",
			"person.display_name as author_display_name",
			"person.role",
			"person.program_id as author_program_id",
			db.Raw("(SELECT m.id FROM message AS m WHERE m.room_id = r.id AND m.deleted_at IS NULL ORDER BY m.id DESC LIMIT 1) AS last_message_id"),
			db.Raw("(SELECT m.content FROM message AS m WHERE m.room_id = r.id AND m.deleted_at IS NULL ORDER BY m.id DESC LIMIT 1) AS last_message"),
			db.Raw("(SELECT m.sender_id FROM message AS m WHERE m.room_id = r.id AND m.deleted_at IS NULL ORDER BY m.id DESC LIMIT 1) AS last_sender_id"),
		).
		From("room AS r").
		Join("room_member AS rm").On("rm.room_id = r.id AND rm.user_id = ?", userId).
		Join("room_member AS rm_other").On("rm_other.room_id = r.id AND rm_other.user_id != ?", userId).
		Join("person").On("rm_other.user_id = person.firebase_id").
		OrderBy("last_message_id DESC", "r.id DESC").
		Limit(limit).
		Offset(offset).
		IteratorContext(ctx).
		All(&flattenedRooms); err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, len(flattenedRooms))
	for i, flattened := range flattenedRooms {
		room := &model.Room{
			Id:        flattened.Id,
			Members:   []*model.User{buildAuthorFromFlattened(&flattened.flattenedAuthor)},
			CreatedAt: flattened.CreatedAt,
		}
		if flattened.LastMessageId.Valid {
			room.LastMessage = &model.Message{
				Id:      flattened.LastMessageId.AsInt(),
				RoomId:  flattened.Id,
				Sender:  &model.User{Id: flattened.LastSenderId.AsString()},
				Content: flattened.LastMessage.AsString(),
			}
		}
		rooms[i] = room
	}
	return rooms, nil
}

func (cdb *ChatDB) IsRoomMember(ctx context.Context, roomId int64, userId string) (bool, error) {
	count, err := cdb.sess.WithContext(ctx).
		Collection("room_member").
		Find("room_id = ? AND user_id = ?", roomId, userId).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cdb *ChatDB) CreateMessage(ctx context.Context, roomId int64, senderId, content string) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("message").
		Columns("room_id", "sender_id", "content").
		Values(roomId, senderId, content).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedMessage struct {
	flattenedAuthor `db:",inline"`
	Id              int64     `db:"id"`
	RoomId          int64     `db:"room_id"`
	Content         string    `db:"content"`
	CreatedAt       time.Time `db:"created_at"`
}

func (cdb *ChatDB) GetMessages(ctx context.Context, roomId int64, limit, offset int) ([]*model.Message, error) {
	var flattenedMessages []flattenedMessage
	if err := cdb.sess.SQL().
		Select(
			"m.id",
			"m.room_id",
			"m.content",
			"m.created_at",
			"person.firebase_id as author_id",
			"person.username",
			"person.display_name as author_display_name",
			"person.role",
			"person.program_id as author_program_id",
		).
		From("message AS m").
		Join("person").On("m.sender_id = person.firebase_id").
		Where("m.room_id = ? AND m.deleted_at IS NULL", roomId).
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(limit).
		Offset(offset).
		IteratorContext(ctx).
		All(&flattenedMessages); err != nil {
		return nil, err
	}

	messages := make([]*model.Message, len(flattenedMessages))
	for i, flattened := range flattenedMessages {
		messages[i] = &model.Message{
			Id:        flattened.Id,
			RoomId:    flattened.RoomId,
			Sender:    buildAuthorFromFlattened(&flattened.flattenedAuthor),
			Content:   flattened.Content,
			CreatedAt: flattened.CreatedAt,
		}
	}
	return messages, nil
}
