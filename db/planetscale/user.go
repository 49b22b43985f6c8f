package planetscale

import (
	"context"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, req *appDb.CreateUser) error {
	_, err := udb.sess.WithContext(ctx).SQL().
		InsertInto("person").
		Columns("firebase_id", "username", "display_name", "role", "program_id").
		Values(req.Id, req.Username, req.DisplayName, req.Role, req.ProgramId).
		ExecContext(ctx)
	return err
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return udb.getUserWhere(ctx, "firebase_id = ?", id)
}

func (udb *UserDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return udb.getUserWhere(ctx, "username = ?", username)
}

func (udb *UserDB) getUserWhere(ctx context.Context, clause string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where(clause, arg).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	user.Avatar = util.Avatar(user.Id)
	return &user, nil
}

func (udb *UserDB) UpdateUser(ctx context.Context, id string, req *appDb.UpdateUser) error {
	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ProgramId != nil {
		updates["program_id"] = *req.ProgramId
	}
	if len(updates) == 0 {
		return nil
	}
	_, err := udb.sess.SQL().
		Update("person").
		Set(updates).
		Where("firebase_id = ?", id).
		ExecContext(ctx)
	return err
}

func (udb *UserDB) SearchUsers(ctx context.Context, query string, limit int) ([]*model.User, error) {
	var users []*model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where("(username LIKE ? OR display_name LIKE ?)", "%"+query+"%", "%"+query+"%").
		And("banned_at IS NULL").
		And("deactivated_at IS NULL").
		OrderBy("username").
		Limit(limit).
		IteratorContext(ctx).
		All(&users); err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Avatar = util.Avatar(user.Id)
	}
	return users, nil
}

func (udb *UserDB) SetUserDeactivated(ctx context.Context, id string, deactivated bool) error {
	return udb.setUserFlag(ctx, id, "deactivated_at", deactivated)
}

func (udb *UserDB) SetUserBanned(ctx context.Context, id string, banned bool) error {
	return udb.setUserFlag(ctx, id, "banned_at", banned)
}

func (udb *UserDB) setUserFlag(ctx context.Context, id, column string, set bool) error {
	var value interface{}
	if set {
		value = db.Raw("NOW()")
	}
	_, err := udb.sess.SQL().
		Update("person").
		Set(column, value).
		Where("firebase_id = ?", id).
		ExecContext(ctx)
	return err
}
