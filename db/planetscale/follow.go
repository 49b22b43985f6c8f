package planetscale

import (
	"context"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
	"github.com/upper/db/v4"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

func (fdb *FollowDB) CreateFollow(ctx context.Context, followerId, followeeId string) error {
	_, err := fdb.sess.SQL().
		InsertInto("follow").
		Columns("follower_id", "followee_id").
		Values(followerId, followeeId).
		ExecContext(ctx)
	return err
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, followerId, followeeId string) error {
	res, err := fdb.sess.SQL().
		DeleteFrom("follow").
		Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appDb.ErrNoRowsAffected
	}
	return nil
}

func (fdb *FollowDB) GetFollow(ctx context.Context, followerId, followeeId string) (*model.Follow, error) {
	var follow model.Follow
	if err := fdb.sess.SQL().
		Select("*").
		From("follow").
		Where("follower_id = ? AND followee_id = ?", followerId, followeeId).
		IteratorContext(ctx).
		One(&follow); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

func (fdb *FollowDB) GetFollowingIds(ctx context.Context, userId string) ([]string, error) {
	var follows []*model.Follow
	if err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("follower_id = ?", userId).
		All(&follows); err != nil {
		return nil, err
	}
	ids := make([]string, len(follows))
	for i, follow := range follows {
		ids[i] = follow.FolloweeId
	}
	return ids, nil
}

func (fdb *FollowDB) GetFollowers(ctx context.Context, userId string, limit, offset int) ([]*model.User, error) {
	return fdb.getFollowEdgeUsers(ctx, "f.followee_id = ?", "f.follower_id", userId, limit, offset)
}

func (fdb *FollowDB) GetFollowing(ctx context.Context, userId string, limit, offset int) ([]*model.User, error) {
	return fdb.getFollowEdgeUsers(ctx, "f.follower_id = ?", "f.followee_id", userId, limit, offset)
}

func (fdb *FollowDB) getFollowEdgeUsers(ctx context.Context, where, joinColumn, userId string, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	if err := fdb.sess.SQL().
		Select("person.*").
		From("follow AS f").
		Join("person").On(joinColumn + " = person.firebase_id").
		Where(where, userId).
		OrderBy("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		IteratorContext(ctx).
		All(&users); err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Avatar = util.Avatar(user.Id)
	}
	return users, nil
}
