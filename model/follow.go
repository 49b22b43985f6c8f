package model

import "time"

// Follow is a single directed edge: follower -> followee. Both query
// directions are served by column indexes on the one table.
type Follow struct {
	FollowerId string    `db:"follower_id" json:"followerId"`
	FolloweeId string    `db:"followee_id" json:"followeeId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
