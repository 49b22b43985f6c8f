package model

import "time"

// NglQuestion is an anonymous message dropped into a user's inbox. The
// sender is never recorded; a generated code name stands in for them.
type NglQuestion struct {
	Id        string       `db:"id" json:"id"`
	UserId    string       `db:"user_id" json:"userId"`
	Content   string       `db:"content" json:"content"`
	CodeName  string       `db:"code_name" json:"codeName"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time   `db:"deleted_at" json:"-"`
	Answers   []*NglAnswer `db:"-" json:"answers"`
}

type NglAnswer struct {
	Id         int64     `db:"id" json:"id"`
	QuestionId string    `db:"question_id" json:"questionId"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
