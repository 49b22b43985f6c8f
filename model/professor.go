package model

import "time"

type Professor struct {
	Id        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	CollegeId int64      `db:"college_id" json:"collegeId"`
	Courses   []*Course  `db:"-" json:"courses"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

type Course struct {
	Id        int64      `db:"id" json:"id"`
	Code      string     `db:"code" json:"code"`
	Name      string     `db:"name" json:"name"`
	ProgramId int64      `db:"program_id" json:"programId"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}
