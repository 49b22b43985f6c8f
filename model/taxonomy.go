package model

import "time"

// Campus > College > Program is a strict three-level tree. Every Program
// belongs to exactly one College and every College to exactly one Campus.

type Campus struct {
	Id        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Slug      string     `db:"slug" json:"slug"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

type College struct {
	Id        int64      `db:"id" json:"id"`
	CampusId  int64      `db:"campus_id" json:"campusId"`
	Name      string     `db:"name" json:"name"`
	Slug      string     `db:"slug" json:"slug"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

type Program struct {
	Id        int64      `db:"id" json:"id"`
	CollegeId int64      `db:"college_id" json:"collegeId"`
	Name      string     `db:"name" json:"name"`
	Slug      string     `db:"slug" json:"slug"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// ProgramPath is a program's position in the tree, resolved through the
// Program -> College -> Campus joins.
type ProgramPath struct {
	ProgramId int64 `db:"program_id" json:"programId"`
	CollegeId int64 `db:"college_id" json:"collegeId"`
	CampusId  int64 `db:"campus_id" json:"campusId"`
}

// UnitIdAtLevel returns the org-unit id at the level named by an org-scoped
// post type. Returns 0 for non-org scopes.
func (pp *ProgramPath) UnitIdAtLevel(level PostType) int64 {
	if pp == nil {
		return 0
	}
	switch level {
	case PostTypeProgram:
		return pp.ProgramId
	case PostTypeCollege:
		return pp.CollegeId
	case PostTypeCampus:
		return pp.CampusId
	}
	return 0
}

type CollegeTree struct {
	*College
	Programs []*Program `json:"programs"`
}

type CampusTree struct {
	*Campus
	Colleges []*CollegeTree `json:"colleges"`
}
