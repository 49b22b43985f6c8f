package planetscale

import (
	"context"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/upper/db/v4"
)

type ProfessorDB struct {
	sess db.Session
}

func getProfessorDB(sess db.Session) *ProfessorDB {
	return &ProfessorDB{sess}
}

func (pdb *ProfessorDB) CreateProfessor(ctx context.Context, name string, collegeId int64) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("professor").
		Columns("name", "college_id").
		Values(name, collegeId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *ProfessorDB) RenameProfessor(ctx context.Context, id int64, name string) error {
	// RowsAffected is 0 for a no-change rename, so check existence instead
	count, err := pdb.sess.WithContext(ctx).
		Collection("professor").
		Find("id = ? AND deleted_at IS NULL", id).
		Count()
	if err != nil {
		return err
	}
	if count == 0 {
		return appDb.ErrNoRowsAffected
	}
	_, err = pdb.sess.SQL().
		Update("professor").
		Set("name", name).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (pdb *ProfessorDB) MarkProfessorAsDeleted(ctx context.Context, id int64) error {
	res, err := pdb.sess.SQL().
		Update("professor").
		Set("deleted_at", db.Raw("NOW()")).
		Where("id = ? AND deleted_at IS NULL", id).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appDb.ErrNoRowsAffected
	}
	return nil
}

func (pdb *ProfessorDB) CreateCourse(ctx context.Context, code, name string, programId int64) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("course").
		Columns("code", "name", "program_id").
		Values(code, name, programId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *ProfessorDB) MarkCourseAsDeleted(ctx context.Context, id int64) error {
	res, err := pdb.sess.SQL().
		Update("course").
		Set("deleted_at", db.Raw("NOW()")).
		Where("id = ? AND deleted_at IS NULL", id).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appDb.ErrNoRowsAffected
	}
	return nil
}

func (pdb *ProfessorDB) AssignProfessorToCourse(ctx context.Context, professorId, courseId int64) error {
	_, err := pdb.sess.SQL().
		InsertInto("professor_course").
		Columns("professor_id", "course_id").
		Values(professorId, courseId).
		ExecContext(ctx)
	return err
}

func (pdb *ProfessorDB) UnassignProfessorFromCourse(ctx context.Context, professorId, courseId int64) error {
	res, err := pdb.sess.SQL().
		DeleteFrom("professor_course").
		Where("professor_id = ? AND course_id = ?", professorId, courseId).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appDb.ErrNoRowsAffected
	}
	return nil
}

func (pdb *ProfessorDB) SearchProfessors(ctx context.Context, query *appDb.ProfessorSearchQuery) ([]*model.Professor, error) {
	selector := pdb.sess.SQL().
		Select(db.Raw("DISTINCT prof.*")).
		From("professor AS prof").
		Where("prof.deleted_at IS NULL")
	if query.CourseId != 0 {
		selector = pdb.sess.SQL().
			Select(db.Raw("DISTINCT prof.*")).
			From("professor AS prof").
			Join("professor_course AS pc").On("pc.professor_id = prof.id AND pc.course_id = ?", query.CourseId).
			Where("prof.deleted_at IS NULL")
	}
	if query.Name != "" {
		selector = selector.And("prof.name LIKE ?", "%"+query.Name+"%")
	}
	if query.CollegeId != 0 {
		selector = selector.And("prof.college_id = ?", query.CollegeId)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 25
	}

	var professors []*model.Professor
	if err := selector.
		OrderBy("prof.name").
		Limit(limit).
		IteratorContext(ctx).
		All(&professors); err != nil {
		return nil, err
	}
	if len(professors) == 0 {
		return professors, nil
	}

	ids := make([]int64, len(professors))
	for i, professor := range professors {
		ids[i] = professor.Id
	}
	coursesById, err := pdb.getCoursesForProfessors(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, professor := range professors {
		professor.Courses = coursesById[professor.Id]
		if professor.Courses == nil {
			professor.Courses = []*model.Course{}
		}
	}
	return professors, nil
}

type flattenedProfessorCourse struct {
	ProfessorId  int64 `db:"professor_id"`
	model.Course `db:",inline"`
}

func (pdb *ProfessorDB) getCoursesForProfessors(ctx context.Context, professorIds []int64) (map[int64][]*model.Course, error) {
	var links []flattenedProfessorCourse
	if err := pdb.sess.SQL().
		Select("pc.professor_id", "course.*").
		From("professor_course AS pc").
		Join("course").On("pc.course_id = course.id").
		Where("pc.professor_id IN ? AND course.deleted_at IS NULL", professorIds).
		IteratorContext(ctx).
		All(&links); err != nil {
		return nil, err
	}
	byProfessor := make(map[int64][]*model.Course)
	for i := range links {
		course := links[i].Course
		byProfessor[links[i].ProfessorId] = append(byProfessor[links[i].ProfessorId], &course)
	}
	return byProfessor, nil
}
