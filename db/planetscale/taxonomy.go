package planetscale

import (
	"context"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/upper/db/v4"
)

type TaxonomyDB struct {
	sess db.Session
}

func getTaxonomyDB(sess db.Session) *TaxonomyDB {
	return &TaxonomyDB{sess}
}

func (tdb *TaxonomyDB) CreateCampus(ctx context.Context, name, slug string) (int64, error) {
	return tdb.insertUnit(ctx, "campus", map[string]interface{}{"name": name, "slug": slug})
}

func (tdb *TaxonomyDB) CreateCollege(ctx context.Context, campusId int64, name, slug string) (int64, error) {
	return tdb.insertUnit(ctx, "college", map[string]interface{}{"campus_id": campusId, "name": name, "slug": slug})
}

func (tdb *TaxonomyDB) CreateProgram(ctx context.Context, collegeId int64, name, slug string) (int64, error) {
	return tdb.insertUnit(ctx, "program", map[string]interface{}{"college_id": collegeId, "name": name, "slug": slug})
}

func (tdb *TaxonomyDB) insertUnit(ctx context.Context, table string, values map[string]interface{}) (int64, error) {
	columns := make([]string, 0, len(values))
	args := make([]interface{}, 0, len(values))
	for column, value := range values {
		columns = append(columns, column)
		args = append(args, value)
	}
	res, err := tdb.sess.SQL().
		InsertInto(table).
		Columns(columns...).
		Values(args...).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (tdb *TaxonomyDB) RenameCampus(ctx context.Context, id int64, name, slug string) error {
	return tdb.renameUnit(ctx, "campus", id, name, slug)
}

func (tdb *TaxonomyDB) RenameCollege(ctx context.Context, id int64, name, slug string) error {
	return tdb.renameUnit(ctx, "college", id, name, slug)
}

func (tdb *TaxonomyDB) RenameProgram(ctx context.Context, id int64, name, slug string) error {
	return tdb.renameUnit(ctx, "program", id, name, slug)
}

func (tdb *TaxonomyDB) renameUnit(ctx context.Context, table string, id int64, name, slug string) error {
	// RowsAffected is 0 for a no-change rename, so check existence instead
	count, err := tdb.sess.WithContext(ctx).
		Collection(table).
		Find("id = ? AND deleted_at IS NULL", id).
		Count()
	if err != nil {
		return err
	}
	if count == 0 {
		return appDb.ErrNoRowsAffected
	}
	_, err = tdb.sess.SQL().
		Update(table).
		Set("name", name, "slug", slug).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (tdb *TaxonomyDB) MarkCampusAsDeleted(ctx context.Context, id int64) error {
	return tdb.markUnitAsDeleted(ctx, "campus", id)
}

func (tdb *TaxonomyDB) MarkCollegeAsDeleted(ctx context.Context, id int64) error {
	return tdb.markUnitAsDeleted(ctx, "college", id)
}

func (tdb *TaxonomyDB) MarkProgramAsDeleted(ctx context.Context, id int64) error {
	return tdb.markUnitAsDeleted(ctx, "program", id)
}

func (tdb *TaxonomyDB) markUnitAsDeleted(ctx context.Context, table string, id int64) error {
	res, err := tdb.sess.SQL().
		Update(table).
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

func (tdb *TaxonomyDB) GetCampuses(ctx context.Context) ([]*model.Campus, error) {
	var campuses []*model.Campus
	return campuses, tdb.listUnits(ctx, "campus", &campuses)
}

func (tdb *TaxonomyDB) GetColleges(ctx context.Context) ([]*model.College, error) {
	var colleges []*model.College
	return colleges, tdb.listUnits(ctx, "college", &colleges)
}

func (tdb *TaxonomyDB) GetPrograms(ctx context.Context) ([]*model.Program, error) {
	var programs []*model.Program
	return programs, tdb.listUnits(ctx, "program", &programs)
}

func (tdb *TaxonomyDB) listUnits(ctx context.Context, table string, out interface{}) error {
	return tdb.sess.SQL().
		Select("*").
		From(table).
		Where("deleted_at IS NULL").
		OrderBy("name").
		IteratorContext(ctx).
		All(out)
}

func (tdb *TaxonomyDB) GetProgramPath(ctx context.Context, programId int64) (*model.ProgramPath, error) {
	var path model.ProgramPath
	if err := tdb.sess.SQL().
		Select("pr.id AS program_id", "co.id AS college_id", "co.campus_id").
		From("program AS pr").
		Join("college AS co").On("pr.college_id = co.id").
		Where("pr.id = ?", programId).
		IteratorContext(ctx).
		One(&path); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &path, nil
}
