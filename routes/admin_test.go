package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabsu-me/kabsu-be/controllers"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAdminDB backs the admin handlers with an id set per entity; mutations
// against an unknown id report the no-rows sentinel like the real store.
type fakeAdminDB struct {
	db.Database
	campusIds    map[int64]bool
	professorIds map[int64]bool
	courseIds    map[int64]bool
}

func (f *fakeAdminDB) RenameCampus(ctx context.Context, id int64, name, slug string) error {
	if !f.campusIds[id] {
		return db.ErrNoRowsAffected
	}
	return nil
}

func (f *fakeAdminDB) MarkCampusAsDeleted(ctx context.Context, id int64) error {
	if !f.campusIds[id] {
		return db.ErrNoRowsAffected
	}
	delete(f.campusIds, id)
	return nil
}

func (f *fakeAdminDB) RenameProfessor(ctx context.Context, id int64, name string) error {
	if !f.professorIds[id] {
		return db.ErrNoRowsAffected
	}
	return nil
}

func (f *fakeAdminDB) MarkProfessorAsDeleted(ctx context.Context, id int64) error {
	if !f.professorIds[id] {
		return db.ErrNoRowsAffected
	}
	delete(f.professorIds, id)
	return nil
}

func (f *fakeAdminDB) MarkCourseAsDeleted(ctx context.Context, id int64) error {
	if !f.courseIds[id] {
		return db.ErrNoRowsAffected
	}
	delete(f.courseIds, id)
	return nil
}

func (f *fakeAdminDB) GetCampuses(ctx context.Context) ([]*model.Campus, error) {
	return nil, nil
}

func (f *fakeAdminDB) GetColleges(ctx context.Context) ([]*model.College, error) {
	return nil, nil
}

func (f *fakeAdminDB) GetPrograms(ctx context.Context) ([]*model.Program, error) {
	return nil, nil
}

func newAdminFixture(t *testing.T) *adminRoutes {
	t.Helper()
	fake := &fakeAdminDB{
		campusIds:    map[int64]bool{1: true},
		professorIds: map[int64]bool{1: true},
		courseIds:    map[int64]bool{1: true},
	}
	taxonomy, err := controllers.NewTaxonomyController(context.Background(), fake)
	require.NoError(t, err)
	return &adminRoutes{db: fake, taxonomy: taxonomy}
}

func adminTestContext(t *testing.T, id, body string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: id}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func TestDeleteCampusMissingId(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.deleteCampus(adminTestContext(t, "999", ""))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestDeleteCampus(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.deleteCampus(adminTestContext(t, "1", ""))
	assert.Nil(t, httpErr)

	// soft delete is not repeatable
	_, httpErr = ar.deleteCampus(adminTestContext(t, "1", ""))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestRenameCampusMissingId(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.renameCampus(adminTestContext(t, "999", `{"name":"Main","slug":"main"}`))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestRenameCampus(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.renameCampus(adminTestContext(t, "1", `{"name":"Main","slug":"main"}`))
	assert.Nil(t, httpErr)
}

func TestRenameProfessorMissingId(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.renameProfessor(adminTestContext(t, "999", `{"name":"Dr. Cruz"}`))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestDeleteProfessorMissingId(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.deleteProfessor(adminTestContext(t, "999", ""))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestDeleteCourseMissingId(t *testing.T) {
	ar := newAdminFixture(t)
	_, httpErr := ar.deleteCourse(adminTestContext(t, "999", ""))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
