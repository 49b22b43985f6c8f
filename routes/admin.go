package routes

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/controllers"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/util"
)

type adminRoutes struct {
	db       db.Database
	taxonomy *controllers.TaxonomyController
}

func AddAdminRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, taxonomy *controllers.TaxonomyController) {
	routes := adminRoutes{db: database, taxonomy: taxonomy}
	admin := group.Group("/admin",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount(),
		middleware.RequireAdmin())

	admin.PUT("/campuses", util.HandlerWrapper(routes.createCampus, &util.HandlerOpts{}))
	admin.PATCH("/campuses/:id", util.HandlerWrapper(routes.renameCampus, &util.HandlerOpts{}))
	admin.DELETE("/campuses/:id", util.HandlerWrapper(routes.deleteCampus, &util.HandlerOpts{}))
	admin.PUT("/colleges", util.HandlerWrapper(routes.createCollege, &util.HandlerOpts{}))
	admin.PATCH("/colleges/:id", util.HandlerWrapper(routes.renameCollege, &util.HandlerOpts{}))
	admin.DELETE("/colleges/:id", util.HandlerWrapper(routes.deleteCollege, &util.HandlerOpts{}))
	admin.PUT("/programs", util.HandlerWrapper(routes.createProgram, &util.HandlerOpts{}))
	admin.PATCH("/programs/:id", util.HandlerWrapper(routes.renameProgram, &util.HandlerOpts{}))
	admin.DELETE("/programs/:id", util.HandlerWrapper(routes.deleteProgram, &util.HandlerOpts{}))

	admin.PUT("/professors", util.HandlerWrapper(routes.createProfessor, &util.HandlerOpts{}))
	admin.PATCH("/professors/:id", util.HandlerWrapper(routes.renameProfessor, &util.HandlerOpts{}))
	admin.DELETE("/professors/:id", util.HandlerWrapper(routes.deleteProfessor, &util.HandlerOpts{}))
	admin.PUT("/courses", util.HandlerWrapper(routes.createCourse, &util.HandlerOpts{}))
	admin.DELETE("/courses/:id", util.HandlerWrapper(routes.deleteCourse, &util.HandlerOpts{}))
	admin.PUT("/professors/:id/courses/:courseId", util.HandlerWrapper(routes.assignCourse, &util.HandlerOpts{}))
	admin.DELETE("/professors/:id/courses/:courseId", util.HandlerWrapper(routes.unassignCourse, &util.HandlerOpts{}))

	admin.POST("/users/:id/ban", util.HandlerWrapper(routes.setBanned(true), &util.HandlerOpts{}))
	admin.POST("/users/:id/unban", util.HandlerWrapper(routes.setBanned(false), &util.HandlerOpts{}))
}

type unitReq struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (ar *adminRoutes) bindUnitReq(c *gin.Context) (*unitReq, *util.HTTPError) {
	var req unitReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name == "" || req.Slug == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "name and slug are required",
		}
	}
	return &req, nil
}

func (ar *adminRoutes) createCampus(c *gin.Context) (interface{}, *util.HTTPError) {
	req, httpErr := ar.bindUnitReq(c)
	if httpErr != nil {
		return nil, httpErr
	}
	id, err := ar.db.CreateCampus(c, req.Name, req.Slug)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.taxonomy.Refresh(c)
	return gin.H{"id": id}, nil
}

type createChildUnitReq struct {
	unitReq
	ParentId int64 `json:"parentId"`
}

func (ar *adminRoutes) createCollege(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createChildUnitReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name == "" || req.Slug == "" || req.ParentId == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "name, slug and parentId are required",
		}
	}
	id, err := ar.db.CreateCollege(c, req.ParentId, req.Name, req.Slug)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.taxonomy.Refresh(c)
	return gin.H{"id": id}, nil
}

func (ar *adminRoutes) createProgram(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createChildUnitReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name == "" || req.Slug == "" || req.ParentId == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "name, slug and parentId are required",
		}
	}
	id, err := ar.db.CreateProgram(c, req.ParentId, req.Name, req.Slug)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.taxonomy.Refresh(c)
	return gin.H{"id": id}, nil
}

func (ar *adminRoutes) renameCampus(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.renameUnit(c, ar.db.RenameCampus)
}

func (ar *adminRoutes) renameCollege(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.renameUnit(c, ar.db.RenameCollege)
}

func (ar *adminRoutes) renameProgram(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.renameUnit(c, ar.db.RenameProgram)
}

func (ar *adminRoutes) renameUnit(c *gin.Context, rename func(ctx context.Context, id int64, name, slug string) error) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	req, httpErr := ar.bindUnitReq(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := rename(c, id, req.Name, req.Slug); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, util.BuildNotFoundHTTPErr("unit")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.taxonomy.Refresh(c)
	return nil, nil
}

func (ar *adminRoutes) deleteCampus(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.deleteUnit(c, ar.db.MarkCampusAsDeleted)
}

func (ar *adminRoutes) deleteCollege(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.deleteUnit(c, ar.db.MarkCollegeAsDeleted)
}

func (ar *adminRoutes) deleteProgram(c *gin.Context) (interface{}, *util.HTTPError) {
	return ar.deleteUnit(c, ar.db.MarkProgramAsDeleted)
}

func (ar *adminRoutes) deleteUnit(c *gin.Context, markDeleted func(ctx context.Context, id int64) error) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := markDeleted(c, id); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, util.BuildNotFoundHTTPErr("unit")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.taxonomy.Refresh(c)
	return nil, nil
}

type createProfessorReq struct {
	Name      string `json:"name"`
	CollegeId int64  `json:"collegeId"`
}

func (ar *adminRoutes) createProfessor(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createProfessorReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name == "" || req.CollegeId == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "name and collegeId are required",
		}
	}
	id, err := ar.db.CreateProfessor(c, req.Name, req.CollegeId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}

type renameProfessorReq struct {
	Name string `json:"name"`
}

func (ar *adminRoutes) renameProfessor(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req renameProfessorReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "name is required",
		}
	}
	if err := ar.db.RenameProfessor(c, id, req.Name); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, util.BuildNotFoundHTTPErr("professor")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ar *adminRoutes) deleteProfessor(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := ar.db.MarkProfessorAsDeleted(c, id); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, util.BuildNotFoundHTTPErr("professor")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

type createCourseReq struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	ProgramId int64  `json:"programId"`
}

func (ar *adminRoutes) createCourse(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createCourseReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Code == "" || req.Name == "" || req.ProgramId == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "code, name and programId are required",
		}
	}
	id, err := ar.db.CreateCourse(c, req.Code, req.Name, req.ProgramId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}

func (ar *adminRoutes) deleteCourse(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := ar.db.MarkCourseAsDeleted(c, id); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, util.BuildNotFoundHTTPErr("course")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ar *adminRoutes) assignCourse(c *gin.Context) (interface{}, *util.HTTPError) {
	professorId, courseId, httpErr := parseProfessorCourseIds(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := ar.db.AssignProfessorToCourse(c, professorId, courseId); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ar *adminRoutes) unassignCourse(c *gin.Context) (interface{}, *util.HTTPError) {
	professorId, courseId, httpErr := parseProfessorCourseIds(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := ar.db.UnassignProfessorFromCourse(c, professorId, courseId); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, util.BuildNotFoundHTTPErr("assignment")
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func parseProfessorCourseIds(c *gin.Context) (int64, int64, *util.HTTPError) {
	professorId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return 0, 0, httpErr
	}
	courseId, httpErr := util.ParseId(c.Param("courseId"))
	if httpErr != nil {
		return 0, 0, httpErr
	}
	return professorId, courseId, nil
}

func (ar *adminRoutes) setBanned(banned bool) util.Handler {
	return func(c *gin.Context) (interface{}, *util.HTTPError) {
		targetId := c.Param("id")
		if targetId == middleware.MustGetUser(c).Id {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "cannot ban yourself",
			}
		}
		target, err := ar.db.GetUser(c, targetId)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		if target == nil {
			return nil, util.BuildNotFoundHTTPErr("user")
		}
		if err := ar.db.SetUserBanned(c, targetId, banned); err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		return nil, nil
	}
}
