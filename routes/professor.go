package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/util"
)

type professorRoutes struct {
	db db.Database
}

func AddProfessorRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := professorRoutes{db: database}
	professors := group.Group("/professors",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	professors.GET("", util.HandlerWrapper(routes.searchProfessors, &util.HandlerOpts{}))
}

func (pr *professorRoutes) searchProfessors(c *gin.Context) (interface{}, *util.HTTPError) {
	query := &db.ProfessorSearchQuery{Name: c.Query("q")}
	if raw := c.Query("collegeId"); raw != "" {
		id, httpErr := util.ParseId(raw)
		if httpErr != nil {
			return nil, httpErr
		}
		query.CollegeId = id
	}
	if raw := c.Query("courseId"); raw != "" {
		id, httpErr := util.ParseId(raw)
		if httpErr != nil {
			return nil, httpErr
		}
		query.CourseId = id
	}
	professors, err := pr.db.SearchProfessors(c, query)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"professors": professors,
	}, nil
}
