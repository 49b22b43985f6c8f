package routes

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kabsu-me/kabsu-be/app"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
)

type nglRoutes struct {
	db db.Database
}

func AddNglRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := nglRoutes{db: database}

	// question submission is anonymous: no auth at all
	group.POST("/ngl/:username", util.HandlerWrapper(routes.submitQuestion, &util.HandlerOpts{}))

	inbox := group.Group("/ngl",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	inbox.GET("", util.HandlerWrapper(routes.getInbox, &util.HandlerOpts{}))
	inbox.PUT("/:id/answer", util.HandlerWrapper(routes.answerQuestion, &util.HandlerOpts{}))
	inbox.DELETE("/:id", util.HandlerWrapper(routes.deleteQuestion, &util.HandlerOpts{}))
}

type submitQuestionReq struct {
	Content string `json:"content"`
}

func (nr *nglRoutes) submitQuestion(c *gin.Context) (interface{}, *util.HTTPError) {
	var req submitQuestionReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	content := util.XSSSanitize(req.Content)
	if len(content) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "question must have content",
		}
	}
	target, err := nr.db.GetUserByUsername(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if target == nil || !target.IsActive() {
		return nil, util.BuildNotFoundHTTPErr("user")
	}

	question := &db.CreateNglQuestion{
		Id:       uuid.NewString(),
		UserId:   target.Id,
		Content:  content,
		CodeName: util.GenerateCodeName(),
	}
	if err := nr.db.CreateNglQuestion(c, question); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	notify(c, nr.db, target.Id, "", model.NotificationTypeNgl, question.Id)
	return nil, nil
}

func (nr *nglRoutes) getInbox(c *gin.Context) (interface{}, *util.HTTPError) {
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}
	userId := middleware.MustGetUser(c).Id
	page, err := app.Paginate(c, cursor, app.DefaultPageSize,
		func(ctx context.Context, limit, offset int) ([]*model.NglQuestion, error) {
			return nr.db.GetNglInbox(ctx, userId, limit, offset)
		})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &gin.H{
		"questions":  page.Items,
		"nextCursor": page.NextCursor,
	}, nil
}

type answerQuestionReq struct {
	Content string `json:"content"`
}

func (nr *nglRoutes) answerQuestion(c *gin.Context) (interface{}, *util.HTTPError) {
	var req answerQuestionReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	content := util.XSSSanitize(req.Content)
	if len(content) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "answer must have content",
		}
	}
	question, httpErr := nr.mustGetOwnQuestion(c)
	if httpErr != nil {
		return nil, httpErr
	}
	id, err := nr.db.CreateNglAnswer(c, question.Id, content)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (nr *nglRoutes) deleteQuestion(c *gin.Context) (interface{}, *util.HTTPError) {
	question, httpErr := nr.mustGetOwnQuestion(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := nr.db.MarkNglQuestionAsDeleted(c, question.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (nr *nglRoutes) mustGetOwnQuestion(c *gin.Context) (*model.NglQuestion, *util.HTTPError) {
	question, err := nr.db.GetNglQuestionById(c, c.Param("id"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if question == nil {
		return nil, util.BuildNotFoundHTTPErr("question")
	}
	if question.UserId != middleware.MustGetUser(c).Id {
		return nil, util.BuildForbiddenHTTPErr()
	}
	return question, nil
}
