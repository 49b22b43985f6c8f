package routes

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/app"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
)

type chatRoutes struct {
	db db.Database
}

func AddChatRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := chatRoutes{db: database}
	chats := group.Group("/chats",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	chats.PUT("", util.HandlerWrapper(routes.openRoom, &util.HandlerOpts{}))
	chats.GET("", util.HandlerWrapper(routes.getRooms, &util.HandlerOpts{}))
	chats.PUT("/:id/messages", util.HandlerWrapper(routes.sendMessage, &util.HandlerOpts{}))
	chats.GET("/:id/messages", util.HandlerWrapper(routes.getMessages, &util.HandlerOpts{}))
}

type openRoomReq struct {
	UserId string `json:"userId"`
}

func (cr *chatRoutes) openRoom(c *gin.Context) (interface{}, *util.HTTPError) {
	var req openRoomReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	user := middleware.MustGetUser(c)
	if req.UserId == user.Id {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "cannot open a chat with yourself",
		}
	}
	other, err := cr.db.GetUser(c, req.UserId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if other == nil {
		return nil, util.BuildNotFoundHTTPErr("user")
	}

	roomId, err := cr.db.OpenRoom(c, user.Id, other.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": roomId,
	}, nil
}

func (cr *chatRoutes) getRooms(c *gin.Context) (interface{}, *util.HTTPError) {
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}
	userId := middleware.MustGetUser(c).Id
	page, err := app.Paginate(c, cursor, app.DefaultPageSize,
		func(ctx context.Context, limit, offset int) ([]*model.Room, error) {
			return cr.db.GetRoomsForUser(ctx, userId, limit, offset)
		})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &gin.H{
		"rooms":      page.Items,
		"nextCursor": page.NextCursor,
	}, nil
}

type sendMessageReq struct {
	Content string `json:"content"`
}

func (cr *chatRoutes) sendMessage(c *gin.Context) (interface{}, *util.HTTPError) {
	var req sendMessageReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	content := util.XSSSanitize(req.Content)
	if len(content) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "message must have content",
		}
	}
	roomId, httpErr := cr.mustGetMemberRoomId(c)
	if httpErr != nil {
		return nil, httpErr
	}
	id, err := cr.db.CreateMessage(c, roomId, middleware.MustGetUser(c).Id, content)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (cr *chatRoutes) getMessages(c *gin.Context) (interface{}, *util.HTTPError) {
	roomId, httpErr := cr.mustGetMemberRoomId(c)
	if httpErr != nil {
		return nil, httpErr
	}
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}
	page, err := app.Paginate(c, cursor, app.DefaultPageSize,
		func(ctx context.Context, limit, offset int) ([]*model.Message, error) {
			return cr.db.GetMessages(ctx, roomId, limit, offset)
		})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &gin.H{
		"messages":   page.Items,
		"nextCursor": page.NextCursor,
	}, nil
}

func (cr *chatRoutes) mustGetMemberRoomId(c *gin.Context) (int64, *util.HTTPError) {
	roomId, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return 0, httpErr
	}
	isMember, err := cr.db.IsRoomMember(c, roomId, middleware.MustGetUser(c).Id)
	if err != nil {
		return 0, util.BuildDbHTTPErr(err)
	}
	if !isMember {
		return 0, util.BuildForbiddenHTTPErr()
	}
	return roomId, nil
}
