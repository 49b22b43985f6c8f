package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
)

type followRoutes struct {
	db db.Database
}

func AddFollowRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := followRoutes{db: database}
	follows := group.Group("/follows",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	follows.POST("/:id", util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	follows.DELETE("/:id", util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
}

func (fr *followRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	target, httpErr := fr.mustGetTarget(c, user)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := fr.db.CreateFollow(c, user.Id, target.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	notify(c, fr.db, target.Id, user.Id, model.NotificationTypeFollow, user.Id)
	return nil, nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	target, httpErr := fr.mustGetTarget(c, user)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := fr.db.DeleteFollow(c, user.Id, target.Id); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "user is not followed",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (fr *followRoutes) mustGetTarget(c *gin.Context, user *model.User) (*model.User, *util.HTTPError) {
	targetId := c.Param("id")
	if targetId == user.Id {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "cannot follow yourself",
		}
	}
	target, err := fr.db.GetUser(c, targetId)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if target == nil {
		return nil, util.BuildNotFoundHTTPErr("user")
	}
	return target, nil
}
