package routes

import (
	"context"
	"net/http"
	"regexp"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/app"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/services"
	"github.com/kabsu-me/kabsu-be/util"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)

type userRoutes struct {
	db         db.Database
	userBucket *services.StorageBucket
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, userBucket *services.StorageBucket) {
	routes := userRoutes{db: database, userBucket: userBucket}

	users := group.Group("/users", middleware.GenAuth(database, authClient, middleware.OptionalAccount()))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))

	account := group.Group("/users",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	account.GET("/search", util.HandlerWrapper(routes.searchUsers, &util.HandlerOpts{}))
	account.PATCH("", util.HandlerWrapper(routes.updateUser, &util.HandlerOpts{}))
	account.POST("/deactivate", util.HandlerWrapper(routes.deactivate, &util.HandlerOpts{}))
	account.POST("/reactivate", util.HandlerWrapper(routes.reactivate, &util.HandlerOpts{}))
	account.GET("/:username", util.HandlerWrapper(routes.getUserByUsername, &util.HandlerOpts{}))
	account.GET("/:username/posts", util.HandlerWrapper(routes.getUserPosts, &util.HandlerOpts{}))
	account.GET("/:username/followers", util.HandlerWrapper(routes.getFollowers, &util.HandlerOpts{}))
	account.GET("/:username/following", util.HandlerWrapper(routes.getFollowing, &util.HandlerOpts{}))
}

type createUserReq struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	ProgramId   int64  `json:"programId"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if middleware.GetUserMaybe(c) != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "profile already exists",
		}
	}
	if !usernamePattern.MatchString(req.Username) {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "username must be 3-30 characters of letters, digits, _ or .",
		}
	}
	role := model.Role(req.Role)
	switch role {
	case model.RoleStudent, model.RoleFaculty, model.RoleAlumni:
	default:
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "unknown role",
		}
	}
	if path, err := ur.db.GetProgramPath(c, req.ProgramId); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	} else if path == nil {
		return nil, util.BuildNotFoundHTTPErr("program")
	}

	if err := ur.db.CreateUser(c, &db.CreateUser{
		Id:          middleware.MustGetToken(c).UID,
		Username:    req.Username,
		DisplayName: util.XSSSanitize(req.DisplayName),
		Role:        role,
		ProgramId:   req.ProgramId,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

type updateUserReq struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	ProgramId   *int64  `json:"programId"`
}

func (ur *userRoutes) updateUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req updateUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.DisplayName != nil {
		sanitized := util.XSSSanitize(*req.DisplayName)
		req.DisplayName = &sanitized
	}
	if req.Bio != nil {
		sanitized := util.XSSSanitize(*req.Bio)
		req.Bio = &sanitized
	}
	if req.ProgramId != nil {
		if path, err := ur.db.GetProgramPath(c, *req.ProgramId); err != nil {
			return nil, util.BuildDbHTTPErr(err)
		} else if path == nil {
			return nil, util.BuildNotFoundHTTPErr("program")
		}
	}
	if err := ur.db.UpdateUser(c, middleware.MustGetUser(c).Id, &db.UpdateUser{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		ProgramId:   req.ProgramId,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ur *userRoutes) deactivate(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := ur.db.SetUserDeactivated(c, middleware.MustGetUser(c).Id, true); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ur *userRoutes) reactivate(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := ur.db.SetUserDeactivated(c, middleware.MustGetUser(c).Id, false); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ur *userRoutes) searchUsers(c *gin.Context) (interface{}, *util.HTTPError) {
	query := c.Query("q")
	if len(query) < 2 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "query must be at least 2 characters",
		}
	}
	users, err := ur.db.SearchUsers(c, query, 25)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return users, nil
}

func (ur *userRoutes) getUserByUsername(c *gin.Context) (interface{}, *util.HTTPError) {
	target, httpErr := ur.mustGetUserByUsername(c)
	if httpErr != nil {
		return nil, httpErr
	}
	viewer := middleware.MustGetUser(c)
	isFollowing := false
	if viewer.Id != target.Id {
		follow, err := ur.db.GetFollow(c, viewer.Id, target.Id)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		isFollowing = follow != nil
	}
	return &gin.H{
		"user":        target,
		"isFollowing": isFollowing,
	}, nil
}

func (ur *userRoutes) getUserPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	target, httpErr := ur.mustGetUserByUsername(c)
	if httpErr != nil {
		return nil, httpErr
	}
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}
	page, err := app.GetUserPosts(c, ur.db, middleware.MustGetUser(c), target, cursor)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &gin.H{
		"posts":      page.Items,
		"nextCursor": page.NextCursor,
	}, nil
}

func (ur *userRoutes) getFollowers(c *gin.Context) (interface{}, *util.HTTPError) {
	return ur.getFollowEdgePage(c, ur.db.GetFollowers)
}

func (ur *userRoutes) getFollowing(c *gin.Context) (interface{}, *util.HTTPError) {
	return ur.getFollowEdgePage(c, ur.db.GetFollowing)
}

func (ur *userRoutes) getFollowEdgePage(
	c *gin.Context,
	fetch func(ctx context.Context, userId string, limit, offset int) ([]*model.User, error),
) (interface{}, *util.HTTPError) {
	target, httpErr := ur.mustGetUserByUsername(c)
	if httpErr != nil {
		return nil, httpErr
	}
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}
	page, err := app.Paginate(c, cursor, app.DefaultPageSize,
		func(ctx context.Context, limit, offset int) ([]*model.User, error) {
			return fetch(ctx, target.Id, limit, offset)
		})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &gin.H{
		"users":      page.Items,
		"nextCursor": page.NextCursor,
	}, nil
}

func (ur *userRoutes) mustGetUserByUsername(c *gin.Context) (*model.User, *util.HTTPError) {
	user, err := ur.db.GetUserByUsername(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, util.BuildNotFoundHTTPErr("user")
	}
	return user, nil
}
