package routes

import (
	"log"
	"net/http"
	"strconv"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/app"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/services"
	"github.com/kabsu-me/kabsu-be/util"
)

type postRoutes struct {
	db         db.Database
	userBucket *services.StorageBucket
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, userBucket *services.StorageBucket) {
	routes := postRoutes{db: database, userBucket: userBucket}
	posts := group.Group("/posts",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	posts.GET("", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
	posts.PUT("", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.PATCH("/:id", util.HandlerWrapper(routes.updatePost, &util.HandlerOpts{}))
	posts.DELETE("/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.POST("/:id/likes", util.HandlerWrapper(routes.likePost, &util.HandlerOpts{}))
	posts.DELETE("/:id/likes", util.HandlerWrapper(routes.unlikePost, &util.HandlerOpts{}))
	posts.PUT("/:id/comments", util.HandlerWrapper(routes.createComment, &util.HandlerOpts{}))
	posts.GET("/:id/comments", util.HandlerWrapper(routes.getComments, &util.HandlerOpts{}))

	comments := group.Group("/comments",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	comments.DELETE("/:id", util.HandlerWrapper(routes.deleteComment, &util.HandlerOpts{}))
}

func (pr *postRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	scope, ok := model.ParsePostType(c.DefaultQuery("scope", "all"))
	if !ok {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "unknown feed scope",
		}
	}
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}

	page, err := app.GetFeed(c, pr.db, middleware.MustGetUser(c), scope, cursor)
	if err != nil {
		if err == app.ErrViewerHasNoProgram {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	pr.enrichImageUrls(page.Items)

	return &gin.H{
		"posts":      page.Items,
		"nextCursor": page.NextCursor,
	}, nil
}

type createPostReq struct {
	Content        string   `json:"content"`
	Type           string   `json:"type"`
	ImageBlobNames []string `json:"imageBlobNames"`
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createPostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	postType, ok := model.ParsePostType(req.Type)
	if !ok {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "unknown post type",
		}
	}
	content := util.XSSSanitize(req.Content)
	if len(content) == 0 && len(req.ImageBlobNames) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "post must have content or images",
		}
	}
	for _, blobName := range req.ImageBlobNames {
		exists, err := pr.userBucket.Exists(c, blobName)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		if !exists {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "image upload not found",
			}
		}
	}

	user := middleware.MustGetUser(c)
	id, err := pr.db.CreatePost(c, &db.CreatePost{
		AuthorId:       user.Id,
		Type:           postType,
		Content:        content,
		ImageBlobNames: req.ImageBlobNames,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	notifyMentions(c, pr.db, content, user.Id, strconv.FormatInt(id, 10))
	return gin.H{
		"id": id,
	}, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	pr.enrichImageUrls([]*model.Post{post})
	return post, nil
}

type updatePostReq struct {
	Content string `json:"content"`
}

func (pr *postRoutes) updatePost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req updatePostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if post.Author.Id != middleware.MustGetUser(c).Id {
		return nil, util.BuildForbiddenHTTPErr()
	}
	if err := pr.db.UpdatePostContent(c, post.Id, util.XSSSanitize(req.Content)); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	if post.Author.Id != user.Id && !user.IsAdmin {
		return nil, util.BuildForbiddenHTTPErr()
	}
	if err := pr.db.MarkPostAsDeleted(c, post.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (pr *postRoutes) likePost(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	user := middleware.MustGetUser(c)
	if err := pr.db.CreateLike(c, post.Id, user.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	notify(c, pr.db, post.Author.Id, user.Id, model.NotificationTypeLike, strconv.FormatInt(post.Id, 10))
	return nil, nil
}

func (pr *postRoutes) unlikePost(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if err := pr.db.DeleteLike(c, post.Id, middleware.MustGetUser(c).Id); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "post is not liked",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

type createCommentReq struct {
	Content  string `json:"content"`
	ParentId int64  `json:"parentId"`
}

func (pr *postRoutes) createComment(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	content := util.XSSSanitize(req.Content)
	if len(content) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "comment must have content",
		}
	}
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}

	notifyUserId := post.Author.Id
	notificationType := model.NotificationTypeComment
	if req.ParentId != 0 {
		parent, err := pr.db.GetCommentById(c, req.ParentId)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
		if parent == nil || parent.PostId != post.Id {
			return nil, util.BuildNotFoundHTTPErr("parent comment")
		}
		notifyUserId = parent.Author.Id
		notificationType = model.NotificationTypeReply
	}

	user := middleware.MustGetUser(c)
	id, err := pr.db.CreateComment(c, &db.CreateComment{
		PostId:   post.Id,
		AuthorId: user.Id,
		ParentId: req.ParentId,
		Content:  content,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	notify(c, pr.db, notifyUserId, user.Id, notificationType, strconv.FormatInt(post.Id, 10))
	notifyMentions(c, pr.db, content, user.Id, strconv.FormatInt(post.Id, 10))
	return gin.H{
		"id": id,
	}, nil
}

func (pr *postRoutes) deleteComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	comment, err := pr.db.GetCommentById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if comment == nil {
		return nil, util.BuildNotFoundHTTPErr("comment")
	}
	user := middleware.MustGetUser(c)
	if comment.Author.Id != user.Id && !user.IsAdmin {
		return nil, util.BuildForbiddenHTTPErr()
	}
	if err := pr.db.MarkCommentAsDeleted(c, comment.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (pr *postRoutes) getComments(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.mustGetPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	forest, err := pr.db.GetCommentForest(c, post.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return forest, nil
}

func (pr *postRoutes) mustGetPost(c *gin.Context) (*model.Post, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id, &db.PostQueryOpts{
		LikeHistoryOf: middleware.MustGetUser(c).Id,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.BuildNotFoundHTTPErr("post")
	}
	return post, nil
}

// enrichImageUrls resolves blob names to signed urls. A failed resolution is
// logged and skipped; post selection never depends on it.
func (pr *postRoutes) enrichImageUrls(posts []*model.Post) {
	for _, post := range posts {
		if len(post.ImageBlobNames) == 0 {
			continue
		}
		urls, err := pr.userBucket.SignedUrls(post.ImageBlobNames)
		if err != nil {
			log.Println("an error occurred while signing image urls", err)
			continue
		}
		post.ImageUrls = urls
	}
}
