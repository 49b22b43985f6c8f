package routes

import (
	"context"
	"log"
	"net/http"
	"regexp"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/kabsu-me/kabsu-be/app"
	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/middleware"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
)

type notificationRoutes struct {
	db db.Database
}

func AddNotificationRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client) {
	routes := notificationRoutes{db: database}
	notifications := group.Group("/notifications",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAccount())
	notifications.GET("", util.HandlerWrapper(routes.getNotifications, &util.HandlerOpts{}))
	notifications.POST("/:id/read", util.HandlerWrapper(routes.markAsRead, &util.HandlerOpts{}))
	notifications.POST("/read-all", util.HandlerWrapper(routes.markAllAsRead, &util.HandlerOpts{}))
}

func (nr *notificationRoutes) getNotifications(c *gin.Context) (interface{}, *util.HTTPError) {
	cursor, httpErr := util.ParseCursor(c.Query("cursor"))
	if httpErr != nil {
		return nil, httpErr
	}
	userId := middleware.MustGetUser(c).Id
	page, err := app.Paginate(c, cursor, app.DefaultPageSize,
		func(ctx context.Context, limit, offset int) ([]*model.Notification, error) {
			return nr.db.GetNotificationsForUser(ctx, userId, limit, offset)
		})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return &gin.H{
		"notifications": page.Items,
		"nextCursor":    page.NextCursor,
	}, nil
}

func (nr *notificationRoutes) markAsRead(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := nr.db.MarkNotificationAsRead(c, id, middleware.MustGetUser(c).Id); err != nil {
		if err == db.ErrNoRowsAffected {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "notification missing or already read",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (nr *notificationRoutes) markAllAsRead(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := nr.db.MarkAllNotificationsAsRead(c, middleware.MustGetUser(c).Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

// notify records a notification for toUserId. Self-notifications are
// skipped; a failed insert is logged rather than failing the triggering
// write (single-row operations, no transactional grouping).
func notify(c context.Context, database db.NotificationDatabase, toUserId, fromUserId string, notificationType model.NotificationType, contentId string) {
	if toUserId == "" || toUserId == fromUserId {
		return
	}
	if _, err := database.CreateNotification(c, &db.CreateNotification{
		ToUserId:   toUserId,
		FromUserId: fromUserId,
		Type:       notificationType,
		ContentId:  contentId,
	}); err != nil {
		log.Println("an error occurred while creating a notification", err)
	}
}

var mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9_.]{3,30})`)

// extractMentions returns the usernames @-mentioned in content, de-duplicated
// in order of first appearance.
func extractMentions(content string) []string {
	seen := make(map[string]bool)
	var usernames []string
	for _, match := range mentionPattern.FindAllStringSubmatch(content, -1) {
		username := match[1]
		if seen[username] {
			continue
		}
		seen[username] = true
		usernames = append(usernames, username)
	}
	return usernames
}

// notifyMentions notifies every existing user @-mentioned in content.
// Unknown usernames are ignored.
func notifyMentions(c context.Context, database db.Database, content, fromUserId, contentId string) {
	for _, username := range extractMentions(content) {
		user, err := database.GetUserByUsername(c, username)
		if err != nil {
			log.Println("an error occurred while resolving a mention", err)
			continue
		}
		if user == nil {
			continue
		}
		notify(c, database, user.Id, fromUserId, model.NotificationTypeMention, contentId)
	}
}
