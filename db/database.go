package db

import (
	"context"
	"database/sql"

	"github.com/kabsu-me/kabsu-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	UserDatabase
	PostDatabase
	FollowDatabase
	TaxonomyDatabase
	ChatDatabase
	NglDatabase
	ProfessorDatabase
	NotificationDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreateUser struct {
	Id          string
	Username    string
	DisplayName string
	Role        model.Role
	ProgramId   int64
}

type UpdateUser struct {
	DisplayName *string
	Bio         *string
	ProgramId   *int64
}

type UserDatabase interface {
	CreateUser(ctx context.Context, req *CreateUser) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUser) error
	SearchUsers(ctx context.Context, query string, limit int) ([]*model.User, error)
	SetUserDeactivated(ctx context.Context, id string, deactivated bool) error
	SetUserBanned(ctx context.Context, id string, banned bool) error
}

type CreatePost struct {
	AuthorId       string
	Type           model.PostType
	Content        string
	ImageBlobNames []string
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	ParentId int64 // 0 for top-level comments
	Content  string
}

// OrgFilter restricts posts to authors whose org unit at Level equals UnitId.
type OrgFilter struct {
	Level  model.PostType
	UnitId int64
}

type PostsListQueryOpts struct {
	Limit         int
	Offset        int
	LikeHistoryOf string // viewer id for the likedByViewer column; empty skips it
}

type PostsListQuery struct {
	Types     []model.PostType
	AuthorIds []string
	Org       *OrgFilter
	*PostsListQueryOpts
}

type PostQueryOpts struct {
	LikeHistoryOf string
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	GetPostById(ctx context.Context, id int64, opts *PostQueryOpts) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.Post, error)
	UpdatePostContent(ctx context.Context, id int64, content string) error
	MarkPostAsDeleted(ctx context.Context, id int64) error
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentById(ctx context.Context, id int64) (*model.Comment, error)
	GetCommentForest(ctx context.Context, postId int64) ([]*model.CommentTree, error)
	MarkCommentAsDeleted(ctx context.Context, id int64) error
	CreateLike(ctx context.Context, postId int64, userId string) error
	DeleteLike(ctx context.Context, postId int64, userId string) error
}

type FollowDatabase interface {
	CreateFollow(ctx context.Context, followerId, followeeId string) error
	DeleteFollow(ctx context.Context, followerId, followeeId string) error
	GetFollow(ctx context.Context, followerId, followeeId string) (*model.Follow, error)
	GetFollowingIds(ctx context.Context, userId string) ([]string, error)
	GetFollowers(ctx context.Context, userId string, limit, offset int) ([]*model.User, error)
	GetFollowing(ctx context.Context, userId string, limit, offset int) ([]*model.User, error)
}

type TaxonomyDatabase interface {
	CreateCampus(ctx context.Context, name, slug string) (int64, error)
	CreateCollege(ctx context.Context, campusId int64, name, slug string) (int64, error)
	CreateProgram(ctx context.Context, collegeId int64, name, slug string) (int64, error)
	RenameCampus(ctx context.Context, id int64, name, slug string) error
	RenameCollege(ctx context.Context, id int64, name, slug string) error
	RenameProgram(ctx context.Context, id int64, name, slug string) error
	MarkCampusAsDeleted(ctx context.Context, id int64) error
	MarkCollegeAsDeleted(ctx context.Context, id int64) error
	MarkProgramAsDeleted(ctx context.Context, id int64) error
	GetCampuses(ctx context.Context) ([]*model.Campus, error)
	GetColleges(ctx context.Context) ([]*model.College, error)
	GetPrograms(ctx context.Context) ([]*model.Program, error)
	GetProgramPath(ctx context.Context, programId int64) (*model.ProgramPath, error)
}

type ChatDatabase interface {
	// OpenRoom finds the existing one-to-one room for the pair or creates it.
	OpenRoom(ctx context.Context, userId, otherUserId string) (roomId int64, err error)
	GetRoomsForUser(ctx context.Context, userId string, limit, offset int) ([]*model.Room, error)
	IsRoomMember(ctx context.Context, roomId int64, userId string) (bool, error)
	CreateMessage(ctx context.Context, roomId int64, senderId, content string) (messageId int64, err error)
	GetMessages(ctx context.Context, roomId int64, limit, offset int) ([]*model.Message, error)
}

type CreateNglQuestion struct {
	Id       string
	UserId   string
	Content  string
	CodeName string
}

type NglDatabase interface {
	CreateNglQuestion(ctx context.Context, req *CreateNglQuestion) error
	GetNglQuestionById(ctx context.Context, id string) (*model.NglQuestion, error)
	GetNglInbox(ctx context.Context, userId string, limit, offset int) ([]*model.NglQuestion, error)
	CreateNglAnswer(ctx context.Context, questionId, content string) (int64, error)
	MarkNglQuestionAsDeleted(ctx context.Context, id string) error
}

type ProfessorSearchQuery struct {
	Name      string
	CollegeId int64
	CourseId  int64
	Limit     int
}

type ProfessorDatabase interface {
	CreateProfessor(ctx context.Context, name string, collegeId int64) (int64, error)
	RenameProfessor(ctx context.Context, id int64, name string) error
	MarkProfessorAsDeleted(ctx context.Context, id int64) error
	CreateCourse(ctx context.Context, code, name string, programId int64) (int64, error)
	MarkCourseAsDeleted(ctx context.Context, id int64) error
	AssignProfessorToCourse(ctx context.Context, professorId, courseId int64) error
	UnassignProfessorFromCourse(ctx context.Context, professorId, courseId int64) error
	SearchProfessors(ctx context.Context, query *ProfessorSearchQuery) ([]*model.Professor, error)
}

type CreateNotification struct {
	ToUserId   string
	FromUserId string // empty for anonymous sources
	Type       model.NotificationType
	ContentId  string
}

type NotificationDatabase interface {
	CreateNotification(ctx context.Context, req *CreateNotification) (int64, error)
	GetNotificationsForUser(ctx context.Context, userId string, limit, offset int) ([]*model.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id int64, userId string) error
	MarkAllNotificationsAsRead(ctx context.Context, userId string) error
}
