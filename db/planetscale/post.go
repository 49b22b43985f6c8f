package planetscale

import (
	"context"
	"encoding/json"
	"time"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/db/dao"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/kabsu-me/kabsu-be/util"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	var postId int64
	err := pdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto("post").
			Columns("author_id", "type", "content").
			Values(req.AuthorId, req.Type, req.Content).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		postId, err = res.LastInsertId()
		if err != nil {
			return err
		}
		if len(req.ImageBlobNames) == 0 {
			return nil
		}

		batchInserter := sess.SQL().
			InsertInto("post_image").
			Columns("post_id", "blob_name").
			Batch(len(req.ImageBlobNames))
		for _, blobName := range req.ImageBlobNames {
			batchInserter.Values(postId, blobName)
		}
		batchInserter.Done()
		return batchInserter.Wait()
	}, nil)
	return postId, err
}

func (pdb *PostDB) UpdatePostContent(ctx context.Context, id int64, content string) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set("content", content).
		Where("id = ? AND deleted_at IS NULL", id).
		ExecContext(ctx)
	return err
}

func (pdb *PostDB) MarkPostAsDeleted(ctx context.Context, id int64) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set("deleted_at", db.Raw("NOW()")).
		Where("id = ? AND deleted_at IS NULL", id).
		ExecContext(ctx)
	return err
}

type flattenedAuthor struct {
	AuthorId          string        `db:"author_id"`
	AuthorUsername    string        `db:"username"`
	AuthorDisplayName string        `db:"author_display_name"`
	AuthorRole        model.Role    `db:"role"`
	AuthorProgramId   dao.NullInt64 `db:"author_program_id"`
}

type flattenedPost struct {
	flattenedAuthor   `db:",inline"`
	Id                int64          `db:"id"`
	Type              model.PostType `db:"type"`
	Content           string         `db:"content"`
	ImageBlobNamesStr dao.NullString `db:"image_blob_names"`
	NumLikes          int            `db:"num_likes"`
	NumComments       int            `db:"num_comments"`
	LikedByViewer     bool           `db:"liked_by_viewer"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

var postColumns = []interface{}{
	"p.id",
	"p.type",
	"p.content",
	"p.created_at",
	"p.updated_at",
	"person.firebase_id as author_id",
	"person.username",
	"person.display_name as author_display_name",
	"person.role",
	"person.program_id as author_program_id",
	db.Raw("(SELECT JSON_ARRAYAGG(pi.blob_name) FROM post_image AS pi WHERE pi.post_id = p.id) AS image_blob_names"),
	db.Raw("(SELECT COUNT(*) FROM post_like AS pl WHERE pl.post_id = p.id) AS num_likes"),
	db.Raw("(SELECT COUNT(*) FROM comment AS c WHERE c.post_id = p.id AND c.deleted_at IS NULL) AS num_comments"),
}

func likedByViewerColumn(viewerId string) *db.RawExpr {
	return db.Raw("EXISTS(SELECT 1 FROM post_like AS plv WHERE plv.post_id = p.id AND plv.user_id = ?) AS liked_by_viewer", viewerId)
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64, opts *appDb.PostQueryOpts) (*model.Post, error) {
	columns := postColumns
	if opts != nil && opts.LikeHistoryOf != "" {
		columns = append(columns[:len(columns):len(columns)], likedByViewerColumn(opts.LikeHistoryOf))
	}
	var post flattenedPost
	if err := pdb.sess.SQL().
		Select(columns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		Where("p.id = ? AND p.deleted_at IS NULL", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post)
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *appDb.PostsListQuery) ([]*model.Post, error) {
	columns := postColumns
	if query.PostsListQueryOpts != nil && query.LikeHistoryOf != "" {
		columns = append(columns[:len(columns):len(columns)], likedByViewerColumn(query.LikeHistoryOf))
	}

	selector := pdb.sess.SQL().
		Select(columns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id")

	if query.Org != nil {
		selector = selector.Join("program AS pr").On("person.program_id = pr.id")
		if query.Org.Level == model.PostTypeCampus {
			selector = selector.Join("college AS co").On("pr.college_id = co.id")
		}
	}

	selector = selector.Where("p.deleted_at IS NULL")
	if len(query.Types) > 0 {
		selector = selector.And("p.type IN ?", query.Types)
	}
	if query.AuthorIds != nil {
		selector = selector.And("p.author_id IN ?", query.AuthorIds)
	}
	if query.Org != nil {
		switch query.Org.Level {
		case model.PostTypeProgram:
			selector = selector.And("pr.id = ?", query.Org.UnitId)
		case model.PostTypeCollege:
			selector = selector.And("pr.college_id = ?", query.Org.UnitId)
		case model.PostTypeCampus:
			selector = selector.And("co.campus_id = ?", query.Org.UnitId)
		}
	}

	selector = selector.OrderBy("p.created_at DESC", "p.id DESC")
	if query.PostsListQueryOpts != nil {
		if query.Limit > 0 {
			selector = selector.Limit(query.Limit)
		}
		if query.Offset > 0 {
			selector = selector.Offset(query.Offset)
		}
	}

	var flattenedPosts []flattenedPost
	if err := selector.
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i, flattened := range flattenedPosts {
		post, err := buildPostFromFlattened(&flattened)
		if err != nil {
			return nil, err
		}
		posts[i] = post
	}
	return posts, nil
}

func buildPostFromFlattened(post *flattenedPost) (*model.Post, error) {
	imageBlobNames := []string{}
	if raw := post.ImageBlobNamesStr.AsString(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &imageBlobNames); err != nil {
			return nil, err
		}
	}
	return &model.Post{
		Id:             post.Id,
		Author:         buildAuthorFromFlattened(&post.flattenedAuthor),
		Type:           post.Type,
		Content:        post.Content,
		ImageBlobNames: imageBlobNames,
		NumLikes:       post.NumLikes,
		NumComments:    post.NumComments,
		LikedByViewer:  post.LikedByViewer,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}, nil
}

func buildAuthorFromFlattened(author *flattenedAuthor) *model.User {
	return &model.User{
		Id:          author.AuthorId,
		Username:    author.AuthorUsername,
		DisplayName: author.AuthorDisplayName,
		Role:        author.AuthorRole,
		ProgramId:   author.AuthorProgramId.AsInt(),
		Avatar:      util.Avatar(author.AuthorId),
	}
}

type flattenedComment struct {
	flattenedAuthor `db:",inline"`
	Id              int64         `db:"id"`
	PostId          int64         `db:"post_id"`
	ParentId        dao.NullInt64 `db:"parent_id"`
	Content         string        `db:"content"`
	CreatedAt       time.Time     `db:"created_at"`
}

var commentColumns = []interface{}{
	"c.id",
	"c.post_id",
	"c.parent_id",
	"c.content",
	"c.created_at",
	"person.firebase_id as author_id",
	"person.username",
	"person.display_name as author_display_name",
	"person.role",
	"person.program_id as author_program_id",
}

func (pdb *PostDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	var parentId interface{}
	if req.ParentId != 0 {
		parentId = req.ParentId
	}
	res, err := pdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "parent_id", "content").
		Values(req.PostId, req.AuthorId, parentId, req.Content).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	var comment flattenedComment
	if err := pdb.sess.SQL().
		Select(commentColumns...).
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.id = ? AND c.deleted_at IS NULL", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildCommentFromFlattened(&comment), nil
}

func (pdb *PostDB) GetCommentForest(ctx context.Context, postId int64) ([]*model.CommentTree, error) {
	var flattenedComments []flattenedComment
	if err := pdb.sess.SQL().
		Select(commentColumns...).
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ? AND c.deleted_at IS NULL", postId).
		OrderBy("c.created_at").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		comments[i] = buildCommentFromFlattened(&flattened)
	}
	return buildCommentForest(comments), nil
}

func (pdb *PostDB) MarkCommentAsDeleted(ctx context.Context, id int64) error {
	_, err := pdb.sess.SQL().
		Update("comment").
		Set("deleted_at", db.Raw("NOW()")).
		Where("id = ? AND deleted_at IS NULL", id).
		ExecContext(ctx)
	return err
}

func buildCommentFromFlattened(comment *flattenedComment) *model.Comment {
	return &model.Comment{
		Id:        comment.Id,
		PostId:    comment.PostId,
		Author:    buildAuthorFromFlattened(&comment.flattenedAuthor),
		ParentId:  comment.ParentId.AsInt(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// buildCommentForest nests replies under their parents. Comments arrive
// ordered by creation time, so children stay in order within each node.
func buildCommentForest(comments []*model.Comment) []*model.CommentTree {
	adj := make(map[int64][]*model.Comment)
	for _, comment := range comments {
		adj[comment.ParentId] = append(adj[comment.ParentId], comment)
	}
	return buildCommentForestFromAdjList(adj, 0)
}

func buildCommentForestFromAdjList(adj map[int64][]*model.Comment, parentId int64) []*model.CommentTree {
	comments, ok := adj[parentId]
	if !ok {
		return []*model.CommentTree{}
	}
	forest := make([]*model.CommentTree, len(comments))
	for i, comment := range comments {
		forest[i] = &model.CommentTree{
			Comment:  comment,
			Children: buildCommentForestFromAdjList(adj, comment.Id),
		}
	}
	return forest
}

func (pdb *PostDB) CreateLike(ctx context.Context, postId int64, userId string) error {
	_, err := pdb.sess.SQL().
		InsertInto("post_like").
		Columns("post_id", "user_id").
		Values(postId, userId).
		ExecContext(ctx)
	return err
}

func (pdb *PostDB) DeleteLike(ctx context.Context, postId int64, userId string) error {
	res, err := pdb.sess.SQL().
		DeleteFrom("post_like").
		Where("post_id = ? AND user_id = ?", postId, userId).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appDb.ErrNoRowsAffected
	}
	return nil
}
