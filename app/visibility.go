package app

import (
	"context"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

// CanView decides whether viewer may see post, given the author's resolved
// org path and whether viewer follows the author. A FOLLOWING post is
// visible to the author's followers (and the author), not to everyone the
// author follows.
func CanView(viewer *model.User, post *model.Post, viewerPath, authorPath *model.ProgramPath, followsAuthor bool) bool {
	if post.DeletedAt != nil {
		return false
	}
	if post.Type == model.PostTypeAll {
		return true
	}
	if post.Author != nil && viewer.Id == post.Author.Id {
		return true
	}
	switch post.Type {
	case model.PostTypeFollowing:
		return followsAuthor
	case model.PostTypeProgram, model.PostTypeCollege, model.PostTypeCampus:
		if viewerPath == nil || authorPath == nil {
			return false
		}
		return viewerPath.UnitIdAtLevel(post.Type) == authorPath.UnitIdAtLevel(post.Type)
	}
	return false
}

// GetUserPosts pages through author's posts of every type and re-filters
// each one through CanView against the viewer's relationship to the author.
// The next cursor is computed from the unfiltered page size, so a filtered
// page may carry fewer than a full page of items and still have a cursor.
func GetUserPosts(ctx context.Context, database appDb.Database, viewer, author *model.User, cursor int) (*Page[*model.Post], error) {
	viewerPath, err := maybeResolvePath(ctx, database, viewer.ProgramId)
	if err != nil {
		return nil, err
	}
	authorPath, err := maybeResolvePath(ctx, database, author.ProgramId)
	if err != nil {
		return nil, err
	}

	followsAuthor := false
	if viewer.Id != author.Id {
		follow, err := database.GetFollow(ctx, viewer.Id, author.Id)
		if err != nil {
			return nil, err
		}
		followsAuthor = follow != nil
	}

	page, err := Paginate(ctx, cursor, DefaultPageSize, func(ctx context.Context, limit, offset int) ([]*model.Post, error) {
		return database.GetPosts(ctx, &appDb.PostsListQuery{
			AuthorIds: []string{author.Id},
			PostsListQueryOpts: &appDb.PostsListQueryOpts{
				Limit:         limit,
				Offset:        offset,
				LikeHistoryOf: viewer.Id,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	visible := page.Items[:0]
	for _, post := range page.Items {
		if CanView(viewer, post, viewerPath, authorPath, followsAuthor) {
			visible = append(visible, post)
		}
	}
	page.Items = visible
	return page, nil
}

func maybeResolvePath(ctx context.Context, database appDb.TaxonomyDatabase, programId int64) (*model.ProgramPath, error) {
	if programId == 0 {
		return nil, nil
	}
	return database.GetProgramPath(ctx, programId)
}
