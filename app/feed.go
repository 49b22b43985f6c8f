package app

import (
	"context"
	"errors"
	"fmt"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

var ErrViewerHasNoProgram = errors.New("viewer has no program membership")

// GetFeed returns the page of posts visible to viewer under the requested
// scope. Membership is re-resolved on every call; nothing is cached between
// pages, so concurrent page fetches for one viewer are independent reads.
func GetFeed(ctx context.Context, database appDb.Database, viewer *model.User, scope model.PostType, cursor int) (*Page[*model.Post], error) {
	query, err := feedQueryForScope(ctx, database, viewer, scope)
	if err != nil {
		return nil, err
	}
	return Paginate(ctx, cursor, DefaultPageSize, func(ctx context.Context, limit, offset int) ([]*model.Post, error) {
		pageQuery := *query
		pageQuery.PostsListQueryOpts = &appDb.PostsListQueryOpts{
			Limit:         limit,
			Offset:        offset,
			LikeHistoryOf: viewer.Id,
		}
		return database.GetPosts(ctx, &pageQuery)
	})
}

func feedQueryForScope(ctx context.Context, database appDb.Database, viewer *model.User, scope model.PostType) (*appDb.PostsListQuery, error) {
	switch scope {
	case model.PostTypeAll:
		// no membership check: every ALL-tagged post is in scope
		return &appDb.PostsListQuery{
			Types: []model.PostType{model.PostTypeAll},
		}, nil
	case model.PostTypeCampus, model.PostTypeCollege, model.PostTypeProgram:
		path, err := resolveViewerPath(ctx, database, viewer)
		if err != nil {
			return nil, err
		}
		return &appDb.PostsListQuery{
			Types: []model.PostType{scope},
			Org: &appDb.OrgFilter{
				Level:  scope,
				UnitId: path.UnitIdAtLevel(scope),
			},
		}, nil
	case model.PostTypeFollowing:
		followingIds, err := database.GetFollowingIds(ctx, viewer.Id)
		if err != nil {
			return nil, err
		}
		// the viewer's own FOLLOWING posts are always in their feed
		return &appDb.PostsListQuery{
			Types:     []model.PostType{model.PostTypeFollowing},
			AuthorIds: append(followingIds, viewer.Id),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported feed scope %v", scope)
	}
}

func resolveViewerPath(ctx context.Context, database appDb.TaxonomyDatabase, viewer *model.User) (*model.ProgramPath, error) {
	if viewer.ProgramId == 0 {
		return nil, ErrViewerHasNoProgram
	}
	path, err := database.GetProgramPath(ctx, viewer.ProgramId)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrViewerHasNoProgram
	}
	return path, nil
}
