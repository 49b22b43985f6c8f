package app

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

// fakeDB is an in-memory stand-in for the store. It embeds the Database
// interface so only the methods the code under test reaches need bodies;
// anything else panics loudly.
type fakeDB struct {
	appDb.Database
	posts          []*model.Post
	pathsByUser    map[string]*model.ProgramPath
	pathsByProgram map[int64]*model.ProgramPath
	follows        map[string][]string
}

func (f *fakeDB) GetPosts(ctx context.Context, query *appDb.PostsListQuery) ([]*model.Post, error) {
	var matched []*model.Post
	for _, post := range f.posts {
		if post.DeletedAt != nil {
			continue
		}
		if len(query.Types) > 0 && !containsType(query.Types, post.Type) {
			continue
		}
		if len(query.AuthorIds) > 0 && !containsString(query.AuthorIds, post.Author.Id) {
			continue
		}
		if query.Org != nil {
			authorPath := f.pathsByUser[post.Author.Id]
			if authorPath.UnitIdAtLevel(query.Org.Level) != query.Org.UnitId {
				continue
			}
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Id > matched[j].Id
	})
	if query.PostsListQueryOpts != nil {
		offset := query.Offset
		if offset > len(matched) {
			offset = len(matched)
		}
		end := offset + query.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}
	return matched, nil
}

func (f *fakeDB) GetProgramPath(ctx context.Context, programId int64) (*model.ProgramPath, error) {
	return f.pathsByProgram[programId], nil
}

func (f *fakeDB) GetFollowingIds(ctx context.Context, userId string) ([]string, error) {
	return f.follows[userId], nil
}

func (f *fakeDB) GetFollow(ctx context.Context, followerId, followeeId string) (*model.Follow, error) {
	if containsString(f.follows[followerId], followeeId) {
		return &model.Follow{FollowerId: followerId, FolloweeId: followeeId}, nil
	}
	return nil, nil
}

func containsType(types []model.PostType, t model.PostType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

var (
	pathP = &model.ProgramPath{ProgramId: 1, CollegeId: 10, CampusId: 100}
	// same college, different program
	pathP2 = &model.ProgramPath{ProgramId: 2, CollegeId: 10, CampusId: 100}
	// same campus, different college
	pathC2 = &model.ProgramPath{ProgramId: 3, CollegeId: 11, CampusId: 100}
	// different campus entirely
	pathFar = &model.ProgramPath{ProgramId: 4, CollegeId: 20, CampusId: 200}
)

func campusFixture() (*fakeDB, *model.User) {
	viewer := &model.User{Id: "viewer", Username: "viewer", ProgramId: 1}
	database := &fakeDB{
		pathsByUser: map[string]*model.ProgramPath{
			"viewer":   pathP,
			"peer":     pathP2,
			"neighbor": pathC2,
			"stranger": pathFar,
			"followed": pathFar,
		},
		pathsByProgram: map[int64]*model.ProgramPath{
			1: pathP,
			2: pathP2,
			3: pathC2,
			4: pathFar,
		},
		follows: map[string][]string{
			"viewer": {"followed"},
		},
	}
	return database, viewer
}

func addPost(database *fakeDB, id int64, authorId string, postType model.PostType) *model.Post {
	post := &model.Post{
		Id:        id,
		Author:    &model.User{Id: authorId, Username: authorId},
		Type:      postType,
		Content:   "post",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute),
	}
	database.posts = append(database.posts, post)
	return post
}

func postIds(posts []*model.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.Id
	}
	return ids
}

func TestGetFeedAllScope(t *testing.T) {
	database, viewer := campusFixture()
	addPost(database, 1, "stranger", model.PostTypeAll)
	addPost(database, 2, "viewer", model.PostTypeAll)
	addPost(database, 3, "stranger", model.PostTypeCampus)

	page, err := GetFeed(context.Background(), database, viewer, model.PostTypeAll, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, postIds(page.Items))
	assert.Nil(t, page.NextCursor)
}

// An ALL feed never resolves membership, so even a viewer with no program
// gets the public feed.
func TestGetFeedAllScopeNoProgram(t *testing.T) {
	database, viewer := campusFixture()
	viewer.ProgramId = 0
	addPost(database, 1, "stranger", model.PostTypeAll)

	page, err := GetFeed(context.Background(), database, viewer, model.PostTypeAll, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, postIds(page.Items))
}

func TestGetFeedOrgScopes(t *testing.T) {
	database, viewer := campusFixture()
	addPost(database, 1, "peer", model.PostTypeProgram)     // program mismatch for viewer
	addPost(database, 2, "peer", model.PostTypeCollege)     // same college
	addPost(database, 3, "neighbor", model.PostTypeCollege) // different college
	addPost(database, 4, "neighbor", model.PostTypeCampus)  // same campus
	addPost(database, 5, "stranger", model.PostTypeCampus)  // different campus
	addPost(database, 6, "viewer", model.PostTypeProgram)

	tests := []struct {
		scope   model.PostType
		wantIds []int64
	}{
		{model.PostTypeProgram, []int64{6}},
		{model.PostTypeCollege, []int64{2}},
		{model.PostTypeCampus, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			page, err := GetFeed(context.Background(), database, viewer, tt.scope, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIds, postIds(page.Items))
		})
	}
}

func TestGetFeedOrgScopeNoProgram(t *testing.T) {
	database, viewer := campusFixture()
	viewer.ProgramId = 0

	_, err := GetFeed(context.Background(), database, viewer, model.PostTypeCampus, 1)
	assert.ErrorIs(t, err, ErrViewerHasNoProgram)
}

func TestGetFeedFollowingScope(t *testing.T) {
	database, viewer := campusFixture()
	addPost(database, 1, "followed", model.PostTypeFollowing)
	addPost(database, 2, "followed", model.PostTypeAll) // wrong type, excluded
	addPost(database, 3, "stranger", model.PostTypeFollowing)
	addPost(database, 4, "viewer", model.PostTypeFollowing) // own posts included

	page, err := GetFeed(context.Background(), database, viewer, model.PostTypeFollowing, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 1}, postIds(page.Items))
}

func TestGetFeedExcludesDeleted(t *testing.T) {
	database, viewer := campusFixture()
	addPost(database, 1, "stranger", model.PostTypeAll)
	deleted := addPost(database, 2, "stranger", model.PostTypeAll)
	deletedAt := time.Now()
	deleted.DeletedAt = &deletedAt

	page, err := GetFeed(context.Background(), database, viewer, model.PostTypeAll, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, postIds(page.Items))
}

func TestGetFeedPagination(t *testing.T) {
	database, viewer := campusFixture()
	for i := int64(1); i <= 12; i++ {
		addPost(database, i, "followed", model.PostTypeFollowing)
	}

	first, err := GetFeed(context.Background(), database, viewer, model.PostTypeFollowing, 1)
	require.NoError(t, err)
	require.Len(t, first.Items, 10)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, 2, *first.NextCursor)
	// newest first
	assert.Equal(t, int64(12), first.Items[0].Id)

	second, err := GetFeed(context.Background(), database, viewer, model.PostTypeFollowing, *first.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, postIds(second.Items))
	assert.Nil(t, second.NextCursor)
}

func TestGetFeedUnsupportedScope(t *testing.T) {
	database, viewer := campusFixture()
	_, err := GetFeed(context.Background(), database, viewer, model.PostType("TRENDING"), 1)
	assert.Error(t, err)
}
