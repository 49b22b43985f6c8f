package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabsu-me/kabsu-be/model"
)

func TestCanView(t *testing.T) {
	viewer := &model.User{Id: "viewer"}
	author := &model.User{Id: "author"}
	deletedAt := time.Now()

	tests := []struct {
		name          string
		post          *model.Post
		viewerPath    *model.ProgramPath
		authorPath    *model.ProgramPath
		followsAuthor bool
		want          bool
	}{
		{
			name: "deleted post is invisible to everyone",
			post: &model.Post{Author: viewer, Type: model.PostTypeAll, DeletedAt: &deletedAt},
			want: false,
		},
		{
			name: "all posts are visible without membership",
			post: &model.Post{Author: author, Type: model.PostTypeAll},
			want: true,
		},
		{
			name:       "author always sees their own post",
			post:       &model.Post{Author: viewer, Type: model.PostTypeProgram},
			viewerPath: nil,
			authorPath: nil,
			want:       true,
		},
		{
			name:          "following post visible to a follower",
			post:          &model.Post{Author: author, Type: model.PostTypeFollowing},
			followsAuthor: true,
			want:          true,
		},
		{
			name:          "following post hidden from a non-follower",
			post:          &model.Post{Author: author, Type: model.PostTypeFollowing},
			followsAuthor: false,
			want:          false,
		},
		{
			name:       "program post visible within the same program",
			post:       &model.Post{Author: author, Type: model.PostTypeProgram},
			viewerPath: pathP,
			authorPath: pathP,
			want:       true,
		},
		{
			name:       "program post hidden across programs",
			post:       &model.Post{Author: author, Type: model.PostTypeProgram},
			viewerPath: pathP,
			authorPath: pathP2,
			want:       false,
		},
		{
			name:       "college post visible across programs of one college",
			post:       &model.Post{Author: author, Type: model.PostTypeCollege},
			viewerPath: pathP,
			authorPath: pathP2,
			want:       true,
		},
		{
			name:       "campus post visible across colleges of one campus",
			post:       &model.Post{Author: author, Type: model.PostTypeCampus},
			viewerPath: pathP,
			authorPath: pathC2,
			want:       true,
		},
		{
			name:       "campus post hidden across campuses",
			post:       &model.Post{Author: author, Type: model.PostTypeCampus},
			viewerPath: pathP,
			authorPath: pathFar,
			want:       false,
		},
		{
			name:       "org post hidden when viewer has no path",
			post:       &model.Post{Author: author, Type: model.PostTypeCollege},
			viewerPath: nil,
			authorPath: pathP,
			want:       false,
		},
		{
			name:       "org post hidden when author has no path",
			post:       &model.Post{Author: author, Type: model.PostTypeCollege},
			viewerPath: pathP,
			authorPath: nil,
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(viewer, tt.post, tt.viewerPath, tt.authorPath, tt.followsAuthor))
		})
	}
}

func TestGetUserPostsFiltersByVisibility(t *testing.T) {
	database, viewer := campusFixture()
	author := &model.User{Id: "stranger", Username: "stranger", ProgramId: 4}
	addPost(database, 1, "stranger", model.PostTypeAll)
	addPost(database, 2, "stranger", model.PostTypeCampus)    // different campus, hidden
	addPost(database, 3, "stranger", model.PostTypeFollowing) // viewer does not follow

	page, err := GetUserPosts(context.Background(), database, viewer, author, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, postIds(page.Items))
	assert.Nil(t, page.NextCursor)
}

func TestGetUserPostsFollowerSeesFollowingPosts(t *testing.T) {
	database, viewer := campusFixture()
	author := &model.User{Id: "followed", Username: "followed", ProgramId: 4}
	addPost(database, 1, "followed", model.PostTypeFollowing)
	addPost(database, 2, "followed", model.PostTypeCampus) // still org-gated

	page, err := GetUserPosts(context.Background(), database, viewer, author, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, postIds(page.Items))
}

func TestGetUserPostsOwnProfileShowsEverything(t *testing.T) {
	database, viewer := campusFixture()
	addPost(database, 1, "viewer", model.PostTypeFollowing)
	addPost(database, 2, "viewer", model.PostTypeProgram)
	addPost(database, 3, "viewer", model.PostTypeAll)

	page, err := GetUserPosts(context.Background(), database, viewer, viewer, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, postIds(page.Items))
}

// The next cursor reflects the unfiltered page: a page can come back with
// fewer items than the limit and still point at another page.
func TestGetUserPostsCursorSurvivesFiltering(t *testing.T) {
	database, viewer := campusFixture()
	author := &model.User{Id: "stranger", Username: "stranger", ProgramId: 4}
	for i := int64(1); i <= 10; i++ {
		addPost(database, i, "stranger", model.PostTypeCampus) // all hidden
	}
	addPost(database, 11, "stranger", model.PostTypeAll)

	first, err := GetUserPosts(context.Background(), database, viewer, author, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, postIds(first.Items))
	require.NotNil(t, first.NextCursor)

	second, err := GetUserPosts(context.Background(), database, viewer, author, *first.NextCursor)
	require.NoError(t, err)
	assert.Empty(t, second.Items)
	assert.Nil(t, second.NextCursor)
}
