package planetscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabsu-me/kabsu-be/db/dao"
	"github.com/kabsu-me/kabsu-be/model"
)

func TestBuildCommentForest(t *testing.T) {
	comments := []*model.Comment{
		{Id: 1, Content: "first top-level"},
		{Id: 2, Content: "second top-level"},
		{Id: 3, ParentId: 1, Content: "reply to 1"},
		{Id: 4, ParentId: 3, Content: "reply to the reply"},
		{Id: 5, ParentId: 1, Content: "later reply to 1"},
	}

	forest := buildCommentForest(comments)

	require.Len(t, forest, 2)
	assert.Equal(t, int64(1), forest[0].Id)
	assert.Equal(t, int64(2), forest[1].Id)
	assert.Empty(t, forest[1].Children)

	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, int64(3), forest[0].Children[0].Id)
	assert.Equal(t, int64(5), forest[0].Children[1].Id)

	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Equal(t, int64(4), forest[0].Children[0].Children[0].Id)
}

func TestBuildCommentForestEmpty(t *testing.T) {
	forest := buildCommentForest(nil)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}

// A reply whose parent was filtered out (soft-deleted) silently drops from
// the forest rather than surfacing at the top level.
func TestBuildCommentForestOrphanReply(t *testing.T) {
	forest := buildCommentForest([]*model.Comment{
		{Id: 1, Content: "top-level"},
		{Id: 9, ParentId: 42, Content: "orphan"},
	})
	require.Len(t, forest, 1)
	assert.Equal(t, int64(1), forest[0].Id)
}

func TestBuildPostFromFlattened(t *testing.T) {
	flattened := &flattenedPost{
		flattenedAuthor: flattenedAuthor{
			AuthorId:          "uid-1",
			AuthorUsername:    "juan",
			AuthorDisplayName: "Juan",
			AuthorRole:        model.RoleStudent,
			AuthorProgramId:   dao.NewNullInt64(7),
		},
		Id:                42,
		Type:              model.PostTypeCampus,
		Content:           "hello",
		ImageBlobNamesStr: dao.NewNullString(`["a.png","b.png"]`),
		NumLikes:          3,
		NumComments:       1,
		LikedByViewer:     true,
	}

	post, err := buildPostFromFlattened(flattened)
	require.NoError(t, err)
	assert.Equal(t, int64(42), post.Id)
	assert.Equal(t, []string{"a.png", "b.png"}, post.ImageBlobNames)
	assert.Equal(t, "uid-1", post.Author.Id)
	assert.Equal(t, int64(7), post.Author.ProgramId)
	assert.NotEmpty(t, post.Author.Avatar)
	assert.True(t, post.LikedByViewer)
}

func TestBuildPostFromFlattenedNoImages(t *testing.T) {
	post, err := buildPostFromFlattened(&flattenedPost{
		flattenedAuthor: flattenedAuthor{AuthorId: "uid-1", AuthorUsername: "juan"},
		Id:              1,
		Type:            model.PostTypeAll,
	})
	require.NoError(t, err)
	assert.NotNil(t, post.ImageBlobNames)
	assert.Empty(t, post.ImageBlobNames)
	assert.Equal(t, int64(0), post.Author.ProgramId)
}
