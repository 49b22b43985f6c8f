package model

import (
	"strings"
	"time"
)

// PostType tags the audience of a post. The effective audience is computed
// jointly from the type and the author's org-unit membership at read time.
type PostType string

const (
	PostTypeFollowing PostType = "FOLLOWING"
	PostTypeProgram   PostType = "PROGRAM"
	PostTypeCollege   PostType = "COLLEGE"
	PostTypeCampus    PostType = "CAMPUS"
	PostTypeAll       PostType = "ALL"
)

// ParsePostType parses a client-supplied scope/type value, case-insensitively.
func ParsePostType(raw string) (PostType, bool) {
	postType := PostType(strings.ToUpper(raw))
	switch postType {
	case PostTypeFollowing, PostTypeProgram, PostTypeCollege, PostTypeCampus, PostTypeAll:
		return postType, true
	}
	return "", false
}

type Post struct {
	Id             int64      `json:"id"`
	Author         *User      `json:"author"`
	Type           PostType   `json:"type"`
	Content        string     `json:"content"`
	ImageBlobNames []string   `json:"imageBlobNames"`
	ImageUrls      []string   `json:"imageUrls,omitempty"`
	NumLikes       int        `json:"numLikes"`
	NumComments    int        `json:"numComments"`
	LikedByViewer  bool       `json:"likedByViewer"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	Author    *User     `json:"author"`
	ParentId  int64     `json:"parentId"` // 0 for top-level comments
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentTree struct {
	*Comment
	Children []*CommentTree `json:"children"`
}
