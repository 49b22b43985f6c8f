package routes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "no mentions", content: "just a plain post", want: nil},
		{name: "single mention", content: "shoutout to @juan today", want: []string{"juan"}},
		{name: "multiple mentions", content: "@juan and @maria.cruz both helped", want: []string{"juan", "maria.cruz"}},
		{name: "duplicates collapse", content: "@juan @juan @juan", want: []string{"juan"}},
		{name: "too short to be a username", content: "email me @cs", want: nil},
		{name: "mention at end of sentence", content: "thanks @juan!", want: []string{"juan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMentions(tt.content))
		})
	}
}

type fakeMentionDB struct {
	db.Database
	usersByUsername map[string]*model.User
	notifications   []*db.CreateNotification
}

func (f *fakeMentionDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return f.usersByUsername[username], nil
}

func (f *fakeMentionDB) CreateNotification(ctx context.Context, req *db.CreateNotification) (int64, error) {
	f.notifications = append(f.notifications, req)
	return int64(len(f.notifications)), nil
}

func TestNotifyMentions(t *testing.T) {
	fake := &fakeMentionDB{
		usersByUsername: map[string]*model.User{
			"juan":  {Id: "uid-juan", Username: "juan"},
			"maria": {Id: "uid-maria", Username: "maria"},
		},
	}

	notifyMentions(context.Background(), fake, "cc @juan @maria @ghost", "uid-author", "42")

	require.Len(t, fake.notifications, 2)
	assert.Equal(t, "uid-juan", fake.notifications[0].ToUserId)
	assert.Equal(t, "uid-maria", fake.notifications[1].ToUserId)
	for _, notification := range fake.notifications {
		assert.Equal(t, model.NotificationTypeMention, notification.Type)
		assert.Equal(t, "uid-author", notification.FromUserId)
		assert.Equal(t, "42", notification.ContentId)
	}
}

// Mentioning yourself never notifies.
func TestNotifyMentionsSkipsSelf(t *testing.T) {
	fake := &fakeMentionDB{
		usersByUsername: map[string]*model.User{
			"juan": {Id: "uid-juan", Username: "juan"},
		},
	}

	notifyMentions(context.Background(), fake, "note to self @juan", "uid-juan", "42")

	assert.Empty(t, fake.notifications)
}
