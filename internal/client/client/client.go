package client

import (
	"context"

	"github.com/dmitrijs2005/jafa/internal/client/models"
)

// Client is the backend surface the Jafa client talks to. Methods that
// return a string return the backend's human-readable success message.
type Client interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
	Register(ctx context.Context, username string, password []byte) (string, error)
	Logout(ctx context.Context) (string, error)
	Vote(ctx context.Context, postID string, isLike bool) (string, error)
	ListPosts(ctx context.Context, page int) (*models.PostPage, error)
	ListSubforumPosts(ctx context.Context, subforum string, page int) (*models.PostPage, error)
	CreatePost(ctx context.Context, draft models.PostDraft) (string, error)
	CreateSubforum(ctx context.Context, draft models.SubforumDraft) (string, error)
}
