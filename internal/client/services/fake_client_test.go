package services

import (
	"context"

	"github.com/dmitrijs2005/jafa/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	UserRet *models.User
	UserErr error

	Msg string
	Err error

	PageRet *models.PostPage

	LastUsername string
	LastPassword []byte
	LastPostID   string
	LastIsLike   bool
	LastSubforum string
	LastPage     int
	LastPost     models.PostDraft
	LastForum    models.SubforumDraft
	LogoutCalls  int
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	return f.UserRet, f.UserErr
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	f.LastUsername, f.LastPassword = username, append([]byte(nil), password...)
	return f.Msg, f.Err
}

func (f *fakeClient) Register(ctx context.Context, username string, password []byte) (string, error) {
	f.LastUsername, f.LastPassword = username, append([]byte(nil), password...)
	return f.Msg, f.Err
}

func (f *fakeClient) Logout(ctx context.Context) (string, error) {
	f.LogoutCalls++
	return f.Msg, f.Err
}

func (f *fakeClient) Vote(ctx context.Context, postID string, isLike bool) (string, error) {
	f.LastPostID, f.LastIsLike = postID, isLike
	return f.Msg, f.Err
}

func (f *fakeClient) ListPosts(ctx context.Context, page int) (*models.PostPage, error) {
	f.LastPage = page
	return f.PageRet, f.Err
}

func (f *fakeClient) ListSubforumPosts(ctx context.Context, subforum string, page int) (*models.PostPage, error) {
	f.LastSubforum, f.LastPage = subforum, page
	return f.PageRet, f.Err
}

func (f *fakeClient) CreatePost(ctx context.Context, d models.PostDraft) (string, error) {
	f.LastPost = d
	return f.Msg, f.Err
}

func (f *fakeClient) CreateSubforum(ctx context.Context, d models.SubforumDraft) (string, error) {
	f.LastForum = d
	return f.Msg, f.Err
}

type fakeClearer struct {
	calls int
	err   error
}

func (f *fakeClearer) Clear(context.Context) error {
	f.calls++
	return f.err
}
