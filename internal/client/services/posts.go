package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jafa/internal/client/client"
	"github.com/dmitrijs2005/jafa/internal/client/models"
)

// PostService covers the forum content calls: listing, voting and creating
// posts and subforums.
type PostService interface {
	Vote(ctx context.Context, postID string, isLike bool) (string, error)
	List(ctx context.Context, page int) (*models.PostPage, error)
	ListSubforum(ctx context.Context, subforum string, page int) (*models.PostPage, error)
	CreatePost(ctx context.Context, draft models.PostDraft) (string, error)
	CreateSubforum(ctx context.Context, draft models.SubforumDraft) (string, error)
}

type postService struct {
	client client.Client
}

func NewPostService(c client.Client) PostService {
	return &postService{client: c}
}

func (p *postService) Vote(ctx context.Context, postID string, isLike bool) (string, error) {
	return p.client.Vote(ctx, postID, isLike)
}

func (p *postService) List(ctx context.Context, page int) (*models.PostPage, error) {
	out, err := p.client.ListPosts(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}

func (p *postService) ListSubforum(ctx context.Context, subforum string, page int) (*models.PostPage, error) {
	out, err := p.client.ListSubforumPosts(ctx, subforum, page)
	if err != nil {
		return nil, fmt.Errorf("list subforum %q: %w", subforum, err)
	}
	return out, nil
}

func (p *postService) CreatePost(ctx context.Context, draft models.PostDraft) (string, error) {
	return p.client.CreatePost(ctx, draft)
}

func (p *postService) CreateSubforum(ctx context.Context, draft models.SubforumDraft) (string, error) {
	return p.client.CreateSubforum(ctx, draft)
}
