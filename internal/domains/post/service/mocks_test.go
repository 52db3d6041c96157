package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"microposts-backend/internal/domains/post/model"
	profileModel "microposts-backend/internal/domains/profile/model"
)

// =====================================================
// MOCKS
// =====================================================

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, authorID, content string) (*model.Post, error) {
	args := m.Called(ctx, authorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, params model.ListParams) ([]*model.Post, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetBatchByIDs(ctx context.Context, ids []string) ([]*profileModel.Author, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profileModel.Author), args.Error(1)
}

func (m *MockDirectory) GetByUsername(ctx context.Context, username string) (*profileModel.Author, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profileModel.Author), args.Error(1)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) TryConsume(ctx context.Context, identity string) (bool, error) {
	args := m.Called(ctx, identity)
	return args.Bool(0), args.Error(1)
}

// =====================================================
// IN-MEMORY POST STORE
// =====================================================

// memoryPostStore orders posts by created_at DESC, id DESC and applies the
// same exclusive cursor semantics as the SQL store.
type memoryPostStore struct {
	mu        sync.Mutex
	posts     []*model.Post
	listCalls int
}

func (s *memoryPostStore) add(authorID, content string, createdAt time.Time) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &model.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: createdAt,
	}
	s.posts = append(s.posts, p)
	return p
}

func (s *memoryPostStore) Create(_ context.Context, authorID, content string) (*model.Post, error) {
	return s.add(authorID, content, time.Now()), nil
}

func (s *memoryPostStore) FindByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrPostNotFound
}

func (s *memoryPostStore) List(_ context.Context, params model.ListParams) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++

	sorted := make([]*model.Post, len(s.posts))
	copy(sorted, s.posts)
	sort.Slice(sorted, func(i, j int) bool { return before(sorted[i], sorted[j]) })

	var anchor *model.Post
	if params.Cursor != nil {
		for _, p := range sorted {
			if p.ID == *params.Cursor {
				anchor = p
				break
			}
		}
		if anchor == nil {
			return []*model.Post{}, nil
		}
	}

	out := []*model.Post{}
	for _, p := range sorted {
		if params.AuthorID != nil && p.AuthorID != *params.AuthorID {
			continue
		}
		if anchor != nil && !before(anchor, p) {
			continue
		}
		cp := *p
		out = append(out, &cp)
		if len(out) == params.Limit {
			break
		}
	}
	return out, nil
}

// before reports whether a sorts ahead of b in the feed walk
func before(a, b *model.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func author(id, username string) *profileModel.Author {
	return &profileModel.Author{
		ID:              id,
		Username:        username,
		ProfileImageURL: "https://img.example.com/" + id + ".png",
	}
}
