package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"microposts-backend/internal/config"
	"microposts-backend/internal/domains/post/model"
	profileModel "microposts-backend/internal/domains/profile/model"
)

var testFeedConfig = config.FeedConfig{DefaultLimit: 10, MaxLimit: 100}

func intPtr(v int) *int { return &v }

// seedFeed stores n posts, P1 oldest to Pn newest, all by user_1
func seedFeed(n int) (*memoryPostStore, []*model.Post) {
	store := &memoryPostStore{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]*model.Post, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, store.add("user_1", fmt.Sprintf("P%d", i), base.Add(time.Duration(i)*time.Second)))
	}
	return store, posts
}

func directoryWith(authors ...*profileModel.Author) *MockDirectory {
	dir := new(MockDirectory)
	dir.On("GetBatchByIDs", mock.Anything, mock.Anything).Return(authors, nil)
	return dir
}

func contents(items []model.PostWithAuthor) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Post.Content)
	}
	return out
}

func TestListPage_WalksFeedWithCursor(t *testing.T) {
	store, posts := seedFeed(5)
	dir := directoryWith(author("user_1", "alice"))
	svc := NewFeedService(store, dir, testFeedConfig)
	ctx := context.Background()

	page1, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"P5", "P4"}, contents(page1.Items))
	require.NotNil(t, page1.NextCursor)
	assert.Equal(t, posts[3].ID.String(), *page1.NextCursor)

	page2, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(2), Cursor: *page1.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"P3", "P2"}, contents(page2.Items))
	require.NotNil(t, page2.NextCursor)
	assert.Equal(t, posts[1].ID.String(), *page2.NextCursor)

	page3, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(2), Cursor: *page2.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, contents(page3.Items))
	assert.Nil(t, page3.NextCursor)
}

func TestListPage_LimitPlusOneBoundary(t *testing.T) {
	store, _ := seedFeed(4)
	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)
	ctx := context.Background()

	page1, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(3)})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 3)
	require.NotNil(t, page1.NextCursor)

	page2, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(3), Cursor: *page1.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, contents(page2.Items))
	assert.Nil(t, page2.NextCursor)
}

func TestListPage_ExactlyLimitHasNoCursor(t *testing.T) {
	store, _ := seedFeed(3)
	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)

	page, err := svc.ListPage(context.Background(), model.PageRequest{Limit: intPtr(3)})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Nil(t, page.NextCursor)
}

func TestListPage_RequestsLimitPlusOne(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, model.ListParams{Limit: 11}).Return([]*model.Post{}, nil).Once()
	dir := new(MockDirectory)

	svc := NewFeedService(repo, dir, testFeedConfig)
	page, err := svc.ListPage(context.Background(), model.PageRequest{})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Nil(t, page.NextCursor)
	repo.AssertExpectations(t)
	dir.AssertNotCalled(t, "GetBatchByIDs", mock.Anything, mock.Anything)
}

func TestListPage_IsStable(t *testing.T) {
	store, _ := seedFeed(5)
	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)
	ctx := context.Background()

	first, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(2)})
	require.NoError(t, err)

	again, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(2), Cursor: *first.NextCursor})
	require.NoError(t, err)
	repeat, err := svc.ListPage(ctx, model.PageRequest{Limit: intPtr(2), Cursor: *first.NextCursor})
	require.NoError(t, err)

	assert.Equal(t, again, repeat)
}

func TestListPage_SingleBatchLookupForSharedAuthors(t *testing.T) {
	store := &memoryPostStore{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, authorID := range []string{"user_1", "user_2", "user_1", "user_2", "user_1"} {
		store.add(authorID, "🙂", base.Add(time.Duration(i)*time.Second))
	}

	dir := new(MockDirectory)
	dir.On("GetBatchByIDs", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return assert.ElementsMatch(t, []string{"user_1", "user_2"}, ids)
	})).Return([]*profileModel.Author{author("user_2", "bob"), author("user_1", "alice")}, nil).Once()

	svc := NewFeedService(store, dir, testFeedConfig)
	page, err := svc.ListPage(context.Background(), model.PageRequest{})

	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	for _, item := range page.Items {
		assert.Equal(t, item.Post.AuthorID, item.Author.ID)
	}
	dir.AssertNumberOfCalls(t, "GetBatchByIDs", 1)
	assert.Equal(t, 1, store.listCalls)
}

func TestListPage_AuthorMissingFailsWholePage(t *testing.T) {
	store := &memoryPostStore{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.add("user_1", "🙂", base)
	store.add("ghost", "👻", base.Add(time.Second))

	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)
	page, err := svc.ListPage(context.Background(), model.PageRequest{})

	assert.Nil(t, page)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAuthorMissing)
}

func TestListPage_AuthorWithoutUsernameIsMissing(t *testing.T) {
	store, _ := seedFeed(1)
	svc := NewFeedService(store, directoryWith(author("user_1", "")), testFeedConfig)

	_, err := svc.ListPage(context.Background(), model.PageRequest{})
	assert.ErrorIs(t, err, model.ErrAuthorMissing)
}

func TestListPage_AuthorFilter(t *testing.T) {
	store := &memoryPostStore{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.add("user_1", "A1", base)
	store.add("user_2", "B1", base.Add(time.Second))
	store.add("user_1", "A2", base.Add(2*time.Second))

	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)
	page, err := svc.ListPage(context.Background(), model.PageRequest{AuthorID: "user_1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"A2", "A1"}, contents(page.Items))
}

func TestListPage_UnknownCursorIsEmptyPage(t *testing.T) {
	store, _ := seedFeed(3)
	dir := new(MockDirectory)
	svc := NewFeedService(store, dir, testFeedConfig)

	page, err := svc.ListPage(context.Background(), model.PageRequest{Cursor: uuid.NewString()})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
	dir.AssertNotCalled(t, "GetBatchByIDs", mock.Anything, mock.Anything)
}

func TestListPage_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  model.PageRequest
		want error
	}{
		{"malformed cursor", model.PageRequest{Cursor: "not-a-uuid"}, model.ErrInvalidCursor},
		{"zero limit", model.PageRequest{Limit: intPtr(0)}, model.ErrInvalidLimit},
		{"negative limit", model.PageRequest{Limit: intPtr(-1)}, model.ErrInvalidLimit},
		{"limit above max", model.PageRequest{Limit: intPtr(101)}, model.ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPostRepository)
			svc := NewFeedService(repo, new(MockDirectory), testFeedConfig)

			_, err := svc.ListPage(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestListPage_MaxLimitAccepted(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, model.ListParams{Limit: 101}).Return([]*model.Post{}, nil).Once()

	svc := NewFeedService(repo, new(MockDirectory), testFeedConfig)
	_, err := svc.ListPage(context.Background(), model.PageRequest{Limit: intPtr(100)})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPage_StoreFailureIsUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, cause)

	svc := NewFeedService(repo, new(MockDirectory), testFeedConfig)
	_, err := svc.ListPage(context.Background(), model.PageRequest{})

	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestListPage_DirectoryFailureIsUnavailable(t *testing.T) {
	store, _ := seedFeed(2)
	dir := new(MockDirectory)
	dir.On("GetBatchByIDs", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	svc := NewFeedService(store, dir, testFeedConfig)
	_, err := svc.ListPage(context.Background(), model.PageRequest{})

	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetSingle(t *testing.T) {
	store, posts := seedFeed(2)
	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)

	got, err := svc.GetSingle(context.Background(), posts[0].ID.String())

	require.NoError(t, err)
	assert.Equal(t, "P1", got.Post.Content)
	assert.Equal(t, "alice", got.Author.Username)
}

func TestGetSingle_NotFound(t *testing.T) {
	store, _ := seedFeed(1)
	dir := new(MockDirectory)
	svc := NewFeedService(store, dir, testFeedConfig)

	for _, id := range []string{uuid.NewString(), "garbage", ""} {
		_, err := svc.GetSingle(context.Background(), id)
		assert.ErrorIs(t, err, model.ErrPostNotFound, id)
	}
	dir.AssertNotCalled(t, "GetBatchByIDs", mock.Anything, mock.Anything)
}

func TestGetSingle_AuthorDeleted(t *testing.T) {
	store, posts := seedFeed(1)
	svc := NewFeedService(store, directoryWith(), testFeedConfig)

	got, err := svc.GetSingle(context.Background(), posts[0].ID.String())

	assert.Nil(t, got)
	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodeAuthorMissing, postErr.Code)
}

func TestListByAuthor(t *testing.T) {
	store := &memoryPostStore{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		store.add("user_1", fmt.Sprintf("A%d", i), base.Add(time.Duration(i)*time.Second))
	}
	store.add("user_2", "B0", base.Add(time.Hour))

	svc := NewFeedService(store, directoryWith(author("user_1", "alice")), testFeedConfig)
	ctx := context.Background()

	items, err := svc.ListByAuthor(ctx, "user_1", 0)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, "A14", items[0].Post.Content)

	items, err = svc.ListByAuthor(ctx, "user_1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A14", "A13", "A12"}, contents(items))
}

func TestListByAuthor_InvalidInput(t *testing.T) {
	svc := NewFeedService(new(MockPostRepository), new(MockDirectory), testFeedConfig)

	_, err := svc.ListByAuthor(context.Background(), "", 5)
	assert.ErrorIs(t, err, model.ErrValidationFailed)

	_, err = svc.ListByAuthor(context.Background(), "user_1", -1)
	assert.ErrorIs(t, err, model.ErrInvalidLimit)

	_, err = svc.ListByAuthor(context.Background(), "user_1", 500)
	assert.ErrorIs(t, err, model.ErrInvalidLimit)
}
