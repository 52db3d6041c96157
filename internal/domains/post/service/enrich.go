package service

import (
	"context"

	"microposts-backend/internal/domains/post/model"
	profileModel "microposts-backend/internal/domains/profile/model"
	profileRepo "microposts-backend/internal/domains/profile/repository"
	"microposts-backend/pkg/logger"
)

// attachAuthors joins posts with their authors using a single directory
// call over the distinct author ids. Per-post lookups are not allowed here:
// a page of N posts must cost one directory round trip, not N.
//
// Any post whose author cannot be resolved fails the whole batch.
func attachAuthors(ctx context.Context, directory profileRepo.Directory, posts []*model.Post) ([]model.PostWithAuthor, error) {
	if len(posts) == 0 {
		return []model.PostWithAuthor{}, nil
	}

	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	authors, err := directory.GetBatchByIDs(ctx, ids)
	if err != nil {
		return nil, model.NewUnavailableError("resolve post authors", err)
	}

	byID := make(map[string]profileModel.Author, len(authors))
	for _, a := range authors {
		// A directory user without a username cannot be rendered as an author
		if a == nil || a.Username == "" {
			continue
		}
		byID[a.ID] = *a
	}

	result := make([]model.PostWithAuthor, 0, len(posts))
	for _, p := range posts {
		author, ok := byID[p.AuthorID]
		if !ok {
			err := model.NewAuthorMissingError(p.ID, p.AuthorID)
			logger.Error("Post author missing from identity directory", err)
			return nil, err
		}
		result = append(result, model.PostWithAuthor{Post: *p, Author: author})
	}

	return result, nil
}
