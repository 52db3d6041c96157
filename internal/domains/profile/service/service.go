package service

import (
	"context"
	"errors"
	"strings"

	"microposts-backend/internal/domains/profile/model"
	"microposts-backend/internal/domains/profile/repository"
)

// ProfileService looks up public profiles in the identity directory
type ProfileService interface {
	// GetProfileByUsername returns a NotFound ProfileError when the
	// directory has no such username.
	GetProfileByUsername(ctx context.Context, username string) (*model.Author, error)
}

type profileService struct {
	directory repository.Directory
}

func NewProfileService(directory repository.Directory) ProfileService {
	return &profileService{directory: directory}
}

func (s *profileService) GetProfileByUsername(ctx context.Context, username string) (*model.Author, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.NewProfileNotFoundError(username)
	}

	author, err := s.directory.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewProfileNotFoundError(username)
		}
		return nil, model.NewUnavailableError(err)
	}
	if author == nil {
		return nil, model.NewProfileNotFoundError(username)
	}

	return author, nil
}
