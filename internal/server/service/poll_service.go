package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"poll-service/internal/models"
	"poll-service/internal/server/repository"

	"gorm.io/gorm"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 200
	optionMaxLen  = 200
	minOptions    = 2
	maxOptions    = 10
	minActivation = 2
)

// PollService enforces creation-time and activation-time invariants:
// field bounds, option count, ownership.
type PollService struct {
	pollRepo   repository.PollRepository
	optionRepo repository.OptionRepository
	now        func() time.Time
}

func NewPollService(pollRepo repository.PollRepository, optionRepo repository.OptionRepository) *PollService {
	return &PollService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
		now:        time.Now,
	}
}

// CreatePoll validates the request and persists the poll with its
// options as a single transaction.
func (s *PollService) CreatePoll(ctx context.Context, identity *models.Identity, req models.CreatePollRequest) (*models.PollWithOptions, error) {
	if identity == nil || !identity.IsAuthenticated {
		return nil, newError(CodeUnauthorized, "sign in to create a poll")
	}

	if n := utf8.RuneCountInString(req.Title); n < titleMinLen || n > titleMaxLen {
		return nil, validationError("title must be %d-%d characters", titleMinLen, titleMaxLen)
	}

	if len(req.Options) < minOptions || len(req.Options) > maxOptions {
		return nil, validationError("polls must have %d-%d options", minOptions, maxOptions)
	}
	seen := make(map[string]bool, len(req.Options))
	for _, text := range req.Options {
		if n := utf8.RuneCountInString(text); n < 1 || n > optionMaxLen {
			return nil, validationError("option text must be 1-%d characters", optionMaxLen)
		}
		if seen[text] {
			return nil, validationError("duplicate option text %q", text)
		}
		seen[text] = true
	}

	voteType := req.VoteType
	if voteType == "" {
		if req.AllowMultipleVotes {
			voteType = models.VoteTypeMultiple
		} else {
			voteType = models.VoteTypeSingle
		}
	}
	if !voteType.Valid() {
		return nil, validationError("unknown vote type %q", voteType)
	}

	startAt, err := parseTimestamp(req.StartAt)
	if err != nil {
		return nil, validationError("start_at must be RFC3339")
	}
	expiresAt, err := parseTimestamp(req.ExpiresAt)
	if err != nil {
		return nil, validationError("expires_at must be RFC3339")
	}
	if expiresAt != nil && expiresAt.Before(s.now()) {
		return nil, validationError("expires_at must not be in the past")
	}
	if startAt != nil && expiresAt != nil && !expiresAt.After(*startAt) {
		return nil, validationError("expires_at must be after start_at")
	}

	showResults := true
	if req.ShowResults != nil {
		showResults = *req.ShowResults
	}

	poll := &models.Poll{
		Title:              req.Title,
		Description:        req.Description,
		OwnerID:            identity.UserID,
		VoteType:           voteType,
		AllowMultipleVotes: req.AllowMultipleVotes || voteType == models.VoteTypeMultiple || voteType == models.VoteTypeApproval,
		ShowResults:        showResults,
		AllowAnonymous:     req.AllowAnonymous,
		StartAt:            startAt,
		ExpiresAt:          expiresAt,
	}

	options := make([]*models.Option, 0, len(req.Options))
	for i, text := range req.Options {
		options = append(options, &models.Option{Text: text, Position: i})
	}

	if err := s.pollRepo.CreateWithOptions(ctx, poll, options); err != nil {
		slog.Error("poll insert failed", "owner_id", identity.UserID, "error", err)
		return nil, newError(CodeDBInsert, "failed to create poll")
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner_id", poll.OwnerID, "options", len(options))

	result := &models.PollWithOptions{Poll: *poll}
	for _, option := range options {
		result.Options = append(result.Options, *option)
	}
	return result, nil
}

// SetActive flips the poll's active flag. Only the owner may call
// it, and activation requires at least two options. Deactivation is
// unconditional for the owner.
func (s *PollService) SetActive(ctx context.Context, identity *models.Identity, pollID string, active bool) (*models.Poll, error) {
	poll, err := s.loadOwned(ctx, identity, pollID)
	if err != nil {
		return nil, err
	}

	if active {
		count, err := s.optionRepo.CountByPoll(ctx, pollID)
		if err != nil {
			return nil, newError(CodeInternal, "failed to count options")
		}
		if count < minActivation {
			return nil, validationError("poll must have at least %d options", minActivation)
		}
	}

	if err := s.pollRepo.SetActive(ctx, pollID, active); err != nil {
		return nil, newError(CodeInternal, "failed to update poll")
	}
	poll.IsActive = active

	slog.Info("poll active flag changed", "poll_id", pollID, "active", active)
	return poll, nil
}

// UpdatePoll applies owner edits to title and description
func (s *PollService) UpdatePoll(ctx context.Context, identity *models.Identity, pollID string, req models.UpdatePollRequest) (*models.Poll, error) {
	poll, err := s.loadOwned(ctx, identity, pollID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if n := utf8.RuneCountInString(*req.Title); n < titleMinLen || n > titleMaxLen {
			return nil, validationError("title must be %d-%d characters", titleMinLen, titleMaxLen)
		}
		poll.Title = *req.Title
	}
	if req.Description != nil {
		poll.Description = *req.Description
	}

	if err := s.pollRepo.Update(ctx, poll); err != nil {
		return nil, newError(CodeInternal, "failed to update poll")
	}
	return poll, nil
}

// DeletePoll removes a poll together with its options and votes
func (s *PollService) DeletePoll(ctx context.Context, identity *models.Identity, pollID string) error {
	if _, err := s.loadOwned(ctx, identity, pollID); err != nil {
		return err
	}
	if err := s.pollRepo.Delete(ctx, pollID); err != nil {
		return newError(CodeInternal, "failed to delete poll")
	}
	slog.Info("poll deleted", "poll_id", pollID)
	return nil
}

// GetPoll returns a poll with its ordered options
func (s *PollService) GetPoll(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "poll not found")
		}
		return nil, newError(CodeInternal, "failed to load poll")
	}

	options, err := s.optionRepo.FindByPoll(ctx, pollID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load options")
	}

	return &models.PollWithOptions{Poll: *poll, Options: options}, nil
}

func (s *PollService) ListPolls(ctx context.Context) ([]*models.Poll, error) {
	polls, err := s.pollRepo.List(ctx)
	if err != nil {
		return nil, newError(CodeInternal, "failed to list polls")
	}
	return polls, nil
}

func (s *PollService) loadOwned(ctx context.Context, identity *models.Identity, pollID string) (*models.Poll, error) {
	if identity == nil || !identity.IsAuthenticated {
		return nil, newError(CodeUnauthorized, "sign in required")
	}

	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "poll not found")
		}
		return nil, newError(CodeInternal, "failed to load poll")
	}

	if poll.OwnerID != identity.UserID {
		return nil, newError(CodeUnauthorized, "only the poll owner may do this")
	}
	return poll, nil
}

func parseTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
