package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"poll-service/internal/models"
	"poll-service/internal/server/repository"

	"gorm.io/gorm"
)

// VoteService decides whether a vote attempt is admissible and, if
// so, appends it to the ledger. The in-memory checks give fast
// user-facing rejections; the store's unique index on
// (poll_id, voter_id, dedup_key) is the authoritative guard under
// concurrent submission.
type VoteService struct {
	pollRepo   repository.PollRepository
	optionRepo repository.OptionRepository
	voteRepo   repository.VoteRepository
	cache      repository.ResultsCache
	now        func() time.Time
}

func NewVoteService(pollRepo repository.PollRepository, optionRepo repository.OptionRepository, voteRepo repository.VoteRepository, cache repository.ResultsCache) *VoteService {
	return &VoteService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
		voteRepo:   voteRepo,
		cache:      cache,
		now:        time.Now,
	}
}

// AdmitVote validates a vote attempt against the poll configuration,
// timing window and prior votes, then records one ledger row per
// accepted option. Precondition order: existence, window, active
// flag, identity, vote-type rules. First failure wins.
func (s *VoteService) AdmitVote(ctx context.Context, identity *models.Identity, pollID string, optionIDs []string) ([]*models.Vote, error) {
	poll, err := s.pollRepo.FindByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "poll not found")
		}
		return nil, newError(CodeInternal, "failed to load poll")
	}

	now := s.now()
	if poll.StartAt != nil && now.Before(*poll.StartAt) {
		return nil, newError(CodeNotStarted, "poll has not started yet")
	}
	if poll.ExpiresAt != nil && now.After(*poll.ExpiresAt) {
		return nil, newError(CodeEnded, "poll has ended")
	}
	if !poll.IsActive {
		return nil, validationError("poll is not active")
	}

	if identity == nil || identity.UserID == "" {
		return nil, newError(CodeUnauthorized, "voter identity required")
	}
	if !poll.AllowAnonymous && !identity.IsAuthenticated {
		return nil, newError(CodeUnauthorized, "sign in to vote on this poll")
	}

	if len(optionIDs) == 0 {
		return nil, validationError("at least one option is required")
	}
	if hasDuplicates(optionIDs) {
		return nil, validationError("duplicate options in request")
	}

	switch poll.VoteType {
	case models.VoteTypeRanked:
		return nil, newError(CodeNotImplemented, "ranked voting is not implemented")
	case models.VoteTypeSingle:
		if len(optionIDs) != 1 {
			return nil, validationError("single-vote polls accept exactly one option")
		}
		// Advisory pre-check for a friendly rejection. The unique
		// index still decides races.
		voted, err := s.voteRepo.HasVoted(ctx, poll.ID, identity.UserID)
		if err != nil {
			return nil, newError(CodeInternal, "failed to check prior votes")
		}
		if voted {
			return nil, newError(CodeAlreadyVoted, "you have already voted on this poll")
		}
	case models.VoteTypeMultiple, models.VoteTypeApproval:
		// No restriction across options; per-option dedup is left to
		// the unique index.
	default:
		return nil, validationError("unknown vote type %q", poll.VoteType)
	}

	options, err := s.optionRepo.FindByPoll(ctx, poll.ID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load options")
	}
	valid := make(map[string]bool, len(options))
	for _, option := range options {
		valid[option.ID] = true
	}
	for _, optionID := range optionIDs {
		if !valid[optionID] {
			return nil, validationError("option %s does not belong to poll", optionID)
		}
	}

	votes := make([]*models.Vote, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		vote := &models.Vote{
			PollID:   poll.ID,
			OptionID: optionID,
			VoterID:  identity.UserID,
		}
		if poll.VoteType != models.VoteTypeSingle {
			vote.DedupKey = optionID
		}
		votes = append(votes, vote)
	}

	if err := s.voteRepo.Insert(ctx, votes); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(CodeAlreadyVoted, "you have already voted on this poll")
		}
		slog.Error("vote insert failed", "poll_id", poll.ID, "error", err)
		return nil, newError(CodeDBInsert, "failed to record vote")
	}

	s.invalidateResults(ctx, poll.ID)

	slog.Info("vote admitted", "poll_id", poll.ID, "voter_id", identity.UserID, "options", len(votes))
	return votes, nil
}

// RetractVote deletes a vote. Only the casting voter may retract;
// poll owners cannot remove other people's votes.
func (s *VoteService) RetractVote(ctx context.Context, identity *models.Identity, voteID string) error {
	if identity == nil || identity.UserID == "" {
		return newError(CodeUnauthorized, "voter identity required")
	}

	vote, err := s.voteRepo.FindByID(ctx, voteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(CodeNotFound, "vote not found")
		}
		return newError(CodeInternal, "failed to load vote")
	}

	if vote.VoterID != identity.UserID {
		return newError(CodeUnauthorized, "only the casting voter may retract a vote")
	}

	if err := s.voteRepo.Delete(ctx, voteID); err != nil {
		return newError(CodeInternal, "failed to retract vote")
	}

	s.invalidateResults(ctx, vote.PollID)
	return nil
}

func (s *VoteService) invalidateResults(ctx context.Context, pollID string) {
	if err := s.cache.Invalidate(ctx, pollID); err != nil {
		// Stale results expire with the cache TTL; the ledger is
		// already consistent.
		slog.Warn("results cache invalidation failed", "poll_id", pollID, "error", err)
	}
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
