package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"sort"

	"poll-service/internal/models"
	"poll-service/internal/server/repository"

	"gorm.io/gorm"
)

// Result orderings. List views want stable option order, result
// panels want winners first.
const (
	OrderByPosition = "position"
	OrderByVotes    = "votes"
)

// ResultsService derives per-option counts and percentages from the
// vote ledger. Aggregates are recomputed on demand and cached per
// (poll, ordering) with a short TTL; writes invalidate the cache.
type ResultsService struct {
	pollRepo   repository.PollRepository
	optionRepo repository.OptionRepository
	voteRepo   repository.VoteRepository
	cache      repository.ResultsCache
}

func NewResultsService(pollRepo repository.PollRepository, optionRepo repository.OptionRepository, voteRepo repository.VoteRepository, cache repository.ResultsCache) *ResultsService {
	return &ResultsService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
		voteRepo:   voteRepo,
		cache:      cache,
	}
}

// GetResults computes vote counts and percentages for every option
// of a poll. Percentages are rounded to one decimal and are all zero
// when the poll has no votes.
func (s *ResultsService) GetResults(ctx context.Context, pollID, orderBy string) (*models.PollResults, error) {
	switch orderBy {
	case "":
		orderBy = OrderByPosition
	case OrderByPosition, OrderByVotes:
	default:
		return nil, validationError("order must be %q or %q", OrderByPosition, OrderByVotes)
	}

	if payload, ok := s.cache.Get(ctx, pollID, orderBy); ok {
		var cached models.PollResults
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		slog.Warn("discarding unreadable cached results", "poll_id", pollID)
	}

	if _, err := s.pollRepo.FindByID(ctx, pollID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeNotFound, "poll not found")
		}
		return nil, newError(CodeInternal, "failed to load poll")
	}

	options, err := s.optionRepo.FindByPoll(ctx, pollID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to load options")
	}
	counts, err := s.voteRepo.CountByOption(ctx, pollID)
	if err != nil {
		return nil, newError(CodeInternal, "failed to count votes")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	results := make([]models.OptionResult, 0, len(options))
	for _, option := range options {
		votes := counts[option.ID]
		results = append(results, models.OptionResult{
			OptionID:   option.ID,
			Text:       option.Text,
			Position:   option.Position,
			Votes:      votes,
			Percentage: percentage(votes, total),
		})
	}

	if orderBy == OrderByVotes {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Votes > results[j].Votes
		})
	}

	aggregate := &models.PollResults{
		PollID:     pollID,
		TotalVotes: total,
		Results:    results,
	}

	if payload, err := json.Marshal(aggregate); err == nil {
		if err := s.cache.Set(ctx, pollID, orderBy, payload); err != nil {
			slog.Warn("failed to cache results", "poll_id", pollID, "error", err)
		}
	}

	return aggregate, nil
}

func percentage(votes, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(votes)/float64(total)) / 10
}
