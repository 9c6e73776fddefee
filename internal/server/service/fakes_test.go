package service

import (
	"context"
	"sync"

	"poll-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore backs the repository interfaces with in-memory maps. The
// vote table enforces the same (poll_id, voter_id, dedup_key) unique
// constraint as the real store, under a mutex, so admission races can
// be exercised with goroutines.
type fakeStore struct {
	mu      sync.Mutex
	polls   map[string]*models.Poll
	options map[string][]models.Option
	votes   map[string]*models.Vote
	dedup   map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		polls:   make(map[string]*models.Poll),
		options: make(map[string][]models.Option),
		votes:   make(map[string]*models.Vote),
		dedup:   make(map[string]bool),
	}
}

func dedupKey(v *models.Vote) string {
	return v.PollID + "|" + v.VoterID + "|" + v.DedupKey
}

/* PollRepository */

func (s *fakeStore) CreateWithOptions(ctx context.Context, poll *models.Poll, options []*models.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if poll.ID == "" {
		poll.ID = uuid.New().String()
	}
	s.polls[poll.ID] = poll
	for _, option := range options {
		if option.ID == "" {
			option.ID = uuid.New().String()
		}
		option.PollID = poll.ID
		s.options[poll.ID] = append(s.options[poll.ID], *option)
	}
	return nil
}

func (s *fakeStore) FindByID(ctx context.Context, id string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *poll
	return &copied, nil
}

func (s *fakeStore) List(ctx context.Context) ([]*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	polls := make([]*models.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		copied := *poll
		polls = append(polls, &copied)
	}
	return polls, nil
}

func (s *fakeStore) Update(ctx context.Context, poll *models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *poll
	s.polls[poll.ID] = &copied
	return nil
}

func (s *fakeStore) SetActive(ctx context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	poll.IsActive = active
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.polls, id)
	delete(s.options, id)
	for voteID, vote := range s.votes {
		if vote.PollID == id {
			delete(s.dedup, dedupKey(vote))
			delete(s.votes, voteID)
		}
	}
	return nil
}

/* OptionRepository */

func (s *fakeStore) FindByPoll(ctx context.Context, pollID string) ([]models.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Option(nil), s.options[pollID]...), nil
}

func (s *fakeStore) CountByPoll(ctx context.Context, pollID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.options[pollID])), nil
}

/* VoteRepository */

func (s *fakeStore) Insert(ctx context.Context, votes []*models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vote := range votes {
		if s.dedup[dedupKey(vote)] {
			return gorm.ErrDuplicatedKey
		}
	}
	for _, vote := range votes {
		if vote.ID == "" {
			vote.ID = uuid.New().String()
		}
		s.dedup[dedupKey(vote)] = true
		copied := *vote
		s.votes[vote.ID] = &copied
	}
	return nil
}

func (s *fakeStore) FindVoteByID(ctx context.Context, id string) (*models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vote
	return &copied, nil
}

func (s *fakeStore) HasVoted(ctx context.Context, pollID, voterID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vote := range s.votes {
		if vote.PollID == pollID && vote.VoterID == voterID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CountByOption(ctx context.Context, pollID string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int64)
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			counts[vote.OptionID]++
		}
	}
	return counts, nil
}

func (s *fakeStore) DeleteVote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vote, ok := s.votes[id]; ok {
		delete(s.dedup, dedupKey(vote))
		delete(s.votes, id)
	}
	return nil
}

func (s *fakeStore) voteCount(pollID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			n++
		}
	}
	return n
}

// voteRepoAdapter maps the VoteRepository method names onto fakeStore
// where they collide with PollRepository's.
type voteRepoAdapter struct {
	*fakeStore
}

func (a voteRepoAdapter) FindByID(ctx context.Context, id string) (*models.Vote, error) {
	return a.FindVoteByID(ctx, id)
}

func (a voteRepoAdapter) Delete(ctx context.Context, id string) error {
	return a.DeleteVote(ctx, id)
}

/* ResultsCache */

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, pollID, orderBy string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[pollID+":"+orderBy]
	return payload, ok
}

func (c *fakeCache) Set(ctx context.Context, pollID, orderBy string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pollID+":"+orderBy] = payload
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, pollID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, pollID+":position")
	delete(c.entries, pollID+":votes")
	c.invalidated = append(c.invalidated, pollID)
	return nil
}
