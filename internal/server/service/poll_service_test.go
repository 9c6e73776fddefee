package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"poll-service/internal/models"
)

func TestCreatePollValidation(t *testing.T) {
	f := newVoteFixture()

	valid := func() models.CreatePollRequest {
		return models.CreatePollRequest{
			Title:   "Where to eat?",
			Options: []string{"Pizza", "Sushi"},
		}
	}

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := f.polls.CreatePoll(context.Background(), anon("device-1"), valid())
		assertCode(t, err, CodeUnauthorized)
	})

	t.Run("TitleTooShort", func(t *testing.T) {
		req := valid()
		req.Title = "ab"
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("TitleTooLong", func(t *testing.T) {
		req := valid()
		req.Title = strings.Repeat("x", 201)
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("TitleAtBounds", func(t *testing.T) {
		for _, n := range []int{3, 200} {
			req := valid()
			req.Title = strings.Repeat("x", n)
			if _, err := f.polls.CreatePoll(context.Background(), authed("owner"), req); err != nil {
				t.Errorf("title of %d chars should be accepted: %v", n, err)
			}
		}
	})

	t.Run("OptionCountBounds", func(t *testing.T) {
		for _, n := range []int{0, 1, 11} {
			req := valid()
			req.Options = optionTexts(n)
			_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
			assertCode(t, err, CodeValidation)
		}
		for _, n := range []int{2, 10} {
			req := valid()
			req.Options = optionTexts(n)
			if _, err := f.polls.CreatePoll(context.Background(), authed("owner"), req); err != nil {
				t.Errorf("%d options should be accepted: %v", n, err)
			}
		}
	})

	t.Run("EmptyOptionText", func(t *testing.T) {
		req := valid()
		req.Options = []string{"Pizza", ""}
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("DuplicateOptionText", func(t *testing.T) {
		req := valid()
		req.Options = []string{"Pizza", "Pizza"}
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("BadVoteType", func(t *testing.T) {
		req := valid()
		req.VoteType = "bogus"
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("MalformedExpiry", func(t *testing.T) {
		req := valid()
		req.ExpiresAt = "tomorrow"
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("PastExpiry", func(t *testing.T) {
		req := valid()
		req.ExpiresAt = time.Now().Add(-time.Hour).Format(time.RFC3339)
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})

	t.Run("ExpiryBeforeStart", func(t *testing.T) {
		req := valid()
		req.StartAt = time.Now().Add(2 * time.Hour).Format(time.RFC3339)
		req.ExpiresAt = time.Now().Add(time.Hour).Format(time.RFC3339)
		_, err := f.polls.CreatePoll(context.Background(), authed("owner"), req)
		assertCode(t, err, CodeValidation)
	})
}

func optionTexts(n int) []string {
	texts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		texts = append(texts, fmt.Sprintf("Option %d", i+1))
	}
	return texts
}

func TestCreatePollDefaults(t *testing.T) {
	f := newVoteFixture()
	created, err := f.polls.CreatePoll(context.Background(), authed("owner"), models.CreatePollRequest{
		Title:   "Defaults",
		Options: []string{"A", "B", "C"},
	})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	if created.Poll.VoteType != models.VoteTypeSingle {
		t.Errorf("expected default vote type single, got %s", created.Poll.VoteType)
	}
	if !created.Poll.ShowResults {
		t.Error("expected show_results to default to true")
	}
	if created.Poll.IsActive {
		t.Error("new polls must start inactive")
	}
	for i, option := range created.Options {
		if option.Position != i {
			t.Errorf("option %d: expected position %d, got %d", i, i, option.Position)
		}
		if option.PollID != created.Poll.ID {
			t.Errorf("option %d not linked to poll", i)
		}
	}
}

func TestSetActive(t *testing.T) {
	f := newVoteFixture()

	t.Run("RequiresTwoOptions", func(t *testing.T) {
		poll, _ := f.seedPoll(t, &models.Poll{Title: "Thin", OwnerID: "owner"}, "Only one")
		_, err := f.polls.SetActive(context.Background(), authed("owner"), poll.ID, true)
		assertCode(t, err, CodeValidation)
	})

	t.Run("OwnerActivates", func(t *testing.T) {
		poll, _ := f.seedPoll(t, &models.Poll{Title: "Ready", OwnerID: "owner"}, "A", "B")
		updated, err := f.polls.SetActive(context.Background(), authed("owner"), poll.ID, true)
		if err != nil {
			t.Fatalf("expected activation, got %v", err)
		}
		if !updated.IsActive {
			t.Error("expected is_active to flip to true")
		}
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		poll, _ := f.seedPoll(t, &models.Poll{Title: "Guarded", OwnerID: "owner"}, "A", "B")
		_, err := f.polls.SetActive(context.Background(), authed("mallory"), poll.ID, true)
		assertCode(t, err, CodeUnauthorized)
	})

	t.Run("DeactivationUnconditional", func(t *testing.T) {
		poll, _ := f.seedPoll(t, &models.Poll{Title: "Thin again", OwnerID: "owner", IsActive: true}, "Only one")
		updated, err := f.polls.SetActive(context.Background(), authed("owner"), poll.ID, false)
		if err != nil {
			t.Fatalf("expected deactivation, got %v", err)
		}
		if updated.IsActive {
			t.Error("expected is_active to flip to false")
		}
	})

	t.Run("MissingPoll", func(t *testing.T) {
		_, err := f.polls.SetActive(context.Background(), authed("owner"), "nope", true)
		assertCode(t, err, CodeNotFound)
	})
}

func TestUpdateAndDeletePollOwnership(t *testing.T) {
	f := newVoteFixture()
	poll, _ := f.seedPoll(t, &models.Poll{Title: "Editable", OwnerID: "owner"}, "A", "B")

	t.Run("NonOwnerUpdateRejected", func(t *testing.T) {
		title := "Hijacked"
		_, err := f.polls.UpdatePoll(context.Background(), authed("mallory"), poll.ID, models.UpdatePollRequest{Title: &title})
		assertCode(t, err, CodeUnauthorized)
	})

	t.Run("OwnerUpdates", func(t *testing.T) {
		title := "Renamed"
		updated, err := f.polls.UpdatePoll(context.Background(), authed("owner"), poll.ID, models.UpdatePollRequest{Title: &title})
		if err != nil {
			t.Fatalf("expected update, got %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("expected renamed title, got %q", updated.Title)
		}
	})

	t.Run("ShortTitleRejected", func(t *testing.T) {
		title := "ab"
		_, err := f.polls.UpdatePoll(context.Background(), authed("owner"), poll.ID, models.UpdatePollRequest{Title: &title})
		assertCode(t, err, CodeValidation)
	})

	t.Run("NonOwnerDeleteRejected", func(t *testing.T) {
		err := f.polls.DeletePoll(context.Background(), authed("mallory"), poll.ID)
		assertCode(t, err, CodeUnauthorized)
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		if err := f.polls.DeletePoll(context.Background(), authed("owner"), poll.ID); err != nil {
			t.Fatalf("expected deletion, got %v", err)
		}
		_, err := f.polls.GetPoll(context.Background(), poll.ID)
		assertCode(t, err, CodeNotFound)
	})
}
