package remote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
)

func TestPullMerges(t *testing.T) {
	f := &fakeGitHub{exists: true, sha: "abc", table: highscore.Table{entryB}}
	s := NewSyncer(newTestClient(t, f, "secret"), nil)

	got := s.Pull(context.Background(), highscore.Table{entryA})
	if len(got) != 2 || got[0] != entryB || got[1] != entryA {
		t.Errorf("Pull() = %v, expected [B A]", got)
	}
}

func TestPullFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name  string
		f     *fakeGitHub
		token string
	}{
		{"no token", &fakeGitHub{exists: true}, ""},
		{"missing file", &fakeGitHub{}, "secret"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSyncer(newTestClient(t, tc.f, tc.token), nil)
			local := highscore.Table{entryA}
			if got := s.Pull(context.Background(), local); len(got) != 1 || got[0] != entryA {
				t.Errorf("Pull() = %v, expected local table", got)
			}
		})
	}
}

func TestPushMergesAndWrites(t *testing.T) {
	f := &fakeGitHub{exists: true, sha: "abc", table: highscore.Table{entryB}}
	s := NewSyncer(newTestClient(t, f, "secret"), nil)

	got, err := s.Push(context.Background(), highscore.Table{entryA})
	if err != nil {
		t.Fatalf("Push() error: %v", err)
	}
	if len(got) != 2 || got[0] != entryB {
		t.Errorf("Push() = %v, expected merged table", got)
	}
	if len(f.table) != 2 || f.table[1] != entryA {
		t.Errorf("remote table = %v, expected merged table", f.table)
	}
}

func TestPushCreatesMissingFile(t *testing.T) {
	f := &fakeGitHub{}
	s := NewSyncer(newTestClient(t, f, "secret"), nil)

	if _, err := s.Push(context.Background(), highscore.Table{entryA}); err != nil {
		t.Fatalf("Push() error: %v", err)
	}
	if !f.exists || len(f.table) != 1 {
		t.Errorf("remote table = %v, expected file to be created", f.table)
	}
}

func TestPushFailureKeepsLocal(t *testing.T) {
	f := &fakeGitHub{exists: true, sha: "abc", failPut: true}
	s := NewSyncer(newTestClient(t, f, "secret"), nil)

	local := highscore.Table{entryA}
	got, err := s.Push(context.Background(), local)
	if err == nil {
		t.Fatal("Push() should report the failed write")
	}
	if len(got) != 1 || got[0] != entryA {
		t.Errorf("Push() = %v, expected local table", got)
	}
	if len(f.puts) != 1 {
		t.Errorf("made %d writes, expected exactly one (no retry)", len(f.puts))
	}
}

func TestPushWithoutToken(t *testing.T) {
	s := NewSyncer(newTestClient(t, &fakeGitHub{}, ""), nil)

	if _, err := s.Push(context.Background(), highscore.Table{entryA}); !errors.Is(err, ErrNoToken) {
		t.Errorf("Push() error = %v, expected ErrNoToken", err)
	}
}

func TestAsyncResults(t *testing.T) {
	f := &fakeGitHub{exists: true, sha: "abc", table: highscore.Table{entryB}}
	s := NewSyncer(newTestClient(t, f, "secret"), nil)
	ctx := context.Background()

	for _, ch := range []<-chan Result{
		s.PullAsync(ctx, highscore.Table{entryA}),
		s.PushAsync(ctx, highscore.Table{entryA}),
	} {
		select {
		case r := <-ch:
			if r.Err != nil {
				t.Errorf("%s error: %v", r.Op, r.Err)
			}
			if len(r.Table) != 2 {
				t.Errorf("%s table = %v, expected 2 entries", r.Op, r.Table)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for async result")
		}
	}
}
