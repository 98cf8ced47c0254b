package history

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/store"
)

func testRepo(t *testing.T) *store.EventRepo {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func testBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	bank, err := questionbank.New([]questionbank.Entry{{
		Candidate: questionbank.Candidate{ID: "chess", Name: "Chess"},
		Questions: []questionbank.Question{{Text: "Is it abstract?"}},
	}})
	require.NoError(t, err)
	return bank
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(testRepo(t), testBank(t))
	s.Update(s.Init()())
	assert.Contains(t, s.View(100, 30), "No games yet")
}

func TestHistoryScreen_ListsAndExpands(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repo.RecordGame(ctx, session.GameRecord{
		SessionID: "g1", Outcome: session.OutcomeCorrect, Candidate: "chess", Rounds: 5, Guesses: 1, PlayedAt: now,
	}))
	require.NoError(t, repo.RecordAnswer(ctx, session.AnswerRecord{
		SessionID: "g1", Round: 1, Question: "Is it abstract?", Answer: int(session.AnswerYes), At: now,
	}))

	s := New(repo, testBank(t))
	s.Update(s.Init()())

	view := s.View(100, 30)
	assert.Contains(t, view, "Chess")
	assert.Contains(t, view, "guessed")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(100, 30), "loading")

	s.Update(cmd())
	view = s.View(100, 30)
	assert.Contains(t, view, "Is it abstract?")
	assert.True(t, strings.Contains(view, "Yes"))

	// Collapsing and expanding again does not reload.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestHistoryScreen_Esc(t *testing.T) {
	s := New(testRepo(t), testBank(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
