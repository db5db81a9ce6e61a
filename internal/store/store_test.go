package store

import (
	"context"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	name string
	open func(t *testing.T) Store
}

func backends() []backend {
	return []backend{
		{
			name: "memory",
			open: func(t *testing.T) Store { return NewMemoryStore() },
		},
		{
			name: "sqlite",
			open: func(t *testing.T) Store {
				s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "loanportal.db"))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "redis",
			open: func(t *testing.T) Store {
				mr, err := miniredis.Run()
				require.NoError(t, err)
				t.Cleanup(mr.Close)
				return NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
			},
		},
	}
}

// forEachBackend runs fn against a fresh store for every backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			t.Cleanup(func() { _ = s.Close() })
			fn(t, s)
		})
	}
}

var weekStart = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

func newDocument(userID uuid.UUID, created time.Time) preapproval.Document {
	return preapproval.Document{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: created,
		UpdatedAt: created,
		Scenarios: []preapproval.Scenario{
			{
				ID:   uuid.New(),
				Name: "Base",
				PurchaseInfo: &preapproval.PurchaseInfo{
					PurchasePrice: decimal.RequireFromString("300000"),
					DownPayment:   decimal.RequireFromString("20"),
				},
				MiscFees: &preapproval.MiscFees{SellerCredit: decimal.NewNullDecimal(decimal.RequireFromString("1500.25"))},
			},
		},
	}
}

func ids(docs []preapproval.Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.ID.String()
	}
	sort.Strings(out)
	return out
}

func idsOf(docs ...preapproval.Document) []string {
	return ids(docs)
}

func TestDocumentRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		doc := newDocument(uuid.New(), weekStart.Add(2*time.Hour))

		require.NoError(t, s.InsertDocument(ctx, doc))

		got, err := s.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, doc.UserID, got.UserID)
		assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))
		require.Len(t, got.Scenarios, 1)
		scenario := got.Scenarios[0]
		assert.Equal(t, doc.Scenarios[0].ID, scenario.ID)
		require.NotNil(t, scenario.PurchaseInfo)
		assert.True(t, scenario.PurchaseInfo.PurchasePrice.Equal(decimal.RequireFromString("300000")))
		assert.True(t, scenario.MiscFees.SellerCredit.Valid)
		assert.True(t, scenario.MiscFees.SellerCredit.Decimal.Equal(decimal.RequireFromString("1500.25")))
		assert.False(t, scenario.MiscFees.LenderCredit.Valid)
		assert.Nil(t, scenario.LoanProgram)
	})
}

func TestInsertDuplicate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		doc := newDocument(uuid.New(), weekStart)
		require.NoError(t, s.InsertDocument(ctx, doc))
		assert.ErrorIs(t, s.InsertDocument(ctx, doc), ErrAlreadyExists)
	})
}

func TestGetMissingDocument(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		_, err := s.GetDocument(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReplaceDocument(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		doc := newDocument(uuid.New(), weekStart)
		require.NoError(t, s.InsertDocument(ctx, doc))

		doc.Status = preapproval.StatusInEscrow
		doc.Scenarios = append(doc.Scenarios, preapproval.Scenario{ID: uuid.New(), Name: "Second"})
		require.NoError(t, s.ReplaceDocument(ctx, doc))

		got, err := s.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, preapproval.StatusInEscrow, got.Status)
		require.Len(t, got.Scenarios, 2)
		assert.Equal(t, "Second", got.Scenarios[1].Name)

		missing := newDocument(uuid.New(), weekStart)
		assert.ErrorIs(t, s.ReplaceDocument(ctx, missing), ErrNotFound)
	})
}

func TestReplaceMovesOwner(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		from, to := uuid.New(), uuid.New()
		doc := newDocument(from, weekStart)
		require.NoError(t, s.InsertDocument(ctx, doc))

		doc.UserID = to
		require.NoError(t, s.ReplaceDocument(ctx, doc))

		fromDocs, err := s.ListDocuments(ctx, from)
		require.NoError(t, err)
		assert.Empty(t, fromDocs)
		toDocs, err := s.ListDocuments(ctx, to)
		require.NoError(t, err)
		assert.Equal(t, idsOf(doc), ids(toDocs))
	})
}

func TestDeleteDocuments(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := uuid.New()
		a := newDocument(user, weekStart)
		b := newDocument(user, weekStart.Add(time.Hour))
		c := newDocument(user, weekStart.Add(2*time.Hour))
		for _, doc := range []preapproval.Document{a, b, c} {
			require.NoError(t, s.InsertDocument(ctx, doc))
		}

		require.NoError(t, s.DeleteDocuments(ctx, []uuid.UUID{a.ID, c.ID, uuid.New()}))
		require.NoError(t, s.DeleteDocuments(ctx, nil))

		docs, err := s.ListDocuments(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, idsOf(b), ids(docs))

		_, err = s.GetDocument(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListDocumentsByUser(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		alice, bob := uuid.New(), uuid.New()
		a1 := newDocument(alice, weekStart)
		a2 := newDocument(alice, weekStart.Add(-48*time.Hour))
		b1 := newDocument(bob, weekStart)
		for _, doc := range []preapproval.Document{a1, a2, b1} {
			require.NoError(t, s.InsertDocument(ctx, doc))
		}

		docs, err := s.ListDocuments(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, idsOf(a1, a2), ids(docs))

		docs, err = s.ListDocuments(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})
}

func TestListCreatedBetween(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := uuid.New()
		atStart := newDocument(user, weekStart)
		inside := newDocument(user, weekStart.Add(3*24*time.Hour))
		atEnd := newDocument(user, weekStart.AddDate(0, 0, 7))
		before := newDocument(user, weekStart.Add(-time.Second))
		other := newDocument(uuid.New(), weekStart.Add(time.Hour))
		for _, doc := range []preapproval.Document{atStart, inside, atEnd, before, other} {
			require.NoError(t, s.InsertDocument(ctx, doc))
		}

		docs, err := s.ListCreatedBetween(ctx, user, weekStart, weekStart.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.Equal(t, idsOf(atStart, inside), ids(docs))
	})
}

func TestListPreApprovedBetween(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		user := uuid.New()
		inWeek := weekStart.Add(26 * time.Hour)
		lastWeek := weekStart.Add(-26 * time.Hour)

		approved := newDocument(user, lastWeek)
		approved.Status = preapproval.StatusPreApproved
		approved.StatusUpdatedAt = &inWeek

		approvedLastWeek := newDocument(user, lastWeek)
		approvedLastWeek.Status = preapproval.StatusPreApproved
		approvedLastWeek.StatusUpdatedAt = &lastWeek

		escrow := newDocument(user, lastWeek)
		escrow.Status = preapproval.StatusInEscrow
		escrow.StatusUpdatedAt = &inWeek

		noTimestamp := newDocument(user, inWeek)
		noTimestamp.Status = preapproval.StatusPreApproved

		for _, doc := range []preapproval.Document{approved, approvedLastWeek, escrow, noTimestamp} {
			require.NoError(t, s.InsertDocument(ctx, doc))
		}

		docs, err := s.ListPreApprovedBetween(ctx, user, weekStart, weekStart.AddDate(0, 0, 7))
		require.NoError(t, err)
		assert.Equal(t, idsOf(approved), ids(docs))

		docs, err = s.ListPreApprovedBetween(ctx, user, weekStart.AddDate(0, 0, -7), weekStart)
		require.NoError(t, err)
		assert.Equal(t, idsOf(approvedLastWeek), ids(docs))
	})
}

func TestAgents(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		agent := preapproval.Agent{ID: uuid.New(), FirstName: "Avery", LastName: "Stone", CompanyName: "Harbor Lending", IsActive: true}

		_, err := s.GetAgent(ctx, agent.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.PutAgent(ctx, agent))
		agent.JobTitle = "Loan Officer"
		require.NoError(t, s.PutAgent(ctx, agent))

		got, err := s.GetAgent(ctx, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, agent, got)
	})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := newDocument(uuid.New(), weekStart)
	require.NoError(t, s.InsertDocument(ctx, doc))

	got, err := s.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	got.Scenarios[0].Name = "Mutated"

	again, err := s.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Base", again.Scenarios[0].Name)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Config{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "open.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	s, err = Open(ctx, Config{Driver: "redis", Redis: RedisConfig{Address: mr.Addr()}}, nil)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Driver: "mongo"}, nil)
	assert.Error(t, err)
}
