package governance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEntityKind_RoundTrip(t *testing.T) {
	for _, k := range []EntityKind{KindTemperatureCheck, KindProposal} {
		parsed, err := ParseEntityKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseEntityKind("referendum")
	assert.Error(t, err)
}

func TestComponent_Counts(t *testing.T) {
	reader := newFakeReader(componentState(4, 2))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	counts, err := c.Counts(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, uint64(4), counts.TemperatureChecks)
	assert.Equal(t, uint64(2), counts.Proposals)
	assert.Equal(t, testTCStore, counts.TemperatureCheckStore)
	assert.Equal(t, testPropStore, counts.ProposalStore)
}

func TestComponent_TemperatureCheck(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reader := newFakeReader(componentState(1, 0))
	reader.put(testTCStore, 0, entityValue("Raise fees", 7, "internal_keyvaluestore_votes0", start))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	tc, err := c.TemperatureCheck(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, EntityRef{Kind: KindTemperatureCheck, ID: 0}, tc.Ref)
	assert.Equal(t, "Raise fees", tc.Title)
	assert.Equal(t, uint64(7), tc.VoteCount)
	assert.Equal(t, "internal_keyvaluestore_votes0", tc.VoteStore)
	assert.True(t, start.Equal(tc.Start))
	require.Len(t, tc.Options, 2)
	assert.Equal(t, OptionFor, tc.Options[0].ID)
}

func TestComponent_ProposalOptions(t *testing.T) {
	reader := newFakeReader(componentState(0, 1))
	reader.put(testPropStore, 0, entityValue("Pick one", 0, "internal_keyvaluestore_pv", time.Unix(100, 0), "Alpha", "Beta", "Gamma"))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	p, err := c.Proposal(context.Background(), 0, 0)

	require.NoError(t, err)
	require.Len(t, p.Options, 3)
	assert.Equal(t, VoteOption{ID: "2", Label: "Gamma"}, p.Options[2])
}

func TestComponent_EntityNotFound(t *testing.T) {
	reader := newFakeReader(componentState(0, 0))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	_, err := c.Proposal(context.Background(), 9, 0)

	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestComponent_VotesByIndexMapsToZeroBasedKeys(t *testing.T) {
	store := "internal_keyvaluestore_votes"
	reader := newFakeReader(componentState(1, 0))
	reader.put(store, 0, tcVote("account_a", true))
	reader.put(store, 1, tcVote("account_b", false))
	reader.put(store, 2, tcVote("account_a", false))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	votes, err := c.VotesByIndex(context.Background(), KindTemperatureCheck, store, 2, 3)

	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, Vote{Index: 2, Account: "account_b", Options: []string{OptionAgainst}}, votes[0])
	assert.Equal(t, Vote{Index: 3, Account: "account_a", Options: []string{OptionAgainst}}, votes[1])
}

func TestComponent_VotesByIndexProposal(t *testing.T) {
	store := "internal_keyvaluestore_pvotes"
	reader := newFakeReader(componentState(0, 1))
	reader.put(store, 0, proposalVote("account_a", 0, 2))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	votes, err := c.VotesByIndex(context.Background(), KindProposal, store, 1, 1)

	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, []string{"0", "2"}, votes[0].Options)
	assert.Equal(t, uint64(1), votes[0].Index)
}

func TestComponent_VotesByIndexEmptyRange(t *testing.T) {
	reader := newFakeReader(componentState(0, 0))
	c := NewComponent(zaptest.NewLogger(t), reader, testComponent)

	votes, err := c.VotesByIndex(context.Background(), KindProposal, "store", 5, 4)

	require.NoError(t, err)
	assert.Empty(t, votes)
	assert.Equal(t, 0, reader.kvsCalls)
}
