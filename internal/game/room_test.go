package game

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bryans04/rps-arena/internal/protocol"
)

func newTestRoom(t *testing.T, cfg RoomConfig) *Room {
	t.Helper()
	r := NewRoom("arena", cfg, zerolog.Nop())
	t.Cleanup(r.Shutdown)
	return r
}

func addTestPlayer(r *Room, id int64, name string) (*Player, *recordConn) {
	conn := newRecordConn(id)
	p := NewPlayer(conn, name)
	r.AddClient(p)
	return p, conn
}

// withLock runs fn under the room mutex so tests can inspect state that
// timer goroutines may touch concurrently.
func (r *Room) withLock(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

func (r *Room) phaseNow() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) currentTurnNow() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.currentID()
}

func readyUp(r *Room, ids ...int64) {
	for _, id := range ids {
		r.SetReady(id)
	}
}

func TestRoom_AddClientDuplicateIsNoop(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	p, _ := addTestPlayer(r, 1, "alice")
	r.AddClient(p)
	assert.Len(t, r.Members(), 1)
}

func TestRoom_RemoveClientIdempotent(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")
	r.RemoveClient(1)
	r.RemoveClient(1)
	r.RemoveClient(99)
	assert.Empty(t, r.Members())
}

func TestRoom_ReadyBelowMinimumDoesNotStart(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")
	r.SetReady(1)
	assert.Equal(t, PhaseReady, r.phaseNow())
}

func TestRoom_AllReadyStartsSession(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")
	addTestPlayer(r, 2, "bob")
	addTestPlayer(r, 3, "cara")
	readyUp(r, 1, 2)
	assert.Equal(t, PhaseReady, r.phaseNow(), "one member still unready")
	r.SetReady(3)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	r.withLock(func() {
		assert.Equal(t, 1, r.round)
		assert.Equal(t, 3, r.order.len())
		assert.NotNil(t, r.roundTimer)
		assert.Nil(t, r.turnTimer, "simultaneous play never holds a turn timer")
	})
}

// Scenario: rock, paper and scissors all tie at one win apiece, so all
// three earn a point, nobody is eliminated and the next round starts
// without re-readying.
func TestRoom_ThreeWayStandoffAwardsEveryone(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	p1, _ := addTestPlayer(r, 1, "alice")
	p2, _ := addTestPlayer(r, 2, "bob")
	p3, _ := addTestPlayer(r, 3, "cara")
	readyUp(r, 1, 2, 3)

	r.HandlePick(1, "r")
	r.HandlePick(2, "p")
	r.HandlePick(3, "s")

	r.withLock(func() {
		assert.Equal(t, 1, p1.points)
		assert.Equal(t, 1, p2.points)
		assert.Equal(t, 1, p3.points)
		assert.False(t, p1.eliminated)
		assert.False(t, p2.eliminated)
		assert.False(t, p3.eliminated)
		assert.Equal(t, 2, r.round, "all-picked short-circuit rolled into round 2")
		assert.Equal(t, PhaseInProgress, r.phase)
	})
}

func TestRoom_LoserIsEliminatedAndSessionEnds(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	p1, c1 := addTestPlayer(r, 1, "alice")
	p2, _ := addTestPlayer(r, 2, "bob")
	readyUp(r, 1, 2)

	r.HandlePick(1, "r")
	r.HandlePick(2, "s")

	// rock beats scissors: bob at zero tally is eliminated, one survivor
	// remains, the session ends and the room returns to READY
	require.Equal(t, PhaseReady, r.phaseNow())
	over, ok := c1.lastOfType(protocol.PayloadGameOver)
	require.True(t, ok)
	assert.Equal(t, []string{"alice#1"}, over.Winners)
	require.NotEmpty(t, over.Scoreboard)
	assert.Equal(t, "alice#1", over.Scoreboard[0].Name)

	r.withLock(func() {
		assert.False(t, p1.ready, "ready flags reset at session end")
		assert.False(t, p2.eliminated, "elimination reset at session end")
		assert.Equal(t, 0, p1.points)
		assert.Equal(t, 0, r.round)
		assert.Equal(t, 0, r.order.len())
	})
}

// Scenario: one of two players never picks before the round timer runs
// out. They are eliminated for non-response and the other player wins the
// session.
func TestRoom_NonPickerEliminatedOnTimerExpiry(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 2})
	addTestPlayer(r, 1, "alice")
	_, c2 := addTestPlayer(r, 2, "bob")
	readyUp(r, 1, 2)

	r.HandlePick(1, "r")

	require.Eventually(t, func() bool { return r.phaseNow() == PhaseReady },
		10*time.Second, 50*time.Millisecond, "round timer should end the session")

	elims := c2.allOfType(protocol.PayloadElimination)
	require.NotEmpty(t, elims)
	assert.Equal(t, int64(2), elims[0].ClientID)
	assert.True(t, elims[0].Flag, "bob eliminated for not making a choice")

	over, ok := c2.lastOfType(protocol.PayloadGameOver)
	require.True(t, ok)
	assert.Equal(t, []string{"alice#1"}, over.Winners)
}

// Scenario: with cooldown enabled a repeated pick is rejected and the
// stored choice is left untouched.
func TestRoom_CooldownRejectsRepeatPick(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	p1, c1 := addTestPlayer(r, 1, "alice")
	addTestPlayer(r, 2, "bob")
	addTestPlayer(r, 3, "cara")
	r.SetGameMode(1, "rps3", true)
	readyUp(r, 1, 2, 3)

	// round 1: standoff keeps everyone alive
	r.HandlePick(1, "r")
	r.HandlePick(2, "p")
	r.HandlePick(3, "s")
	r.withLock(func() {
		require.Equal(t, 2, r.round)
		require.Equal(t, "r", p1.prevChoice)
	})

	before := len(c1.allOfType(protocol.PayloadMessage))
	r.HandlePick(1, "r")
	r.withLock(func() {
		assert.Empty(t, p1.choice, "rejected pick must not overwrite stored choice")
	})
	assert.Greater(t, len(c1.allOfType(protocol.PayloadMessage)), before,
		"rejection notice goes to the offender")

	r.HandlePick(1, "p")
	r.withLock(func() {
		assert.Equal(t, "p", p1.choice)
	})
}

// Scenario: game mode changes are rejected mid-session.
func TestRoom_GameModeLockedDuringPlay(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")
	_, c2 := addTestPlayer(r, 2, "bob")
	r.SetGameMode(1, "rps5", true)
	readyUp(r, 1, 2)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	r.SetGameMode(2, "rps3", false)
	r.withLock(func() {
		assert.Equal(t, "rps5", r.mode.ID)
		assert.True(t, r.cooldownEnabled)
	})
	last, ok := c2.lastOfType(protocol.PayloadMessage)
	require.True(t, ok)
	assert.Contains(t, last.Message, "READY phase")
}

func TestRoom_GameModeBroadcast(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")
	_, c2 := addTestPlayer(r, 2, "bob")

	r.SetGameMode(1, "rps5", true)
	got, ok := c2.lastOfType(protocol.PayloadGameMode)
	require.True(t, ok)
	assert.Equal(t, "rps5", got.GameMode)
	assert.True(t, got.Cooldown)

	r.SetGameMode(1, "rps9", false)
	r.withLock(func() {
		assert.Equal(t, "rps5", r.mode.ID, "unknown mode ids are rejected")
	})
}

func TestRoom_AwayPlayersExcludedFromResolution(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	p1, _ := addTestPlayer(r, 1, "alice")
	p2, _ := addTestPlayer(r, 2, "bob")
	p3, _ := addTestPlayer(r, 3, "cara")
	readyUp(r, 1, 2, 3)
	r.SetAway(3, true)

	r.HandlePick(3, "r")
	r.withLock(func() {
		assert.Empty(t, p3.choice, "away players cannot pick")
	})

	// resolution runs with the two present players only
	r.HandlePick(1, "r")
	r.HandlePick(2, "s")
	require.Equal(t, PhaseReady, r.phaseNow())
	r.withLock(func() {
		assert.Equal(t, 0, p2.points)
		assert.Equal(t, 0, p1.points, "points reset after session end")
	})
}

// Scenario: the current turn holder disconnects; the turn advances at once
// instead of waiting for the turn timer.
func TestRoom_TurnHolderLeavingAdvancesTurn(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{TurnSeconds: 300, TurnBased: true})
	addTestPlayer(r, 1, "alice")
	addTestPlayer(r, 2, "bob")
	addTestPlayer(r, 3, "cara")
	readyUp(r, 1, 2, 3)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	cur := r.currentTurnNow()
	require.NotEqual(t, protocol.DefaultClientID, cur)

	r.RemoveClient(cur)
	next := r.currentTurnNow()
	assert.NotEqual(t, protocol.DefaultClientID, next)
	assert.NotEqual(t, cur, next)
	r.withLock(func() {
		assert.NotNil(t, r.turnTimer)
		assert.Nil(t, r.roundTimer, "turn-based play never holds a round timer")
		assert.Equal(t, 1, r.round)
	})
}

func TestRoom_TurnFlow(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{TurnSeconds: 300, TurnBased: true})
	p1, _ := addTestPlayer(r, 1, "alice")
	p2, _ := addTestPlayer(r, 2, "bob")
	r.withLock(func() {
		r.bonusRoll = func() bool { return true }
	})
	readyUp(r, 1, 2)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	first := r.currentTurnNow()
	other := int64(1)
	if first == 1 {
		other = 2
	}

	// acting out of turn is rejected without touching state
	r.HandleTurn(other)
	r.withLock(func() {
		assert.Equal(t, 0, p1.points+p2.points)
	})

	r.HandleTurn(first)
	r.HandleTurn(r.currentTurnNow())

	r.withLock(func() {
		assert.Equal(t, 2, r.round, "last turn in order ends the round")
		assert.Equal(t, 1, p1.points)
		assert.Equal(t, 1, p2.points)
		assert.False(t, p1.tookTurn, "turn flags reset for the new round")
	})
}

// An away turn holder cannot act: the turn action is rejected without
// scoring, marking the turn taken or advancing the round.
func TestRoom_AwayTurnHolderCannotAct(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{TurnSeconds: 300, TurnBased: true})
	_, c1 := addTestPlayer(r, 1, "alice")
	_, c2 := addTestPlayer(r, 2, "bob")
	r.withLock(func() {
		r.bonusRoll = func() bool { return true }
	})
	readyUp(r, 1, 2)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	cur := r.currentTurnNow()
	conns := map[int64]*recordConn{1: c1, 2: c2}
	r.SetAway(cur, true)

	r.HandleTurn(cur)
	r.withLock(func() {
		p := r.clients[cur]
		assert.False(t, p.tookTurn)
		assert.Equal(t, 0, p.points)
		assert.Equal(t, 1, r.round)
		assert.Equal(t, cur, r.order.currentID())
	})
	last, ok := conns[cur].lastOfType(protocol.PayloadMessage)
	require.True(t, ok)
	assert.Contains(t, last.Message, "cannot take a turn")
}

func TestRoom_StaleTimerTickDropped(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	_, c1 := addTestPlayer(r, 1, "alice")
	addTestPlayer(r, 2, "bob")
	readyUp(r, 1, 2)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	var gen uint64
	r.withLock(func() { gen = r.timerGen })
	r.sendCurrentTime(gen, protocol.TimerRound, 7)
	got, ok := c1.lastOfType(protocol.PayloadCurrentTime)
	require.True(t, ok)
	assert.Equal(t, 7, got.Time)

	// cancelling the timer bumps the generation; a tick that was already in
	// flight must not overwrite the -1 reset
	r.withLock(func() { r.resetRoundTimer() })
	r.sendCurrentTime(gen, protocol.TimerRound, 5)
	got, ok = c1.lastOfType(protocol.PayloadCurrentTime)
	require.True(t, ok)
	assert.Equal(t, -1, got.Time)
}

func TestRoom_BroadcastEvictsFailedConn(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")

	bad := &MockConn{}
	bad.On("ID").Return(int64(2))
	bad.On("Send", mock.Anything).Return(ErrConnClosed)
	bad.On("Close").Return()

	r.AddClient(NewPlayer(bad, "bob"))
	assert.Len(t, r.Members(), 1, "unreachable client evicted during broadcast")
	bad.AssertCalled(t, "Close")
}

func TestRoom_EmptyRoomCancelsTimers(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	addTestPlayer(r, 1, "alice")
	addTestPlayer(r, 2, "bob")
	readyUp(r, 1, 2)
	require.Equal(t, PhaseInProgress, r.phaseNow())

	r.RemoveClient(1)
	r.RemoveClient(2)
	r.withLock(func() {
		assert.Nil(t, r.roundTimer)
		assert.Nil(t, r.turnTimer)
		assert.Equal(t, PhaseReady, r.phase)
	})
}

func TestRoom_PickRejectedInReadyPhase(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, RoomConfig{RoundSeconds: 300})
	p1, c1 := addTestPlayer(r, 1, "alice")

	r.HandlePick(1, "r")
	r.withLock(func() {
		assert.Empty(t, p1.choice)
	})
	last, ok := c1.lastOfType(protocol.PayloadMessage)
	require.True(t, ok)
	assert.Contains(t, last.Message, "IN_PROGRESS")
}
