package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bryans04/rps-arena/internal/protocol"
)

// Phase is the room-level state: waiting in the lobby or actively playing.
type Phase string

const (
	PhaseReady      Phase = "READY"
	PhaseInProgress Phase = "IN_PROGRESS"
)

const minimumRequiredToStart = 2

// RoomConfig holds per-room gameplay settings fixed at creation.
type RoomConfig struct {
	RoundSeconds int
	TurnSeconds  int
	// TurnBased switches the room from simultaneous picks bounded by the
	// round timer to sequential turns bounded by the turn timer.
	TurnBased bool
}

// Room is the session orchestrator. It owns membership, the phase machine,
// the round and turn timers, and round resolution. Every mutating operation
// takes the single room mutex; timer callbacks re-acquire it and verify the
// timer generation before acting, so a stale expiry never resolves a round
// twice.
type Room struct {
	name string
	mu   sync.Mutex
	log  zerolog.Logger
	cfg  RoomConfig

	clients         map[int64]*Player
	phase           Phase
	mode            GameMode
	cooldownEnabled bool

	gameStarted bool
	round       int
	order       *turnOrder

	roundTimer *countdown
	turnTimer  *countdown
	timerGen   uint64

	// bonusRoll decides the nondeterministic turn bonus; swapped out in tests.
	bonusRoll func() bool
}

func NewRoom(name string, cfg RoomConfig, log zerolog.Logger) *Room {
	if cfg.RoundSeconds <= 0 {
		cfg.RoundSeconds = 30
	}
	if cfg.TurnSeconds <= 0 {
		cfg.TurnSeconds = 30
	}
	return &Room{
		name:      name,
		cfg:       cfg,
		log:       log.With().Str("room", name).Logger(),
		clients:   make(map[int64]*Player),
		phase:     PhaseReady,
		mode:      RPS3,
		order:     &turnOrder{current: protocol.DefaultClientID},
		bonusRoll: func() bool { return rand.Intn(4) == 3 },
	}
}

func (r *Room) Name() string { return r.name }

func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients) == 0
}

// Members returns a snapshot of the current membership.
func (r *Room) Members() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Player, 0, len(r.clients))
	for _, p := range r.clients {
		out = append(out, p)
	}
	return out
}

// Shutdown cancels any active timers. The registry calls it when tearing
// down an empty room.
func (r *Room) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetRoundTimer()
	r.resetTurnTimer()
}

// AddClient registers a participant and synchronizes existing room state to
// it: phase, ready flags, and during play also turn flags and points.
// Adding an id that is already present is a logged no-op.
func (r *Room) AddClient(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.clients[p.id]; exists {
		r.log.Info().Int64("client", p.id).Msg("client already in room")
		return
	}
	r.clients[p.id] = p
	r.broadcast(protocol.Payload{
		Type:     protocol.PayloadRoomJoin,
		ClientID: p.id,
		Name:     p.name,
		Message:  r.name,
	})
	r.gameEvent(fmt.Sprintf("%s joined the room", p.DisplayName()))
	r.syncToNewcomer(p)
}

func (r *Room) syncToNewcomer(p *Player) {
	ok := p.send(protocol.Payload{Type: protocol.PayloadPhase, Phase: string(r.phase)})
	ok = ok && p.send(protocol.Payload{
		Type:     protocol.PayloadGameMode,
		GameMode: r.mode.ID,
		Cooldown: r.cooldownEnabled,
	})
	for _, other := range r.clients {
		if other.id == p.id {
			continue
		}
		ok = ok && p.send(protocol.Payload{
			Type:     protocol.PayloadSyncClient,
			ClientID: other.id,
			Name:     other.name,
			Flag:     other.spectator,
		})
		ok = ok && p.send(protocol.Payload{
			Type:     protocol.PayloadSyncReady,
			ClientID: other.id,
			Flag:     other.ready,
		})
		// turn and points state only matter mid-session; syncing them in
		// the lobby causes visual artifacts on the client
		if r.phase != PhaseReady {
			ok = ok && p.send(protocol.Payload{
				Type:     protocol.PayloadSyncTurn,
				ClientID: other.id,
				Flag:     other.tookTurn,
			})
			ok = ok && p.send(protocol.Payload{
				Type:     protocol.PayloadPoints,
				ClientID: other.id,
				Points:   other.points,
			})
		}
		if !ok {
			break
		}
	}
	if !ok {
		r.evict(p.id)
	}
}

// RemoveClient deletes a participant. Repeat removals are no-ops. An empty
// room cancels its timers and runs session-end cleanup; a departing turn
// holder hands the turn to the next player immediately.
func (r *Room) RemoveClient(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	wasCurrent := r.order.currentID() == id
	delete(r.clients, id)
	r.order.remove(id)
	r.broadcast(protocol.Payload{
		Type:     protocol.PayloadRoomLeave,
		ClientID: id,
		Name:     p.name,
		Message:  r.name,
	})
	r.gameEvent(fmt.Sprintf("%s left the room", p.DisplayName()))
	r.log.Info().Int64("client", id).Int("remaining", len(r.clients)).Msg("player removed")

	if len(r.clients) == 0 {
		r.resetRoundTimer()
		r.resetTurnTimer()
		r.sessionEnd()
		return
	}
	if r.phase == PhaseInProgress && r.cfg.TurnBased && wasCurrent {
		r.advanceTurn()
	}
}

// SetReady toggles the ready flag. When everyone is ready and at least two
// members are present, the session starts (full initialization on the first
// start per game, a plain round restart afterwards).
func (r *Room) SetReady(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	if r.phase != PhaseReady {
		r.notify(p, "Ready can only be toggled during the READY phase")
		return
	}
	p.ready = !p.ready
	r.broadcast(protocol.Payload{Type: protocol.PayloadReady, ClientID: id, Flag: p.ready})
	if p.ready {
		r.gameEvent(fmt.Sprintf("%s is ready", p.DisplayName()))
	} else {
		r.gameEvent(fmt.Sprintf("%s is not ready", p.DisplayName()))
	}

	numReady := 0
	for _, c := range r.clients {
		if c.ready {
			numReady++
		}
	}
	if numReady >= minimumRequiredToStart && numReady == len(r.clients) {
		if !r.gameStarted {
			r.sessionStart()
		} else {
			r.setPhase(PhaseInProgress)
			r.roundStart()
		}
	}
}

// SetGameMode changes the option set and cooldown rule. Permitted only in
// the READY phase so every client regenerates its choice buttons from the
// same broadcast.
func (r *Room) SetGameMode(id int64, modeID string, cooldownEnabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	if r.phase != PhaseReady {
		r.notify(p, "Game mode can only be changed during the READY phase")
		return
	}
	mode, ok := ModeByID(modeID)
	if !ok {
		r.notify(p, fmt.Sprintf("Unknown game mode %q", modeID))
		return
	}
	r.mode = mode
	r.cooldownEnabled = cooldownEnabled
	r.broadcast(protocol.Payload{
		Type:     protocol.PayloadGameMode,
		GameMode: mode.ID,
		Cooldown: cooldownEnabled,
	})
	r.log.Info().Str("mode", mode.ID).Bool("cooldown", cooldownEnabled).Msg("game mode changed")
}

// SetAway marks a participant away. Away players keep points and
// eliminated status but cannot act and are skipped everywhere.
func (r *Room) SetAway(id int64, away bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	if p.away == away {
		return
	}
	p.away = away
	r.broadcast(protocol.Payload{Type: protocol.PayloadAway, ClientID: id, Flag: away})
	if away {
		r.gameEvent(fmt.Sprintf("%s is away", p.DisplayName()))
	} else {
		r.gameEvent(fmt.Sprintf("%s is back", p.DisplayName()))
	}
}

// HandlePick stores a simultaneous-play choice. When every eligible player
// has picked, the round resolves without waiting out the round timer.
func (r *Room) HandlePick(id int64, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	if r.phase != PhaseInProgress {
		r.notify(p, "You can only make a pick during the IN_PROGRESS phase")
		return
	}
	if r.cfg.TurnBased {
		r.notify(p, "This room plays in turns, use the turn action")
		return
	}
	if !p.ready {
		r.notify(p, "You must be ready to make a pick")
		return
	}
	if p.spectator || p.eliminated || p.away {
		r.notify(p, "You cannot make a pick this round")
		return
	}
	if !r.mode.IsValidChoice(code) {
		r.notify(p, fmt.Sprintf("Invalid choice for %s", r.mode.ID))
		return
	}
	if r.cooldownEnabled && code != "" && code == p.prevChoice {
		r.notify(p, fmt.Sprintf("%s is on cooldown, pick something else", r.mode.Display(code)))
		return
	}
	p.choice = code
	r.gameEvent(fmt.Sprintf("%s has selected their choice", p.DisplayName()))
	if r.allEligiblePicked() {
		r.endRound()
	}
}

// HandleTurn processes a turn-based action by the current turn holder, at
// most once per round. The bonus point is a 1-in-4 roll by design.
func (r *Room) HandleTurn(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	if r.phase != PhaseInProgress {
		r.notify(p, "You can only take a turn during the IN_PROGRESS phase")
		return
	}
	if r.order.currentID() != id {
		r.notify(p, "It's not your turn")
		return
	}
	if !p.ready {
		r.notify(p, "You must be ready to take a turn")
		return
	}
	if p.spectator || p.eliminated || p.away {
		r.notify(p, "You cannot take a turn this round")
		return
	}
	if p.tookTurn {
		r.notify(p, "You have already taken your turn this round")
		return
	}
	if r.bonusRoll() {
		p.points++
		r.sendPoints(p)
		r.gameEvent(fmt.Sprintf("%s gained a point", p.DisplayName()))
	} else {
		r.gameEvent(fmt.Sprintf("%s didn't gain a point", p.DisplayName()))
	}
	p.tookTurn = true
	r.broadcast(protocol.Payload{Type: protocol.PayloadTurnStatus, ClientID: id, Flag: true})
	r.turnEnd()
}

// HandleMessage relays a chat line to the whole room.
func (r *Room) HandleMessage(id int64, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.clients[id]
	if !ok {
		return
	}
	r.broadcast(protocol.Payload{
		Type:     protocol.PayloadMessage,
		ClientID: id,
		Message:  fmt.Sprintf("%s: %s", p.DisplayName(), text),
	})
}

// --- lifecycle (all called with r.mu held) ---

func (r *Room) sessionStart() {
	r.log.Info().Msg("session start")
	r.gameStarted = true
	r.setPhase(PhaseInProgress)

	// anyone who never readied spectates this session
	for _, p := range r.clients {
		if p.ready {
			continue
		}
		p.spectator = true
		r.broadcast(protocol.Payload{
			Type:     protocol.PayloadSyncClient,
			ClientID: p.id,
			Name:     p.name,
			Flag:     true,
		})
		r.gameEvent(fmt.Sprintf("%s is now spectating", p.DisplayName()))
	}
	for _, p := range r.clients {
		p.points = 0
	}

	ids := make([]int64, 0, len(r.clients))
	for _, p := range r.clients {
		if p.ready && !p.spectator && !p.away {
			ids = append(ids, p.id)
		}
	}
	r.order = newTurnOrder(ids)
	r.round = 0
	r.resetEliminations()
	r.roundStart()
}

func (r *Room) roundStart() {
	r.resetRoundTimer()
	r.resetTurnStatus()
	r.round++
	r.gameEvent(fmt.Sprintf("Round %d has started", r.round))
	r.broadcast(protocol.Payload{Type: protocol.PayloadRoundStart, Round: r.round})
	if r.cfg.TurnBased {
		r.advanceTurn()
	} else {
		r.startRoundTimer()
	}
}

// advanceTurn hands the turn to the next player in order who can actually
// act, skipping eliminated, away and already-acted entries. When nobody is
// left to act the round ends.
func (r *Room) advanceTurn() {
	r.resetTurnTimer()
	for i := 0; i < r.order.len(); i++ {
		id, err := r.order.next()
		if err != nil {
			break
		}
		p := r.clients[id]
		if p == nil || !p.eligible() || p.tookTurn {
			continue
		}
		r.gameEvent(fmt.Sprintf("It's %s's turn", p.DisplayName()))
		r.startTurnTimer()
		return
	}
	r.endRound()
}

func (r *Room) turnEnd() {
	r.resetTurnTimer()
	last, err := r.order.isLast()
	if err != nil {
		r.log.Warn().Err(err).Msg("turn ended without a current holder")
		r.endRound()
		return
	}
	if last {
		r.endRound()
	} else {
		r.advanceTurn()
	}
}

func (r *Room) endRound() {
	r.resetRoundTimer()
	r.resetTurnTimer()
	// turn-based rounds score through turn actions; picks and the
	// pairwise resolution only exist in simultaneous play
	if !r.cfg.TurnBased {
		r.eliminateNonPickers()
		r.resolveRound()
		r.archiveChoices()
	}
	if r.shouldEndSession() {
		r.sessionEnd()
	} else {
		r.roundStart()
	}
}

// resolveRound compares every unordered pair of eligible players with the
// active beats relation, awards a point to everyone at the maximum tally
// and eliminates everyone at zero.
func (r *Room) resolveRound() {
	active := r.eligiblePlayers()
	if len(active) < 2 {
		r.gameEvent("Not enough active players to complete the round")
		return
	}
	sort.Slice(active, func(i, j int) bool { return active[i].id < active[j].id })

	tally := make(map[int64]int, len(active))
	for _, p := range active {
		tally[p.id] = 0
	}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			var msg string
			switch r.mode.Compare(a.choice, b.choice) {
			case 1:
				tally[a.id]++
				msg = fmt.Sprintf("%s (%s) vs %s (%s) - %s wins!",
					a.DisplayName(), r.mode.Display(a.choice),
					b.DisplayName(), r.mode.Display(b.choice), a.DisplayName())
			case -1:
				tally[b.id]++
				msg = fmt.Sprintf("%s (%s) vs %s (%s) - %s wins!",
					a.DisplayName(), r.mode.Display(a.choice),
					b.DisplayName(), r.mode.Display(b.choice), b.DisplayName())
			default:
				msg = fmt.Sprintf("%s (%s) vs %s (%s) - Tie!",
					a.DisplayName(), r.mode.Display(a.choice),
					b.DisplayName(), r.mode.Display(b.choice))
			}
			r.broadcast(protocol.Payload{Type: protocol.PayloadBattleResult, Message: msg})
		}
	}

	maxWins := 0
	for _, w := range tally {
		if w > maxWins {
			maxWins = w
		}
	}
	if maxWins > 0 {
		for _, p := range active {
			if tally[p.id] != maxWins {
				continue
			}
			p.points++
			r.sendPoints(p)
			r.gameEvent(fmt.Sprintf("%s wins the round and gets 1 point! (Total: %d)",
				p.DisplayName(), p.points))
		}
	}
	for _, p := range active {
		if tally[p.id] == 0 {
			r.eliminate(p, "has been eliminated!")
		}
	}
}

func (r *Room) sessionEnd() {
	r.log.Info().Msg("session end")
	r.resetRoundTimer()
	r.resetTurnTimer()

	// survivors outrank the eliminated regardless of points; only when
	// everyone was eliminated does the whole field contend
	contenders := make([]*Player, 0, len(r.clients))
	for _, p := range r.clients {
		if !p.spectator && !p.away && !p.eliminated {
			contenders = append(contenders, p)
		}
	}
	if len(contenders) == 0 {
		for _, p := range r.clients {
			if !p.spectator && !p.away {
				contenders = append(contenders, p)
			}
		}
	}
	topPoints := -1
	for _, p := range contenders {
		if p.points > topPoints {
			topPoints = p.points
		}
	}
	var winners []string
	for _, p := range contenders {
		if p.points == topPoints {
			winners = append(winners, p.DisplayName())
		}
	}
	sort.Strings(winners)

	var msg string
	switch {
	case len(winners) == 0:
		msg = "Game Over: No winners"
	case len(winners) == 1:
		msg = fmt.Sprintf("Game Over: %s wins with %d point(s)!", winners[0], topPoints)
	default:
		msg = fmt.Sprintf("Game Over: Tie between %s with %d point(s)!",
			joinNames(winners), topPoints)
	}
	r.gameEvent(msg)

	r.broadcast(protocol.Payload{
		Type:       protocol.PayloadGameOver,
		Message:    msg,
		Winners:    winners,
		Scoreboard: r.scoreboard(),
	})

	r.resetEliminations()
	for _, p := range r.clients {
		p.resetSession()
	}
	r.broadcast(protocol.Payload{Type: protocol.PayloadResetReady})
	r.broadcast(protocol.Payload{Type: protocol.PayloadResetTurn})
	r.order.clear()
	r.round = 0
	r.gameStarted = false
	r.setPhase(PhaseReady)
}

// scoreboard lists all non-spectators ordered by points descending, name
// ascending on ties.
func (r *Room) scoreboard() []protocol.ScoreEntry {
	entries := make([]protocol.ScoreEntry, 0, len(r.clients))
	for _, p := range r.clients {
		if p.spectator {
			continue
		}
		entries = append(entries, protocol.ScoreEntry{
			ClientID:   p.id,
			Name:       p.DisplayName(),
			Points:     p.points,
			Eliminated: p.eliminated,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// --- timers (all called with r.mu held) ---

func (r *Room) startRoundTimer() {
	r.timerGen++
	gen := r.timerGen
	r.roundTimer = newCountdown(r.cfg.RoundSeconds,
		func(remaining int) { r.sendCurrentTime(gen, protocol.TimerRound, remaining) },
		func() { r.onTimerExpire(gen, protocol.TimerRound) },
	)
}

func (r *Room) startTurnTimer() {
	r.timerGen++
	gen := r.timerGen
	r.turnTimer = newCountdown(r.cfg.TurnSeconds,
		func(remaining int) { r.sendCurrentTime(gen, protocol.TimerTurn, remaining) },
		func() { r.onTimerExpire(gen, protocol.TimerTurn) },
	)
}

func (r *Room) resetRoundTimer() {
	if r.roundTimer == nil {
		return
	}
	r.roundTimer.Cancel()
	r.roundTimer = nil
	r.timerGen++
	r.broadcast(protocol.Payload{Type: protocol.PayloadCurrentTime, TimerType: protocol.TimerRound, Time: -1})
}

func (r *Room) resetTurnTimer() {
	if r.turnTimer == nil {
		return
	}
	r.turnTimer.Cancel()
	r.turnTimer = nil
	r.timerGen++
	r.broadcast(protocol.Payload{Type: protocol.PayloadCurrentTime, TimerType: protocol.TimerTurn, Time: -1})
}

// onTimerExpire runs on the timer goroutine. The generation check discards
// expiries from timers that were already cancelled and replaced.
func (r *Room) onTimerExpire(gen uint64, tt protocol.TimerType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.timerGen {
		r.log.Debug().Str("timer", string(tt)).Msg("stale timer expiry discarded")
		return
	}
	switch tt {
	case protocol.TimerRound:
		r.roundTimer = nil
		r.endRound()
	case protocol.TimerTurn:
		r.turnTimer = nil
		r.turnEnd()
	}
}

// sendCurrentTime runs on the timer goroutine. A tick that was already
// waiting on the lock when its timer got cancelled carries a stale
// generation and is dropped, so nothing overwrites the -1 reset.
func (r *Room) sendCurrentTime(gen uint64, tt protocol.TimerType, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.timerGen {
		return
	}
	r.broadcast(protocol.Payload{Type: protocol.PayloadCurrentTime, TimerType: tt, Time: remaining})
}

// --- helpers (all called with r.mu held) ---

func (r *Room) setPhase(phase Phase) {
	r.phase = phase
	r.broadcast(protocol.Payload{Type: protocol.PayloadPhase, Phase: string(phase)})
}

func (r *Room) eligiblePlayers() []*Player {
	out := make([]*Player, 0, len(r.clients))
	for _, p := range r.clients {
		if p.eligible() {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) allEligiblePicked() bool {
	for _, p := range r.clients {
		if p.eligible() && p.choice == "" {
			return false
		}
	}
	return true
}

func (r *Room) eliminateNonPickers() {
	for _, p := range r.clients {
		if p.eligible() && p.choice == "" {
			r.eliminate(p, "was eliminated for not making a choice")
		}
	}
}

func (r *Room) eliminate(p *Player, reason string) {
	p.eliminated = true
	r.broadcast(protocol.Payload{Type: protocol.PayloadElimination, ClientID: p.id, Flag: true})
	r.gameEvent(fmt.Sprintf("💀 %s %s", p.DisplayName(), reason))
}

func (r *Room) resetEliminations() {
	for _, p := range r.clients {
		if !p.eliminated {
			continue
		}
		p.eliminated = false
		r.broadcast(protocol.Payload{Type: protocol.PayloadElimination, ClientID: p.id, Flag: false})
	}
}

func (r *Room) shouldEndSession() bool {
	return len(r.eligiblePlayers()) <= 1
}

func (r *Room) archiveChoices() {
	for _, p := range r.clients {
		if p.choice != "" {
			p.prevChoice = p.choice
		}
		p.choice = ""
	}
}

func (r *Room) resetTurnStatus() {
	for _, p := range r.clients {
		p.tookTurn = false
	}
	r.broadcast(protocol.Payload{Type: protocol.PayloadResetTurn})
}

func (r *Room) sendPoints(p *Player) {
	r.broadcast(protocol.Payload{Type: protocol.PayloadPoints, ClientID: p.id, Points: p.points})
}

// gameEvent sends a room-originated message to every member.
func (r *Room) gameEvent(msg string) {
	r.broadcast(protocol.Payload{
		Type:     protocol.PayloadMessage,
		ClientID: protocol.DefaultClientID,
		Message:  fmt.Sprintf("Room[%s]: %s", r.name, msg),
	})
}

// notify reports a rejected action to the offending connection only.
func (r *Room) notify(p *Player, msg string) {
	if !p.send(protocol.Payload{
		Type:     protocol.PayloadMessage,
		ClientID: protocol.DefaultClientID,
		Message:  msg,
	}) {
		r.evict(p.id)
	}
}

// broadcast sends to every member; members whose connection fails are
// evicted without aborting the rest of the broadcast.
func (r *Room) broadcast(pl protocol.Payload) {
	var failed []int64
	for id, p := range r.clients {
		if !p.send(pl) {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.evict(id)
	}
}

// evict drops an unreachable member. The read loop of the closed
// connection triggers the full disconnect path afterwards; RemoveClient is
// idempotent so the second pass is harmless.
func (r *Room) evict(id int64) {
	p, ok := r.clients[id]
	if !ok {
		return
	}
	r.log.Warn().Int64("client", id).Msg("removing unreachable client")
	delete(r.clients, id)
	r.order.remove(id)
	p.conn.Close()
	r.broadcast(protocol.Payload{
		Type:     protocol.PayloadRoomLeave,
		ClientID: id,
		Name:     p.name,
		Message:  r.name,
	})
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
