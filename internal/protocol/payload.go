// Package protocol defines the wire envelope exchanged between the server
// and its clients. Every message is one Payload, tagged by Type; the
// remaining fields are populated per kind. The transport layer owns the
// JSON framing, the game core only builds and consumes Payload values.
package protocol

// DefaultClientID marks a server-originated payload (no sending client).
const DefaultClientID int64 = -1

type PayloadType string

// Client -> server kinds.
const (
	PayloadConnect    PayloadType = "connect"
	PayloadDisconnect PayloadType = "disconnect"
	PayloadRoomCreate PayloadType = "room_create"
	PayloadRoomJoin   PayloadType = "room_join"
	PayloadRoomLeave  PayloadType = "room_leave"
	PayloadRoomList   PayloadType = "room_list"
	PayloadMessage    PayloadType = "message"
	PayloadReady      PayloadType = "ready"
	PayloadTurnAction PayloadType = "turn_action"
	PayloadPlayerPick PayloadType = "player_pick"
	PayloadGameMode   PayloadType = "game_mode"
	PayloadAway       PayloadType = "away"
)

// Server -> client kinds. PayloadMessage, PayloadRoomList, PayloadReady,
// PayloadGameMode and PayloadAway are reused in both directions.
const (
	PayloadClientID     PayloadType = "client_id"
	PayloadSyncClient   PayloadType = "sync_client"
	PayloadPhase        PayloadType = "phase"
	PayloadSyncReady    PayloadType = "sync_ready"
	PayloadResetReady   PayloadType = "reset_ready"
	PayloadTurnStatus   PayloadType = "turn_status"
	PayloadSyncTurn     PayloadType = "sync_turn"
	PayloadResetTurn    PayloadType = "reset_turn"
	PayloadPoints       PayloadType = "points"
	PayloadElimination  PayloadType = "elimination"
	PayloadCurrentTime  PayloadType = "current_time"
	PayloadRoundStart   PayloadType = "round_start"
	PayloadBattleResult PayloadType = "battle_result"
	PayloadGameOver     PayloadType = "game_over"
)

// TimerType distinguishes the countdown a current_time payload refers to.
type TimerType string

const (
	TimerRound TimerType = "round"
	TimerTurn  TimerType = "turn"
)

// ScoreEntry is one row of the final scoreboard in a game_over payload.
type ScoreEntry struct {
	ClientID   int64  `json:"clientId"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	Eliminated bool   `json:"eliminated"`
}

// Payload is the discriminated union carried on the wire. A reset timer is
// signalled with Time == -1 so clients can hide the countdown.
type Payload struct {
	Type       PayloadType  `json:"type"`
	ClientID   int64        `json:"clientId,omitempty"`
	Name       string       `json:"name,omitempty"`
	Message    string       `json:"message,omitempty"`
	Flag       bool         `json:"flag,omitempty"`
	Phase      string       `json:"phase,omitempty"`
	GameMode   string       `json:"gameMode,omitempty"`
	Cooldown   bool         `json:"cooldown,omitempty"`
	Choice     string       `json:"choice,omitempty"`
	TimerType  TimerType    `json:"timerType,omitempty"`
	Time       int          `json:"time,omitempty"`
	Points     int          `json:"points,omitempty"`
	Round      int          `json:"round,omitempty"`
	Rooms      []string     `json:"rooms,omitempty"`
	Winners    []string     `json:"winners,omitempty"`
	Scoreboard []ScoreEntry `json:"scoreboard,omitempty"`
}
