package game

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrDuplicateRoom    = errors.New("room already exists")
	ErrNotInRoom        = errors.New("client is not in a room")
	ErrNoCurrentPlayer  = errors.New("no current turn holder")
	ErrPlayerNotInOrder = errors.New("player not present in turn order")
	ErrConnClosed       = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("connection send buffer full")
)
