// Package domain contains entities without logic, just meta-data and the wire vocabulary.
package domain

import "errors"

const (
	MaxUsernameLen = 36
	MaxRoomIDLen   = 64
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrRoomTooLong     = errors.New("room id too long")
	ErrRoomEmpty       = errors.New("room id empty")
)

type ConnID string

// Client is one entry of a membership snapshot.
type Client struct {
	ConnID   ConnID `json:"connId"`
	Username string `json:"username"`
}

func ParseUsername(name string) (string, error) {
	if len(name) == 0 {
		return "", ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	return name, nil
}
