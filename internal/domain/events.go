package domain

import "time"

// EventKind identifies what happened during a game.
type EventKind string

const (
	EventFileLoaded        EventKind = "FILE_LOADED"
	EventGameStarted       EventKind = "GAME_STARTED"
	EventPlayerCountChosen EventKind = "SELECT_PLAYER_COUNT"
	EventPlayerJoined      EventKind = "PLAYER_JOINED"
	EventCategorySelected  EventKind = "SELECT_CATEGORY"
	EventQuestionSelected  EventKind = "SELECT_QUESTION"
	EventQuestionAnswered  EventKind = "QUESTION_ANSWERED"
	EventGameFinished      EventKind = "GAME_FINISHED"
	EventReportGenerated   EventKind = "REPORT_GENERATED"
)

// Event is an immutable record published to observers. Payload holds one of the
// *Payload types below, by value.
type Event struct {
	Seq     int       `json:"seq"`
	GameID  string    `json:"gameId"`
	Kind    EventKind `json:"kind"`
	Time    time.Time `json:"time"`
	Payload any       `json:"payload"`
}

type FileLoadedPayload struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type GameStartedPayload struct {
	Players []Player `json:"players"`
}

type PlayerCountPayload struct {
	Count int `json:"count"`
}

type PlayerJoinedPayload struct {
	Player Player `json:"player"`
}

type CategorySelectedPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Category   string `json:"category"`
}

type QuestionSelectedPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Category   string `json:"category"`
	Value      int    `json:"value"`
}

// QuestionAnsweredPayload carries the player's score after the delta was applied.
type QuestionAnsweredPayload struct {
	Player   Player   `json:"player"`
	Question Question `json:"question"`
	Correct  bool     `json:"correct"`
	Answer   string   `json:"answer"`
	Delta    int      `json:"delta"`
	Score    int      `json:"score"`
}

type GameFinishedPayload struct {
	Standings []Standing `json:"standings"`
}

type ReportGeneratedPayload struct {
	Path string `json:"path"`
}

// Clone returns a copy of the event whose payload shares no slices with e.
func (e Event) Clone() Event {
	e.Payload = clonePayload(e.Payload)
	return e
}

func clonePayload(payload any) any {
	switch p := payload.(type) {
	case GameStartedPayload:
		p.Players = append([]Player(nil), p.Players...)
		return p
	case QuestionAnsweredPayload:
		p.Question = p.Question.Clone()
		return p
	case GameFinishedPayload:
		p.Standings = append([]Standing(nil), p.Standings...)
		return p
	default:
		return payload
	}
}
