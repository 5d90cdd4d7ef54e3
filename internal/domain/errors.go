package domain

import "errors"

var (
	// ErrNoQuestions is returned when a question source yields nothing usable.
	ErrNoQuestions = errors.New("no questions loaded")
	// ErrInputClosed indicates the interactive channel has no more input.
	ErrInputClosed = errors.New("input closed")
	// ErrIllegalTransition is returned when a phase change would move backwards or stay put.
	ErrIllegalTransition = errors.New("illegal phase transition")
	// ErrUnsupportedSource indicates a question identifier no loader understands.
	ErrUnsupportedSource = errors.New("unsupported question source")
	// ErrQuestionSetNotFound indicates a named question set does not exist.
	ErrQuestionSetNotFound = errors.New("question set not found")
	// ErrReportFormat indicates an unknown report format was requested.
	ErrReportFormat = errors.New("unknown report format")
)
