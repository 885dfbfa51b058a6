package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("invalid parameters")
	ErrStoryNotFound        = errors.New("story not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrGenreNotFound        = errors.New("genre not found")
	ErrCharacterNotFound    = errors.New("character not found")
	ErrTitleRequired        = errors.New("story title is required")
	ErrTitleDuplicate       = errors.New("you already have a story with this title")
	ErrWatchTimeInvalid     = errors.New("watch time must be positive")
	ErrStoryNumberExhausted = errors.New("failed to allocate story number")
	ErrFileNotSupported     = errors.New("unsupported file type")
	UnauthorizedError       = errors.New("not allowed to modify this resource")
	UnExpectedError         = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrStoryNotFound:        NotFound,
	ErrCommentNotFound:      NotFound,
	ErrGenreNotFound:        NotFound,
	ErrCharacterNotFound:    NotFound,
	ErrTitleRequired:        BadRequest,
	ErrTitleDuplicate:       BadRequest,
	ErrWatchTimeInvalid:     BadRequest,
	ErrStoryNumberExhausted: InternalServerError,
	ErrFileNotSupported:     BadRequest,
	UnauthorizedError:       Forbidden,
	UnExpectedError:         InternalServerError,
}
