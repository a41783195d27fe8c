package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

type Strategy interface {
	IssueToken(p model.Principal) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
