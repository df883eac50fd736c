package utils

import (
	"errors"

	"Petly/config"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidHash = errors.New("invalid hash")

// Hasher turns numeric ids into short opaque tokens (review links, referral codes).
type Hasher struct {
	h *hashids.HashID
}

func NewHasher(salt string, minLength int) (*Hasher, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Hasher{h: h}, nil
}

func ProvideHasher(cfg *config.Config) *Hasher {
	h, err := NewHasher(cfg.App.HashSalt, 12)
	if err != nil {
		panic(err)
	}
	return h
}

func (x *Hasher) Encode(ids ...uint64) string {
	nums := make([]int64, len(ids))
	for i, id := range ids {
		nums[i] = int64(id)
	}
	e, _ := x.h.EncodeInt64(nums)
	return e
}

// DecodeOne returns the single id a token was built from.
func (x *Hasher) DecodeOne(token string) (uint64, error) {
	nums, err := x.h.DecodeInt64WithError(token)
	if err != nil {
		return 0, ErrInvalidHash
	}
	if len(nums) != 1 || nums[0] <= 0 {
		return 0, ErrInvalidHash
	}
	return uint64(nums[0]), nil
}
