package mines

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidParams = errors.New("invalid board params")

type Params struct {
	Height  int `json:"height" schema:"height,required"`
	Width   int `json:"width" schema:"width,required"`
	Hazards int `json:"hazards" schema:"hazards,required"`
}

func (p Params) Unpack() (h int, w int, n int) {
	return p.Height, p.Width, p.Hazards
}

// String returns the compact "height:width:hazards" form accepted by
// [ParseParams].
func (p Params) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Height, p.Width, p.Hazards)
}

func ParseParams(seed string) (*Params, error) {
	p := &Params{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Height, &p.Width, &p.Hazards)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`%w: cannot parse "%s" (n = %d, err = %v)`,
			ErrInvalidParams, seed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Params) Validate() error {
	switch {
	case p.Height <= 0 || p.Width <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d",
			ErrInvalidParams, p.Height, p.Width)
	case p.Hazards < 0:
		return fmt.Errorf("%w: negative hazard count %d",
			ErrInvalidParams, p.Hazards)
	case p.Hazards >= p.Height*p.Width:
		return fmt.Errorf("%w: %d hazards leave no safe cell on %dx%d",
			ErrInvalidParams, p.Hazards, p.Height, p.Width)
	}
	return nil
}
