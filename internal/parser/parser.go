package parser

import (
	"git.lost.host/meutraa/bmsplay/internal/audio"
	"git.lost.host/meutraa/bmsplay/internal/game"
)

type Parser interface {
	Parse(file string) (*game.Chart, error)
}

// Loader binds chart WAV slots to decoded samples.
type Loader interface {
	Load(file string) (*audio.Sample, error)
}
