package config

import (
	"time"

	"git.lost.host/meutraa/bmsplay/internal/game"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	MinSpeed = 1.00
	MaxSpeed = 5.00

	// LifetimeBeats is how many beats of chart are visible above the
	// hit bar; a note scrolls the full field height in this many beats.
	LifetimeBeats = 5.0
)

var (
	File        = kingpin.Arg("chart", "BMS chart file").Required().ExistingFile()
	Speed       = kingpin.Flag("speed", "Scroll speed, 1.00 - 5.00").Default("1.0").Short('s').Float64()
	Binds       = kingpin.Flag("keys", "Lane keybindings").Default("azsxdcfv").Short('k').String()
	AutoPlay    = kingpin.Flag("autoplay", "Judge every note automatically").Short('a').Bool()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("1ms").Short('p').Duration()
	InputPeriod = kingpin.Flag("input-period", "Input poll period").Default("16ms").Duration()
	Database    = kingpin.Flag("database", "Score history database").Default("./scores.db").String()

	Judgements = []game.Judgement{
		{Window: 25 * time.Millisecond, Name: "\033[1;36mCool\033[0m"},
		{Window: 50 * time.Millisecond, Name: "\033[1;33mGreat\033[0m"},
		{Window: 100 * time.Millisecond, Name: "\033[1;32mGood\033[0m"},
		{Window: -1, Name: "\033[1;31mMiss\033[0m"},
	}
)

func Init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
	*Speed = ClampSpeed(*Speed)
}

// ClampSpeed bounds a requested scroll speed instead of rejecting it.
func ClampSpeed(speed float64) float64 {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}
