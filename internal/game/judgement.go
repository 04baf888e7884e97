package game

import "time"

type Judgement struct {
	Window time.Duration // half-width of the timing window, <0 for miss
	Name   string
}
