package utils

import (
	"math/rand"
	"sync"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out silly names that were not handed out
// or reserved before
type RandomNameGenerator map[string]struct{}

// randomdata source is package global and shared by all generators,
// it is seeded only once
var seedOnce sync.Once

func (rng *RandomNameGenerator) init() {
	seedOnce.Do(func() {
		randomdata.CustomRand(rand.New(rand.NewSource(0)))
	})
	if *rng == nil {
		*rng = make(map[string]struct{})
	}
}

// Reserve marks name as used, so it will never be generated
func (rng *RandomNameGenerator) Reserve(name string) {
	rng.init()
	(*rng)[name] = struct{}{}
}

func (rng *RandomNameGenerator) RandomName() string {
	rng.init()
	for {
		name := randomdata.SillyName()
		// avoid duplicate names
		if _, exists := (*rng)[name]; !exists {
			(*rng)[name] = struct{}{}
			return name
		}
	}
}
