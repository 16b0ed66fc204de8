/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Fri Mar 16 13:56:39 2018 mstenber
 * Last modified: Fri Apr  6 09:52:20 2018 mstenber
 * Edit time:     4 min
 *
 */

package util

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/fingon/go-bptree/mlog"
)

// NewRand returns a deterministic generator for seed.
func NewRand(seed int64) *rand.Rand {
	mlog.Printf2("util/random", "NewRand %v", seed)
	return rand.New(rand.NewSource(seed))
}

// GetSeededRng returns a generator seeded from the SEED environment
// variable, or from the clock if it is not set. The seed is always
// logged so that a failing randomized test can be reproduced.
func GetSeededRng() *rand.Rand {
	seed := os.Getenv("SEED")
	seedvalue := time.Now().UnixNano()
	if seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			log.Panic(err)
		}
		seedvalue = v
	}
	log.Printf("Seed: %v (use SEED= to fix)", seedvalue)
	return NewRand(seedvalue)
}
