package service

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// randomSource draws integers in [0, n).
type randomSource interface {
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

const (
	matriculeMin      = 1000
	matriculeMax      = 9999
	maxUniqueAttempts = 20
)

// generateMatricule draws 4-digit matricules until taken reports one as free.
func generateMatricule(ctx context.Context, rnd randomSource, taken func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
		candidate := strconv.Itoa(matriculeMin + rnd.Intn(matriculeMax-matriculeMin+1))
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errUniqueExhausted
}
