package tips

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Second

// Service mantiene la dica actual durante ttl; vencido el plazo elige otra.
// El reloj y la fuente aleatoria se inyectan (tests).
type Service struct {
	mu   sync.Mutex
	tips []string
	ttl  time.Duration

	now  func() time.Time
	pick func(n int) int

	current string
	expires time.Time
}

func NewService(tips []string, ttl time.Duration) *Service {
	if len(tips) == 0 {
		tips = DefaultTips
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		tips: append([]string(nil), tips...),
		ttl:  ttl,
		now:  time.Now,
		pick: rand.IntN,
	}
}

// Current devuelve la dica vigente. Nunca devuelve un string vacío.
func (s *Service) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.current != "" && now.Before(s.expires) {
		return s.current
	}

	tip := strings.TrimSpace(s.tips[s.pick(len(s.tips))])
	if tip == "" {
		tip = fallbackTips[s.pick(len(fallbackTips))]
	}

	s.current = tip
	s.expires = now.Add(s.ttl)
	return tip
}
