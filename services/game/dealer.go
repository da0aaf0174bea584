package game

import (
	"math/rand"

	game_constants "github.com/aftershock-ministries/judas-backend/constants/game"
	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
)

// NormalizeRoleCounts clamps the host-configured role counts against the
// roster size (host excluded). Judas lands in
// [min(3, max(1, n/6)), min(3, n/3)], angel in [min(2, n/8), min(2, n/4)],
// and at least one plain disciple always remains: if judas+angel would
// exceed n-1, angel is reduced first.
func NormalizeRoleCounts(total int, requested redis_models.RoleCounts) redis_models.RoleCounts {
	if total < 1 {
		return redis_models.RoleCounts{}
	}

	judasLo := min(game_constants.MaxJudasCount, max(1, total/game_constants.JudasMinDivisor))
	judasHi := min(game_constants.MaxJudasCount, total/game_constants.JudasMaxDivisor)
	if judasHi < judasLo {
		judasLo = judasHi
	}
	judas := clamp(requested.Judas, judasLo, judasHi)

	angelLo := min(game_constants.MaxAngelCount, total/game_constants.AngelMinDivisor)
	angelHi := min(game_constants.MaxAngelCount, total/game_constants.AngelMaxDivisor)
	if angelHi < angelLo {
		angelLo = angelHi
	}
	angel := clamp(requested.Angel, angelLo, angelHi)

	if judas+angel > total-1 {
		angel = max(0, total-1-judas)
	}
	if judas+angel > total-1 {
		judas = max(0, total-1)
	}

	return redis_models.RoleCounts{Judas: judas, Angel: angel}
}

// DealRoles shuffles the roster (Fisher–Yates via rand.Shuffle) and assigns
// the first counts.Judas players judas, the next counts.Angel angel, and
// everyone else disciple. A full re-deal: prior roles are irrelevant.
func DealRoles(playerIDs []string, counts redis_models.RoleCounts) map[string]string {
	shuffled := make([]string, len(playerIDs))
	copy(shuffled, playerIDs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assignment := make(map[string]string, len(shuffled))
	for i, id := range shuffled {
		switch {
		case i < counts.Judas:
			assignment[id] = game_constants.RoleJudas
		case i < counts.Judas+counts.Angel:
			assignment[id] = game_constants.RoleAngel
		default:
			assignment[id] = game_constants.RoleDisciple
		}
	}
	return assignment
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
