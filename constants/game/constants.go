package game_constants

// Player roles
const (
	RoleJudas    = "judas"
	RoleAngel    = "angel"
	RoleDisciple = "disciple"
)

// Role count bounds. The dealer clamps the host-configured counts against
// the roster size using these (see services/game/dealer.go).
const (
	MaxJudasCount = 3
	MaxAngelCount = 2

	// Divisors applied to the roster size to derive the per-role bounds
	JudasMinDivisor = 6
	JudasMaxDivisor = 3
	AngelMinDivisor = 8
	AngelMaxDivisor = 4
)

// Recommended minimum roster size. Not enforced by the dealer, the game
// just degrades with fewer players (zero judas is possible).
const RecommendedMinPlayers = 5

// Discussion window, in seconds. Advisory only: the countdown never
// transitions the phase by itself, the host opens voting manually.
const DayDiscussSeconds = 120

const MaxFirstNameLength = 24
