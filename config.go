package dla

const (
	DefaultParticleSpacing    = 1.0
	DefaultAttractionDistance = 3.0
	DefaultMinMoveDistance    = 1.0
	DefaultStubbornness       = 0
	DefaultStickiness         = 1.0
)

// Config holds the tunable parameters of the walk and joining protocol.
//
// None of the fields are validated. Out of range values give degenerate but
// well defined growth:
//   - Stickiness < 0 rejects every contact, so growth never terminates.
//   - Stickiness == 0 joins only when the sampler draws exactly 0.
//   - Stickiness >= 1 accepts the first contact that satisfies Stubbornness.
//   - A negative Stubbornness behaves like 0.
//   - AttractionDistance <= 0 means no walker is ever captured.
//   - MinMoveDistance <= 0 lets the walk stall inside the capture shell.
//
// Keeping parameters sane is the caller's responsibility.
type Config struct {
	// ParticleSpacing is the distance between a joining particle and its parent.
	ParticleSpacing float64 `json:"particle_spacing" yaml:"particle_spacing"`

	// AttractionDistance is the capture radius around every anchored point.
	AttractionDistance float64 `json:"attraction_distance" yaml:"attraction_distance"`

	// MinMoveDistance is the smallest step a walker takes.
	MinMoveDistance float64 `json:"min_move_distance" yaml:"min_move_distance"`

	// Stubbornness is the number of contacts a point must have accumulated
	// before it accepts a join.
	Stubbornness int `json:"stubbornness" yaml:"stubbornness"`

	// Stickiness is the probability that a contact results in a join once
	// Stubbornness is satisfied.
	Stickiness float64 `json:"stickiness" yaml:"stickiness"`
}

// DefaultConfig returns spacing=1, attraction=3, min_move=1, stubbornness=0
// and stickiness=1.
func DefaultConfig() Config {
	return Config{
		ParticleSpacing:    DefaultParticleSpacing,
		AttractionDistance: DefaultAttractionDistance,
		MinMoveDistance:    DefaultMinMoveDistance,
		Stubbornness:       DefaultStubbornness,
		Stickiness:         DefaultStickiness,
	}
}
