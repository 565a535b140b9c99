package solvers

// Preset names the eleven canned algorithm shortcuts that populate a
// driver's slot table with a specific strategy ordering,
// grounded on the reference's nonogram_setalgo enum (nonogram_AFAST,
// nonogram_AHYBRID, ...). "Odd-ones" in the reference is Olsak's
// algorithm restricted to single-cell guesses; this port treats it as an
// alias for Olsak rather than a distinct strategy, since both guess a
// single contrary cell value and retest via push.
type Preset string

const (
	PresetFast                Preset = "fast"
	PresetComplete            Preset = "complete"
	PresetHybrid              Preset = "hybrid"
	PresetNull                Preset = "null"
	PresetOlsak               Preset = "olsak"
	PresetFastOlsak           Preset = "fastolsak"
	PresetFastOlsakComplete   Preset = "fastolsakcomplete"
	PresetFastOddOnes         Preset = "fastoddones"
	PresetFastOddOnesComplete Preset = "fastoddonescomplete"
	PresetFcomp               Preset = "fcomp"
	PresetFfcomp              Preset = "ffcomp"
)

// Slots returns the strategies a preset installs, ordered from the
// first one the driver should try on a line to the last it escalates to
// once earlier slots stop yielding new information (the driver's
// line-scheduling tick loop calls these in order until one reports
// Fits==0 or the line is fully determined).
func Slots(p Preset) []Strategy {
	switch p {
	case PresetFast:
		return []Strategy{Fast{}}
	case PresetComplete:
		return []Strategy{Complete{}}
	case PresetHybrid:
		// Fast first; escalate to the exhaustive search only once fast's
		// cheap intersection stops making progress.
		return []Strategy{Fast{}, Complete{}}
	case PresetNull:
		return []Strategy{Null{}}
	case PresetOlsak:
		return []Strategy{Olsak{}}
	case PresetFastOlsak:
		return []Strategy{Fast{}, Olsak{}}
	case PresetFastOlsakComplete:
		return []Strategy{Fast{}, Olsak{}, Complete{}}
	case PresetFastOddOnes:
		return []Strategy{Fast{}, Olsak{}}
	case PresetFastOddOnesComplete:
		return []Strategy{Fast{}, Olsak{}, Complete{}}
	case PresetFcomp:
		return []Strategy{Fcomp{}}
	case PresetFfcomp:
		return []Strategy{Fast{}, Fcomp{}}
	default:
		return nil
	}
}
