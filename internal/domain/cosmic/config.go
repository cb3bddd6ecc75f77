package cosmic

// ImpactPolicy maps event kinds to the impact class shown to users. The
// defaults are a presentation heuristic, not astrological doctrine, so the
// whole table is replaceable through configuration.
type ImpactPolicy struct {
	Ingress           Impact
	StationRetrograde Impact
	StationDirect     Impact
	FullMoon          Impact
	NewMoon           Impact
}

// DefaultImpactPolicy returns the stock classification table.
func DefaultImpactPolicy() ImpactPolicy {
	return ImpactPolicy{
		Ingress:           ImpactPositive,
		StationRetrograde: ImpactChallenging,
		StationDirect:     ImpactPositive,
		FullMoon:          ImpactSignificant,
		NewMoon:           ImpactSignificant,
	}
}

// Config wires runtime policy into the engine.
type Config struct {
	Policy ImpactPolicy
}
