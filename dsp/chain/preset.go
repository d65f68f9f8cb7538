package chain

// RecordingPreset returns the stage list used by the live-recording path:
// rumble removal first, then gating, de-essing, and compression last so
// the gate and de-esser see the signal before its dynamics are evened out.
func RecordingPreset() []Config {
	return []Config{
		HighPass(80),
		Gate(-40, 5, 100),
		DeEss(-20, 4, 6000, 4000),
		Comp(-20, 4, 10, 100, 0),
	}
}
