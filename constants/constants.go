package constants

// Header values used when a tune leaves the field out.
const (
	DefaultTempo        = 100
	DefaultLengthNum    = 1
	DefaultLengthDen    = 8
	DefaultMeterNum     = 4
	DefaultMeterDen     = 4
	DefaultComposer     = "Unknown"
	ImplicitVoiceName   = "default"
	DefaultTicksPerUnit = 16
)

const DefaultVelocity uint8 = 100

// MiddleC is the MIDI key of an uppercase C with no octave marks
const MiddleC = 60

const AbcExtension = ".abc"
const MidiExtension = ".mid"
