package as5600

// PowerMode selects the sampling/power tradeoff. Lower power modes
// increase the sampling interval to reduce current draw.
type PowerMode uint8

const (
	PowerNominal PowerMode = 0b00 // continuous sampling, ~6.5mA
	PowerLPM1    PowerMode = 0b01 // 1ms sampling
	PowerLPM2    PowerMode = 0b10 // 10ms sampling
	PowerLPM3    PowerMode = 0b11 // 100ms sampling
)

func (p PowerMode) String() string {
	switch p {
	case PowerLPM1:
		return "LPM1"
	case PowerLPM2:
		return "LPM2"
	case PowerLPM3:
		return "LPM3"
	default:
		return "Nominal"
	}
}

// Hysteresis is the number of LSBs the position must change before the
// output updates, suppressing noise around a stable position.
type Hysteresis uint8

const (
	HysteresisOff  Hysteresis = 0b00
	Hysteresis1LSB Hysteresis = 0b01
	Hysteresis2LSB Hysteresis = 0b10
	Hysteresis3LSB Hysteresis = 0b11
)

func (h Hysteresis) String() string {
	switch h {
	case Hysteresis1LSB:
		return "1 LSB"
	case Hysteresis2LSB:
		return "2 LSB"
	case Hysteresis3LSB:
		return "3 LSB"
	default:
		return "Off"
	}
}

// OutputStage configures the OUT pin. Only three of the four register
// codes are distinct; code 0b11 behaves as OutputAnalogFull.
type OutputStage uint8

const (
	OutputAnalogFull    OutputStage = 0b00 // ratiometric analog, 0% to 100% of VDD
	OutputAnalogReduced OutputStage = 0b01 // ratiometric analog, 10% to 90% of VDD
	OutputPWM           OutputStage = 0b10 // PWM output
)

func (o OutputStage) String() string {
	switch o {
	case OutputAnalogReduced:
		return "AnalogReduced"
	case OutputPWM:
		return "PWM"
	default:
		return "AnalogFull"
	}
}

// PwmFrequency selects the PWM carrier frequency when OutputPWM is active.
type PwmFrequency uint8

const (
	Pwm115Hz PwmFrequency = 0b00
	Pwm230Hz PwmFrequency = 0b01
	Pwm460Hz PwmFrequency = 0b10
	Pwm920Hz PwmFrequency = 0b11
)

func (f PwmFrequency) String() string {
	switch f {
	case Pwm230Hz:
		return "230Hz"
	case Pwm460Hz:
		return "460Hz"
	case Pwm920Hz:
		return "920Hz"
	default:
		return "115Hz"
	}
}

// SlowFilter is the averaging factor of the output filter. More averaging
// means less noise but slower step response.
type SlowFilter uint8

const (
	SlowFilter16x SlowFilter = 0b00
	SlowFilter8x  SlowFilter = 0b01
	SlowFilter4x  SlowFilter = 0b10
	SlowFilter2x  SlowFilter = 0b11
)

func (s SlowFilter) String() string {
	switch s {
	case SlowFilter8x:
		return "8x"
	case SlowFilter4x:
		return "4x"
	case SlowFilter2x:
		return "2x"
	default:
		return "16x"
	}
}

// FastFilterThreshold is the step size (in LSBs) above which the slow
// filter is bypassed for a fast response.
type FastFilterThreshold uint8

const (
	FastFilterOff   FastFilterThreshold = 0b000 // slow filter only
	FastFilter6LSB  FastFilterThreshold = 0b001
	FastFilter7LSB  FastFilterThreshold = 0b010
	FastFilter9LSB  FastFilterThreshold = 0b011
	FastFilter18LSB FastFilterThreshold = 0b100
	FastFilter21LSB FastFilterThreshold = 0b101
	FastFilter24LSB FastFilterThreshold = 0b110
	FastFilter10LSB FastFilterThreshold = 0b111
)

func (f FastFilterThreshold) String() string {
	switch f {
	case FastFilter6LSB:
		return "6 LSB"
	case FastFilter7LSB:
		return "7 LSB"
	case FastFilter9LSB:
		return "9 LSB"
	case FastFilter18LSB:
		return "18 LSB"
	case FastFilter21LSB:
		return "21 LSB"
	case FastFilter24LSB:
		return "24 LSB"
	case FastFilter10LSB:
		return "10 LSB"
	default:
		return "SlowOnly"
	}
}

// MagnetStatus holds the magnet detection flags from the status register.
type MagnetStatus struct {
	Detected  bool // MD: a magnet is detected by the Hall array
	TooWeak   bool // ML: field too weak, magnet too far
	TooStrong bool // MH: field too strong, magnet too close
}

// Configuration is the full CONF register pair as typed fields.
type Configuration struct {
	PowerMode           PowerMode
	Hysteresis          Hysteresis
	OutputStage         OutputStage
	PwmFrequency        PwmFrequency
	SlowFilter          SlowFilter
	FastFilterThreshold FastFilterThreshold
	Watchdog            bool // auto low-power after 1 minute of no motion
}

// DefaultConfiguration returns the recommended power-on configuration:
// nominal power, 1 LSB hysteresis, full analog output, watchdog enabled.
func DefaultConfiguration() Configuration {
	return Configuration{
		PowerMode:           PowerNominal,
		Hysteresis:          Hysteresis1LSB,
		OutputStage:         OutputAnalogFull,
		PwmFrequency:        Pwm115Hz,
		SlowFilter:          SlowFilter16x,
		FastFilterThreshold: FastFilterOff,
		Watchdog:            true,
	}
}
