package as5600

// Register addresses matching the ams AS5600 datasheet register map.
// Multi-byte quantities are 12-bit values stored big-endian across two
// consecutive registers (HI first, top nibble of HI unused).
const (
	RegZMCO       Register = 0x00 // Burn count (ZMCO), low 2 bits, max 3 (read-only)
	RegZPosHi     Register = 0x01 // Zero position (ZPOS) high byte
	RegZPosLo     Register = 0x02 // Zero position (ZPOS) low byte
	RegMPosHi     Register = 0x03 // Max position (MPOS) high byte
	RegMPosLo     Register = 0x04 // Max position (MPOS) low byte
	RegMAngHi     Register = 0x05 // Max angle (MANG) high byte
	RegMAngLo     Register = 0x06 // Max angle (MANG) low byte
	RegConfHi     Register = 0x07 // Configuration high byte (watchdog, fast/slow filter)
	RegConfLo     Register = 0x08 // Configuration low byte (pwm, output, hysteresis, power)
	RegStatus     Register = 0x0B // Magnet status: MD bit 5, ML bit 4, MH bit 3 (read-only)
	RegRawAngleHi Register = 0x0C // Raw angle high byte (read-only)
	RegRawAngleLo Register = 0x0D // Raw angle low byte (read-only)
	RegAngleHi    Register = 0x0E // Filtered/scaled angle high byte (read-only)
	RegAngleLo    Register = 0x0F // Filtered/scaled angle low byte (read-only)
	RegAGC        Register = 0x1A // Automatic gain control, 0-255 (read-only)
	RegMagHi      Register = 0x1B // Magnitude high byte (read-only)
	RegMagLo      Register = 0x1C // Magnitude low byte (read-only)
	RegBurn       Register = 0xFF // Burn command register (write-only)
)

// DefaultAddr is the fixed 7-bit I2C address of the AS5600.
const DefaultAddr uint16 = 0x36

// Burn command codes accepted by RegBurn. Both trigger irreversible
// writes to the chip's non-volatile memory.
const (
	BurnSettingsCmd byte = 0x80 // burn ZPOS/MPOS (BURN_ANGLE per datasheet naming)
	BurnConfigCmd   byte = 0x40 // burn MANG and configuration (BURN_SETTING)
)

// Status register bit masks.
const (
	statusDetected  byte = 0x20 // MD: magnet detected
	statusTooWeak   byte = 0x10 // ML: field too weak (magnet too far)
	statusTooStrong byte = 0x08 // MH: field too strong (magnet too close)
)

// DecodeU12 combines a big-endian register pair into a 12-bit value.
// The top nibble of the high byte is ignored, so any input is valid.
func DecodeU12(hi, lo byte) uint16 {
	return (uint16(hi)<<8 | uint16(lo)) & 0x0FFF
}

// EncodeU12 splits a 12-bit value into a big-endian register pair.
// Values above 4095 are masked, not rejected, matching the register width.
func EncodeU12(v uint16) (hi, lo byte) {
	v &= 0x0FFF
	return byte(v >> 8), byte(v)
}

// BurnCountFromReg extracts the burn cycle count from the ZMCO register.
// Only the low 2 bits are significant (max 3 burns).
func BurnCountFromReg(reg byte) uint8 {
	return reg & 0x03
}

// DecodeStatus unpacks the magnet flags from the status register.
// All eight flag combinations pass through as-is; "too weak" together
// with "too strong" is a sensor inconsistency the codec does not reject.
func DecodeStatus(reg byte) MagnetStatus {
	return MagnetStatus{
		Detected:  reg&statusDetected != 0,
		TooWeak:   reg&statusTooWeak != 0,
		TooStrong: reg&statusTooStrong != 0,
	}
}

// EncodeStatus packs magnet flags into a status register byte.
// The real chip never accepts a status write; this is used by the
// simulated register space to inject magnet states.
func EncodeStatus(s MagnetStatus) byte {
	var reg byte
	if s.Detected {
		reg |= statusDetected
	}
	if s.TooWeak {
		reg |= statusTooWeak
	}
	if s.TooStrong {
		reg |= statusTooStrong
	}
	return reg
}

// DecodeConfig unpacks the two configuration registers.
//
// CONF_HI: [5]=watchdog [4:2]=fast filter threshold [1:0]=slow filter
// CONF_LO: [7:6]=pwm frequency [5:4]=output stage [3:2]=hysteresis [1:0]=power mode
//
// Every bit pattern decodes to a defined variant. The undocumented output
// stage code 0b11 decodes to AnalogFull, matching chip behavior; this is
// the one spot where decode followed by encode normalizes the input.
func DecodeConfig(hi, lo byte) Configuration {
	out := OutputStage((lo >> 4) & 0x03)
	if out == 0x03 {
		out = OutputAnalogFull
	}
	return Configuration{
		PowerMode:           PowerMode(lo & 0x03),
		Hysteresis:          Hysteresis((lo >> 2) & 0x03),
		OutputStage:         out,
		PwmFrequency:        PwmFrequency((lo >> 6) & 0x03),
		SlowFilter:          SlowFilter(hi & 0x03),
		FastFilterThreshold: FastFilterThreshold((hi >> 2) & 0x07),
		Watchdog:            hi&0x20 != 0,
	}
}

// EncodeConfig packs a Configuration into the two configuration registers.
// Inverse of DecodeConfig for all representable Configuration values.
func EncodeConfig(c Configuration) (hi, lo byte) {
	if c.Watchdog {
		hi |= 0x20
	}
	hi |= byte(c.FastFilterThreshold&0x07) << 2
	hi |= byte(c.SlowFilter & 0x03)

	lo = byte(c.PwmFrequency&0x03) << 6
	lo |= byte(c.OutputStage&0x03) << 4
	lo |= byte(c.Hysteresis&0x03) << 2
	lo |= byte(c.PowerMode & 0x03)
	return hi, lo
}
