// Package as5600 is a driver for the ams AS5600 contactless magnetic
// rotary position sensor. It exposes the chip's 12-bit angle, magnet
// health, gain and configuration registers as typed operations over a
// small bus capability interface, implemented by a real I2C bus or by
// the in-memory Sim for testing without hardware.
package as5600

import "context"

// Register is an AS5600 register address.
type Register = byte

// Op is one step of a combined bus transaction: a write of W followed by
// a read into R. Either slice may be nil.
type Op struct {
	W []byte
	R []byte
}

// Bus is the transport capability the driver consumes. Implementations
// must be safe for concurrent use. All operations are context-aware;
// addr is the 7-bit device address.
type Bus interface {
	// Write sends w to the device. The first byte conventionally names
	// the target register.
	Write(ctx context.Context, addr uint16, w []byte) error

	// WriteRead sends w, then reads len(r) bytes with a repeated start.
	WriteRead(ctx context.Context, addr uint16, w, r []byte) error

	// Transaction performs a combined multi-operation transfer. A bus
	// may report it as unsupported via ErrUnimplemented.
	Transaction(ctx context.Context, addr uint16, ops []Op) error
}

// Device is an AS5600 bound to a bus and device address. All methods are
// safe for concurrent use if the underlying Bus is.
type Device struct {
	bus  Bus
	addr uint16
}

// New returns a Device on the standard AS5600 address (0x36).
func New(bus Bus) *Device {
	return &Device{bus: bus, addr: DefaultAddr}
}

// NewWithAddress returns a Device on a non-standard address, e.g. behind
// an address translator.
func NewWithAddress(bus Bus, addr uint16) *Device {
	return &Device{bus: bus, addr: addr}
}

func (d *Device) readU8(ctx context.Context, op string, reg Register) (byte, error) {
	var buf [1]byte
	if err := d.bus.WriteRead(ctx, d.addr, []byte{reg}, buf[:]); err != nil {
		return 0, transportErr(op, err)
	}
	return buf[0], nil
}

func (d *Device) writeU8(ctx context.Context, op string, reg Register, val byte) error {
	if err := d.bus.Write(ctx, d.addr, []byte{reg, val}); err != nil {
		return transportErr(op, err)
	}
	return nil
}

// readU12 reads a 12-bit quantity from a HI/LO register pair in one
// transfer, so the two bytes come from the same bus transaction.
func (d *Device) readU12(ctx context.Context, op string, regHi Register) (uint16, error) {
	var buf [2]byte
	if err := d.bus.WriteRead(ctx, d.addr, []byte{regHi}, buf[:]); err != nil {
		return 0, transportErr(op, err)
	}
	return DecodeU12(buf[0], buf[1]), nil
}

func (d *Device) writeU12(ctx context.Context, op string, regHi Register, val uint16) error {
	hi, lo := EncodeU12(val)
	if err := d.bus.Write(ctx, d.addr, []byte{regHi, hi, lo}); err != nil {
		return transportErr(op, err)
	}
	return nil
}

// RawAngle reads the unfiltered 12-bit angle straight from the Hall array.
func (d *Device) RawAngle(ctx context.Context) (uint16, error) {
	return d.readU12(ctx, "read raw angle", RegRawAngleHi)
}

// Angle reads the 12-bit angle after zero position, range scaling and
// filtering have been applied.
func (d *Device) Angle(ctx context.Context) (uint16, error) {
	return d.readU12(ctx, "read angle", RegAngleHi)
}

// MagnetStatus reads and decodes the magnet detection flags.
func (d *Device) MagnetStatus(ctx context.Context) (MagnetStatus, error) {
	reg, err := d.readU8(ctx, "read status", RegStatus)
	if err != nil {
		return MagnetStatus{}, err
	}
	return DecodeStatus(reg), nil
}

// RawStatus reads the status register without decoding.
func (d *Device) RawStatus(ctx context.Context) (byte, error) {
	return d.readU8(ctx, "read status", RegStatus)
}

// Magnitude reads the internal 12-bit field magnitude from the CORDIC.
func (d *Device) Magnitude(ctx context.Context) (uint16, error) {
	return d.readU12(ctx, "read magnitude", RegMagHi)
}

// AGC reads the automatic gain control value (0-255). Mid-range values
// indicate a well-placed magnet.
func (d *Device) AGC(ctx context.Context) (uint8, error) {
	return d.readU8(ctx, "read agc", RegAGC)
}

// BurnCount reads how many times settings have been permanently burned
// to the chip (0-3).
func (d *Device) BurnCount(ctx context.Context) (uint8, error) {
	reg, err := d.readU8(ctx, "read burn count", RegZMCO)
	if err != nil {
		return 0, err
	}
	return BurnCountFromReg(reg), nil
}

// Config reads and decodes the full configuration register pair.
func (d *Device) Config(ctx context.Context) (Configuration, error) {
	hi, err := d.readU8(ctx, "read config", RegConfHi)
	if err != nil {
		return Configuration{}, err
	}
	lo, err := d.readU8(ctx, "read config", RegConfLo)
	if err != nil {
		return Configuration{}, err
	}
	return DecodeConfig(hi, lo), nil
}

// SetConfig writes a full configuration to the chip's volatile memory.
func (d *Device) SetConfig(ctx context.Context, c Configuration) error {
	hi, lo := EncodeConfig(c)
	if err := d.writeU8(ctx, "write config", RegConfHi, hi); err != nil {
		return err
	}
	return d.writeU8(ctx, "write config", RegConfLo, lo)
}

// ZeroPosition reads the start position (ZPOS) of the angular range.
func (d *Device) ZeroPosition(ctx context.Context) (uint16, error) {
	return d.readU12(ctx, "read zero position", RegZPosHi)
}

// SetZeroPosition sets the start position (ZPOS) in volatile memory.
func (d *Device) SetZeroPosition(ctx context.Context, angle uint16) error {
	return d.writeU12(ctx, "write zero position", RegZPosHi, angle)
}

// MaxPosition reads the stop position (MPOS) of the angular range.
func (d *Device) MaxPosition(ctx context.Context) (uint16, error) {
	return d.readU12(ctx, "read max position", RegMPosHi)
}

// SetMaxPosition sets the stop position (MPOS) in volatile memory.
func (d *Device) SetMaxPosition(ctx context.Context, angle uint16) error {
	return d.writeU12(ctx, "write max position", RegMPosHi, angle)
}

// MaxAngle reads the maximum angular range (MANG).
func (d *Device) MaxAngle(ctx context.Context) (uint16, error) {
	return d.readU12(ctx, "read max angle", RegMAngHi)
}

// SetMaxAngle sets the maximum angular range (MANG) in volatile memory.
func (d *Device) SetMaxAngle(ctx context.Context, angle uint16) error {
	return d.writeU12(ctx, "write max angle", RegMAngHi, angle)
}

// PermanentBurnSettings irreversibly burns the current ZPOS and MPOS into
// the chip's non-volatile memory. The chip allows at most three burns
// over its lifetime (see BurnCount); there is no undo. Not reachable via
// any generic register-write helper on purpose.
func (d *Device) PermanentBurnSettings(ctx context.Context) error {
	if err := d.bus.Write(ctx, d.addr, []byte{RegBurn, BurnSettingsCmd}); err != nil {
		return transportErr("burn settings", err)
	}
	return nil
}

// PermanentBurnConfig irreversibly burns the current MANG and
// configuration into non-volatile memory. Single use; there is no undo.
func (d *Device) PermanentBurnConfig(ctx context.Context) error {
	if err := d.bus.Write(ctx, d.addr, []byte{RegBurn, BurnConfigCmd}); err != nil {
		return transportErr("burn config", err)
	}
	return nil
}
