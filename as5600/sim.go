package as5600

import (
	"context"
	"errors"
	"sync"
)

// Sim is a thread-safe in-memory emulation of the AS5600 register space
// for testing and development without hardware. It implements Bus, so a
// Device can run against it unmodified, and adds a control surface
// (SetRawAngle, SetStatus, ...) that injects sensor-side values directly
// into the backing registers; those addresses are read-only through the
// normal bus path on the real chip.
//
// A single *Sim may be shared by any number of goroutines; each bus or
// control operation holds the internal lock for its own duration only,
// so multi-byte quantities are never observed half-updated.
type Sim struct {
	mu        sync.Mutex
	regs      [256]byte
	failWrite bool
	failRead  bool
}

// NewSim creates a simulated chip in a healthy default state: magnet
// detected, AGC at 100, watchdog enabled, all other registers zero.
func NewSim() *Sim {
	s := &Sim{}
	s.regs[RegStatus] = EncodeStatus(MagnetStatus{Detected: true})
	s.regs[RegAGC] = 100
	hi, _ := EncodeConfig(Configuration{Watchdog: true})
	s.regs[RegConfHi] = hi
	return s
}

// SetFailWrite configures the sim to fail all bus writes.
func (s *Sim) SetFailWrite(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = fail
}

// SetFailRead configures the sim to fail all bus reads.
func (s *Sim) SetFailRead(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRead = fail
}

// store copies data into the register array starting at reg. Bytes that
// would land past address 255 are dropped, mirroring a fire-and-forget
// bus write; no error is reported.
func (s *Sim) store(reg byte, data []byte) {
	copy(s.regs[int(reg):], data)
}

// Write stores w[1:] starting at the register named by w[0], the AS5600
// write convention. Writes shorter than two bytes carry no payload and
// are ignored. The device address is not interpreted.
func (s *Sim) Write(ctx context.Context, addr uint16, w []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return errors.New("sim: write failure configured")
	}
	if len(w) >= 2 {
		s.store(w[0], w[1:])
	}
	return nil
}

// WriteRead reads len(r) bytes starting at the register named by w[0].
// Reads running past address 255 return zero for the out-of-range tail.
func (s *Sim) WriteRead(ctx context.Context, addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRead {
		return errors.New("sim: read failure configured")
	}
	if len(w) == 0 {
		return errors.New("sim: empty register selector")
	}
	start := int(w[0])
	for i := range r {
		if start+i < len(s.regs) {
			r[i] = s.regs[start+i]
		} else {
			r[i] = 0
		}
	}
	return nil
}

// Transaction is deliberately not implemented: the AS5600 driver only
// uses Write and WriteRead, and emulating arbitrary combined transfers
// is out of the sim's scope. Always returns ErrUnimplemented.
func (s *Sim) Transaction(ctx context.Context, addr uint16, ops []Op) error {
	return ErrUnimplemented
}

// SetRawAngle injects a raw angle reading (masked to 12 bits).
func (s *Sim) SetRawAngle(angle uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hi, lo := EncodeU12(angle)
	s.regs[RegRawAngleHi] = hi
	s.regs[RegRawAngleLo] = lo
}

// SetAngle injects a filtered/scaled angle reading (masked to 12 bits).
func (s *Sim) SetAngle(angle uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hi, lo := EncodeU12(angle)
	s.regs[RegAngleHi] = hi
	s.regs[RegAngleLo] = lo
}

// SetStatus injects a magnet status.
func (s *Sim) SetStatus(status MagnetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[RegStatus] = EncodeStatus(status)
}

// SetAGC injects an automatic gain control value.
func (s *Sim) SetAGC(agc uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[RegAGC] = agc
}

// SetMagnitude injects a field magnitude reading (masked to 12 bits).
func (s *Sim) SetMagnitude(magnitude uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hi, lo := EncodeU12(magnitude)
	s.regs[RegMagHi] = hi
	s.regs[RegMagLo] = lo
}

// SetBurnCount injects a burn cycle count (masked to 2 bits).
func (s *Sim) SetBurnCount(count uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[RegZMCO] = count & 0x03
}

// GetReg returns one register byte for test assertions.
func (s *Sim) GetReg(reg Register) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[reg]
}
