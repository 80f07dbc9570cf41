package as5600_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pavver/as5600-go/as5600"
)

// Compile-time check: the sim and the real bus both satisfy Bus.
var (
	_ as5600.Bus = (*as5600.Sim)(nil)
	_ as5600.Bus = (*as5600.I2CBus)(nil)
)

func TestSimDefaults(t *testing.T) {
	sim := as5600.NewSim()
	if got := sim.GetReg(as5600.RegStatus); got != 0x20 {
		t.Errorf("default status = 0x%02X, want 0x20 (magnet detected)", got)
	}
	if got := sim.GetReg(as5600.RegAGC); got != 100 {
		t.Errorf("default AGC = %d, want 100", got)
	}
	if got := sim.GetReg(as5600.RegConfHi); got != 0x20 {
		t.Errorf("default CONF_HI = 0x%02X, want 0x20 (watchdog on)", got)
	}
	if got := sim.GetReg(as5600.RegRawAngleHi); got != 0 {
		t.Errorf("default raw angle hi = 0x%02X, want 0", got)
	}
}

func TestSimWriteStoresAtRegister(t *testing.T) {
	sim := as5600.NewSim()
	ctx := context.Background()
	// Multi-byte payload lands at consecutive addresses from w[0].
	if err := sim.Write(ctx, as5600.DefaultAddr, []byte{as5600.RegZPosHi, 0x0A, 0xBC}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := sim.GetReg(as5600.RegZPosHi); got != 0x0A {
		t.Errorf("ZPOS_HI = 0x%02X, want 0x0A", got)
	}
	if got := sim.GetReg(as5600.RegZPosLo); got != 0xBC {
		t.Errorf("ZPOS_LO = 0x%02X, want 0xBC", got)
	}
}

func TestSimWriteNoPayloadIgnored(t *testing.T) {
	sim := as5600.NewSim()
	ctx := context.Background()
	if err := sim.Write(ctx, as5600.DefaultAddr, []byte{as5600.RegZPosHi}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sim.Write(ctx, as5600.DefaultAddr, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := sim.GetReg(as5600.RegZPosHi); got != 0 {
		t.Errorf("register changed by payload-less write: 0x%02X", got)
	}
}

func TestSimWriteBoundsTruncated(t *testing.T) {
	sim := as5600.NewSim()
	ctx := context.Background()
	// Payload starting at 0xFE: bytes for 0xFE and 0xFF land, the rest
	// fall off the end of the address space and are dropped.
	err := sim.Write(ctx, as5600.DefaultAddr, []byte{0xFE, 0x11, 0x22, 0x33, 0x44})
	if err != nil {
		t.Fatalf("Write past bound: %v", err)
	}
	if got := sim.GetReg(0xFE); got != 0x11 {
		t.Errorf("reg 0xFE = 0x%02X, want 0x11", got)
	}
	if got := sim.GetReg(0xFF); got != 0x22 {
		t.Errorf("reg 0xFF = 0x%02X, want 0x22", got)
	}
	// Low addresses must be untouched.
	if got := sim.GetReg(0x00); got != 0 {
		t.Errorf("reg 0x00 corrupted: 0x%02X", got)
	}
}

func TestSimReadBoundsZeroFilled(t *testing.T) {
	sim := as5600.NewSim()
	ctx := context.Background()
	if err := sim.Write(ctx, as5600.DefaultAddr, []byte{0xFF, 0x5A}); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 4)
	for i := range buf {
		buf[i] = 0xEE // sentinel, must be overwritten
	}
	if err := sim.WriteRead(ctx, as5600.DefaultAddr, []byte{0xFF}, buf); err != nil {
		t.Fatalf("WriteRead past bound: %v", err)
	}
	want := []byte{0x5A, 0x00, 0x00, 0x00}
	for i := range buf {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = 0x%02X, want 0x%02X", i, buf[i], want[i])
		}
	}
}

func TestSimReadEmptySelector(t *testing.T) {
	sim := as5600.NewSim()
	buf := make([]byte, 1)
	if err := sim.WriteRead(context.Background(), as5600.DefaultAddr, nil, buf); err == nil {
		t.Error("WriteRead with no register selector should fail")
	}
}

func TestSimTransactionUnimplemented(t *testing.T) {
	sim := as5600.NewSim()
	err := sim.Transaction(context.Background(), as5600.DefaultAddr, []as5600.Op{
		{W: []byte{as5600.RegStatus}, R: make([]byte, 1)},
	})
	if !errors.Is(err, as5600.ErrUnimplemented) {
		t.Fatalf("Transaction error = %v, want ErrUnimplemented", err)
	}
	// Distinct from a transport failure: no TransportError in the chain.
	var te *as5600.TransportError
	if errors.As(err, &te) {
		t.Error("unimplemented signal must not be a TransportError")
	}
}

func TestSimFailInjection(t *testing.T) {
	sim := as5600.NewSim()
	ctx := context.Background()
	sim.SetFailWrite(true)
	if err := sim.Write(ctx, as5600.DefaultAddr, []byte{0x01, 0x02}); err == nil {
		t.Error("write should fail when configured to")
	}
	sim.SetFailWrite(false)
	if err := sim.Write(ctx, as5600.DefaultAddr, []byte{0x01, 0x02}); err != nil {
		t.Errorf("write should succeed again: %v", err)
	}

	sim.SetFailRead(true)
	buf := make([]byte, 1)
	if err := sim.WriteRead(ctx, as5600.DefaultAddr, []byte{0x01}, buf); err == nil {
		t.Error("read should fail when configured to")
	}
}

func TestSimControlSurface(t *testing.T) {
	sim := as5600.NewSim()
	sim.SetRawAngle(2048)
	if hi, lo := sim.GetReg(as5600.RegRawAngleHi), sim.GetReg(as5600.RegRawAngleLo); hi != 0x08 || lo != 0x00 {
		t.Errorf("raw angle regs = (0x%02X, 0x%02X), want (0x08, 0x00)", hi, lo)
	}
	sim.SetRawAngle(0xFFFF) // masked to 12 bits
	if got := as5600.DecodeU12(sim.GetReg(as5600.RegRawAngleHi), sim.GetReg(as5600.RegRawAngleLo)); got != 4095 {
		t.Errorf("masked raw angle = %d, want 4095", got)
	}
	sim.SetMagnitude(1234)
	if got := as5600.DecodeU12(sim.GetReg(as5600.RegMagHi), sim.GetReg(as5600.RegMagLo)); got != 1234 {
		t.Errorf("magnitude = %d, want 1234", got)
	}
	sim.SetAGC(42)
	if got := sim.GetReg(as5600.RegAGC); got != 42 {
		t.Errorf("AGC = %d, want 42", got)
	}
	sim.SetBurnCount(0xFF)
	if got := sim.GetReg(as5600.RegZMCO); got != 0x03 {
		t.Errorf("ZMCO = 0x%02X, want 0x03 (masked to 2 bits)", got)
	}
}

func TestSimConcurrentControlUpdates(t *testing.T) {
	// Two writers hammer different quantities while a reader checks that
	// it only ever observes values that were actually written; a torn
	// multi-byte read would produce a value outside the written sets.
	sim := as5600.NewSim()
	ctx := context.Background()
	dev := as5600.New(sim)

	angles := []uint16{0x0000, 0x0FFF} // hi/lo bytes differ maximally
	gains := []uint8{0, 255}
	sim.SetRawAngle(angles[0])
	sim.SetAGC(gains[0])

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				sim.SetRawAngle(angles[i%2])
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				sim.SetAGC(gains[i%2])
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		angle, err := dev.RawAngle(ctx)
		if err != nil {
			t.Fatalf("RawAngle: %v", err)
		}
		if angle != 0x0000 && angle != 0x0FFF {
			t.Fatalf("torn raw angle read: %d", angle)
		}
		agc, err := dev.AGC(ctx)
		if err != nil {
			t.Fatalf("AGC: %v", err)
		}
		if agc != 0 && agc != 255 {
			t.Fatalf("unexpected AGC value: %d", agc)
		}
	}
	close(stop)
	wg.Wait()
}
