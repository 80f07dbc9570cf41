package as5600

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// maxOpsPerSec caps the bus operation rate. The AS5600 updates its angle
// output at most every 150µs in nominal mode; polling faster than this
// only re-reads stale samples.
const maxOpsPerSec = 500

// I2CBus adapts a periph.io I2C bus to the driver's Bus capability.
// Transfers are rate-limited and serialized by the underlying bus.
type I2CBus struct {
	bus     i2c.BusCloser
	limiter *rate.Limiter
}

// OpenI2C initializes the periph host and opens the named I2C bus.
// An empty name selects the first available bus.
func OpenI2C(name string) (*I2CBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("i2c: periph host init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("i2c: open bus %q: %w", name, err)
	}
	slog.Debug("i2c: bus opened", "bus", bus.String())
	return &I2CBus{
		bus:     bus,
		limiter: rate.NewLimiter(rate.Limit(maxOpsPerSec), 10),
	}, nil
}

func (b *I2CBus) Write(ctx context.Context, addr uint16, w []byte) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := b.bus.Tx(addr, w, nil); err != nil {
		return fmt.Errorf("i2c: write 0x%02x: %w", addr, err)
	}
	return nil
}

func (b *I2CBus) WriteRead(ctx context.Context, addr uint16, w, r []byte) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	// Tx issues the write and read with a REPEATED START between them,
	// which the AS5600 requires for register reads.
	if err := b.bus.Tx(addr, w, r); err != nil {
		return fmt.Errorf("i2c: write-read 0x%02x: %w", addr, err)
	}
	return nil
}

// Transaction runs each operation as its own transfer. The AS5600 driver
// never issues combined transactions; this exists to satisfy Bus.
func (b *I2CBus) Transaction(ctx context.Context, addr uint16, ops []Op) error {
	for _, op := range ops {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := b.bus.Tx(addr, op.W, op.R); err != nil {
			return fmt.Errorf("i2c: transaction 0x%02x: %w", addr, err)
		}
	}
	return nil
}

// Close releases the underlying bus.
func (b *I2CBus) Close() error {
	return b.bus.Close()
}
