package icm20948

import (
	"errors"
	"testing"
	"time"
)

type fakeI2C struct {
	regs   map[byte][]byte
	writes []writeOp

	readErrFor map[byte]error
}

type writeOp struct {
	reg byte
	val byte
}

func (f *fakeI2C) ReadRegU8(reg byte) (byte, error) {
	if err := f.readErrFor[reg]; err != nil {
		return 0, err
	}
	b := f.regs[reg]
	if len(b) < 1 {
		return 0, errors.New("no reg")
	}
	return b[0], nil
}

func (f *fakeI2C) ReadReg(reg byte, dst []byte) error {
	if err := f.readErrFor[reg]; err != nil {
		return err
	}
	b := f.regs[reg]
	if len(b) < len(dst) {
		return errors.New("short reg")
	}
	copy(dst, b[:len(dst)])
	return nil
}

func (f *fakeI2C) WriteReg(reg, value byte) error {
	f.writes = append(f.writes, writeOp{reg: reg, val: value})
	return nil
}

func TestNew_WhoAmIMismatch(t *testing.T) {
	oldSleep := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = oldSleep })

	f := &fakeI2C{regs: map[byte][]byte{regWhoAmI: {0x00}}}
	if _, err := newWithIO(f); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNew_ConfiguresAccelOnly(t *testing.T) {
	oldSleep := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = oldSleep })

	f := &fakeI2C{regs: map[byte][]byte{regWhoAmI: {whoAmIVal}}}
	if _, err := newWithIO(f); err != nil {
		t.Fatalf("newWithIO: %v", err)
	}

	var sawReset, sawWake, sawAccelCfg bool
	for _, w := range f.writes {
		if w.reg == regPwrMgmt1 && w.val == bitReset {
			sawReset = true
		}
		if w.reg == regPwrMgmt1 && w.val == 0x01 {
			sawWake = true
		}
		if w.reg == regAccelConfig && w.val == fsAccel4g {
			sawAccelCfg = true
		}
	}
	if !sawReset {
		t.Fatalf("expected reset write to PWR_MGMT_1")
	}
	if !sawWake {
		t.Fatalf("expected wake write to PWR_MGMT_1")
	}
	if !sawAccelCfg {
		t.Fatalf("expected accel full-scale config write")
	}
}

func TestRead_ScalesToG(t *testing.T) {
	oldSleep := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = oldSleep })

	// 16384 counts -> 2 G at the 4 G full-scale (4/32768).
	f := &fakeI2C{regs: map[byte][]byte{regWhoAmI: {whoAmIVal}}}
	f.regs[regAccelXoutH] = []byte{
		0x40, 0x00, // ax = 16384 -> 2 G
		0x00, 0x00, // ay
		0xC0, 0x00, // az = -16384 -> -2 G
	}

	d, err := newWithIO(f)
	if err != nil {
		t.Fatalf("newWithIO: %v", err)
	}

	s, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Ax < 1.99 || s.Ax > 2.01 {
		t.Fatalf("Ax=%v want ~2.0", s.Ax)
	}
	if s.Ay != 0 {
		t.Fatalf("Ay=%v want 0", s.Ay)
	}
	if s.Az > -1.99 || s.Az < -2.01 {
		t.Fatalf("Az=%v want ~-2.0", s.Az)
	}
}
