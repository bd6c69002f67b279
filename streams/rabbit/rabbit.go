// Package rabbit implements the Rabbit stream cipher (eSTREAM portfolio),
// ported directly from original_source/src/stream/rabbit/{rabbit_setup,
// rabbit_setiv,rabbit_common}.c. Keys up to 16 bytes are right-zero-padded;
// IVs up to 8 bytes are likewise padded, matching the C library's contract.
package rabbit

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

var (
	errKeyTooLong = errors.New("rabbit: key must be at most 16 bytes")
	errIVTooLong  = errors.New("rabbit: iv must be at most 8 bytes")
)

type ctx struct {
	x     [8]uint32
	c     [8]uint32
	carry uint32
}

// Cipher is one Rabbit keystream generator instance: a master context
// (derived from the key alone) and a work context (derived from master +
// IV), mirroring rabbit_state in the C source.
type Cipher struct {
	master ctx
	work   ctx

	block  [16]byte
	unused int
}

func gFunc(x uint32) uint32 {
	a := x & 0xFFFF
	b := x >> 16
	h := (((a*a)>>17)+(a*b))>>15 + b*b
	l := x * x
	return h ^ l
}

func nextState(p *ctx) {
	var cOld [8]uint32
	copy(cOld[:], p.c[:])

	p.c[0] = p.c[0] + 0x4D34D34D + p.carry
	carryBit := func(nv, ov uint32) uint32 {
		if nv < ov {
			return 1
		}
		return 0
	}
	p.c[1] = p.c[1] + 0xD34D34D3 + carryBit(p.c[0], cOld[0])
	p.c[2] = p.c[2] + 0x34D34D34 + carryBit(p.c[1], cOld[1])
	p.c[3] = p.c[3] + 0x4D34D34D + carryBit(p.c[2], cOld[2])
	p.c[4] = p.c[4] + 0xD34D34D3 + carryBit(p.c[3], cOld[3])
	p.c[5] = p.c[5] + 0x34D34D34 + carryBit(p.c[4], cOld[4])
	p.c[6] = p.c[6] + 0x4D34D34D + carryBit(p.c[5], cOld[5])
	p.c[7] = p.c[7] + 0xD34D34D3 + carryBit(p.c[6], cOld[6])
	p.carry = carryBit(p.c[7], cOld[7])

	var g [8]uint32
	for i := 0; i < 8; i++ {
		g[i] = gFunc(p.x[i] + p.c[i])
	}

	p.x[0] = g[0] + bits.RotateLeft32(g[7], 16) + bits.RotateLeft32(g[6], 16)
	p.x[1] = g[1] + bits.RotateLeft32(g[0], 8) + g[7]
	p.x[2] = g[2] + bits.RotateLeft32(g[1], 16) + bits.RotateLeft32(g[0], 16)
	p.x[3] = g[3] + bits.RotateLeft32(g[2], 8) + g[1]
	p.x[4] = g[4] + bits.RotateLeft32(g[3], 16) + bits.RotateLeft32(g[2], 16)
	p.x[5] = g[5] + bits.RotateLeft32(g[4], 8) + g[3]
	p.x[6] = g[6] + bits.RotateLeft32(g[5], 16) + bits.RotateLeft32(g[4], 16)
	p.x[7] = g[7] + bits.RotateLeft32(g[6], 8) + g[5]
}

func genBlock(work *ctx, out []byte) {
	nextState(work)
	x := &work.x
	binary.LittleEndian.PutUint32(out[0:], x[0]^(x[5]>>16)^(x[3]<<16))
	binary.LittleEndian.PutUint32(out[4:], x[2]^(x[7]>>16)^(x[5]<<16))
	binary.LittleEndian.PutUint32(out[8:], x[4]^(x[1]>>16)^(x[7]<<16))
	binary.LittleEndian.PutUint32(out[12:], x[6]^(x[3]>>16)^(x[1]<<16))
}

// New schedules key (up to 16 bytes, zero-padded) and an optional iv (up
// to 8 bytes, zero-padded; nil selects the all-zero IV).
func New(key, iv []byte) (*Cipher, error) {
	if len(key) > 16 {
		return nil, errKeyTooLong
	}
	if len(iv) > 8 {
		return nil, errIVTooLong
	}

	var tmpKey [16]byte
	copy(tmpKey[:], key)

	k0 := binary.LittleEndian.Uint32(tmpKey[0:])
	k1 := binary.LittleEndian.Uint32(tmpKey[4:])
	k2 := binary.LittleEndian.Uint32(tmpKey[8:])
	k3 := binary.LittleEndian.Uint32(tmpKey[12:])

	c := &Cipher{}
	m := &c.master
	m.x[0], m.x[2], m.x[4], m.x[6] = k0, k1, k2, k3
	m.x[1] = (k3 << 16) | (k2 >> 16)
	m.x[3] = (k0 << 16) | (k3 >> 16)
	m.x[5] = (k1 << 16) | (k0 >> 16)
	m.x[7] = (k2 << 16) | (k1 >> 16)

	m.c[0] = bits.RotateLeft32(k2, 16)
	m.c[2] = bits.RotateLeft32(k3, 16)
	m.c[4] = bits.RotateLeft32(k0, 16)
	m.c[6] = bits.RotateLeft32(k1, 16)
	m.c[1] = (k0 & 0xFFFF0000) | (k1 & 0xFFFF)
	m.c[3] = (k1 & 0xFFFF0000) | (k2 & 0xFFFF)
	m.c[5] = (k2 & 0xFFFF0000) | (k3 & 0xFFFF)
	m.c[7] = (k3 & 0xFFFF0000) | (k0 & 0xFFFF)
	m.carry = 0

	for i := 0; i < 4; i++ {
		nextState(m)
	}
	for i := 0; i < 8; i++ {
		m.c[i] ^= m.x[(i+4)&0x7]
	}

	c.work = c.master
	if err := c.SetIV(iv); err != nil {
		return nil, err
	}
	return c, nil
}

// SetIV reinitializes the work context from the master context and iv
// (up to 8 bytes, zero-padded; nil selects the all-zero IV), resetting
// the keystream buffer — rabbit_setiv's contract.
func (c *Cipher) SetIV(iv []byte) error {
	if len(iv) > 8 {
		return errIVTooLong
	}
	var tmpIV [8]byte
	copy(tmpIV[:], iv)

	i0 := binary.LittleEndian.Uint32(tmpIV[0:])
	i2 := binary.LittleEndian.Uint32(tmpIV[4:])
	i1 := (i0 >> 16) | (i2 & 0xFFFF0000)
	i3 := (i2 << 16) | (i0 & 0x0000FFFF)

	c.work = c.master
	c.work.c[0] = c.master.c[0] ^ i0
	c.work.c[1] = c.master.c[1] ^ i1
	c.work.c[2] = c.master.c[2] ^ i2
	c.work.c[3] = c.master.c[3] ^ i3
	c.work.c[4] = c.master.c[4] ^ i0
	c.work.c[5] = c.master.c[5] ^ i1
	c.work.c[6] = c.master.c[6] ^ i2
	c.work.c[7] = c.master.c[7] ^ i3

	for i := 0; i < 4; i++ {
		nextState(&c.work)
	}

	c.block = [16]byte{}
	c.unused = 0
	return nil
}

// XORKeyStream encrypts (or decrypts) src into dst, in any chunk size.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	for i := range src {
		if c.unused == 0 {
			genBlock(&c.work, c.block[:])
			c.unused = 16
		}
		dst[i] = src[i] ^ c.block[16-c.unused]
		c.unused--
	}
}
