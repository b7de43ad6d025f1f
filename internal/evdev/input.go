package evdev

import "unsafe"

const (
	wordbits = unsafe.Sizeof(uintptr(0)) * 8

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocWrite = 1
	iocRead  = 2

	iocReadEBase  = (iocRead << iocDirShift) | ('E' << iocTypeShift)
	iocWriteEBase = (iocWrite << iocDirShift) | ('E' << iocTypeShift)
)

const eviocgid = iocReadEBase | (0x02 << iocNRShift) | (unsafe.Sizeof(InputID{}) << iocSizeShift)

const (
	eviocgnameBase = iocReadEBase | ((iota + 0x06) << iocNRShift)
	eviocgphysBase
)

const eviocgrab = iocWriteEBase | (0x90 << iocNRShift) | (unsafe.Sizeof(int32(0)) << iocSizeShift)

const (
	evCount  = 0x1F + 1
	keyCount = 0x2FF + 1
	relCount = 0x0F + 1
	absCount = 0x3F + 1
	swCount  = 0x10 + 1
	mscCount = 0x07 + 1
	ledCount = 0x0F + 1
	sndCount = 0x07 + 1
	ffCount  = 0x7F + 1
)

// Event types.
const (
	EvSyn uint16 = iota
	EvKey
	EvRel
	EvAbs
	EvMsc
	EvSw
)

const (
	EvLed uint16 = 0x11 + iota
	EvSnd
)

const EvFf uint16 = 0x15

// EV_SYN codes.
const (
	SynReport  uint16 = 0
	SynDropped uint16 = 3
)

// EV_REL codes.
const (
	RelX      uint16 = 0x00
	RelY      uint16 = 0x01
	RelHWheel uint16 = 0x06
	RelWheel  uint16 = 0x08
)

// EV_KEY codes for pointer buttons.
const (
	BtnLeft uint16 = 0x110 + iota
	BtnRight
	BtnMiddle
	BtnSide
	BtnExtra
	BtnForward
	BtnBack
	BtnTask
)

func eviocgname(length uintptr) uintptr {
	return eviocgnameBase | (length << iocSizeShift)
}

func eviocgphys(length uintptr) uintptr {
	return eviocgphysBase | (length << iocSizeShift)
}

func eviocgbit(ev, length uintptr) uintptr {
	return iocReadEBase | ((0x20 + ev) << iocNRShift) | (length << iocSizeShift)
}

func bitsLen(count uintptr) uintptr {
	return (count + wordbits - 1) / wordbits * (wordbits / 8)
}
