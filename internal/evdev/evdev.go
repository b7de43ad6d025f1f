// Package evdev reads events from Linux input device nodes.
package evdev

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

type Device struct {
	file *os.File
	conn syscall.RawConn

	Path string
	Name string
	Phys string
	ID   InputID

	bits  []byte
	codes map[uint16][]byte
}

func Open(path string) (*Device, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	d := Device{file: file, Path: path}
	err = d.init()
	if err != nil {
		file.Close()
		return nil, err
	}
	return &d, nil
}

// capabilities lists the event types whose code bitmaps are queried when
// a device is opened.
var capabilities = []struct {
	t     uint16
	count uintptr
}{
	{EvKey, keyCount},
	{EvRel, relCount},
	{EvAbs, absCount},
	{EvMsc, mscCount},
	{EvSw, swCount},
	{EvLed, ledCount},
	{EvSnd, sndCount},
	{EvFf, ffCount},
}

func (d *Device) init() error {
	conn, err := d.file.SyscallConn()
	if err != nil {
		return err
	}
	d.conn = conn

	var buf [256]byte
	err = cctl(conn, eviocgname(uintptr(len(buf))), &buf[0])
	if err != nil {
		return fmt.Errorf("get device name: %w", err)
	}
	d.Name = fromNTString(buf[:])

	// Not every device has a physical path.
	clear(buf[:])
	if cctl(conn, eviocgphys(uintptr(len(buf))), &buf[0]) == nil {
		d.Phys = fromNTString(buf[:])
	}

	err = cctl(conn, eviocgid, &d.ID)
	if err != nil {
		return fmt.Errorf("get device info: %w", err)
	}

	d.bits = make([]byte, bitsLen(evCount))
	err = cctl(conn, eviocgbit(0, uintptr(len(d.bits))), &d.bits[0])
	if err != nil {
		return fmt.Errorf("get device capabilities: %w", err)
	}

	d.codes = make(map[uint16][]byte, len(capabilities))
	for _, c := range capabilities {
		if !d.HasEventType(c.t) {
			continue
		}

		bits := make([]byte, bitsLen(c.count))
		err = cctl(conn, eviocgbit(uintptr(c.t), uintptr(len(bits))), &bits[0])
		if err != nil {
			return fmt.Errorf("get codes for event type %#x: %w", c.t, err)
		}
		d.codes[c.t] = bits
	}

	return nil
}

func (d *Device) Close() error {
	return d.file.Close()
}

// Grab requests exclusive access to the device. While grabbed, events
// are not delivered to any other reader, including the display server.
func (d *Device) Grab() error {
	return d.grab(1)
}

func (d *Device) Ungrab() error {
	return d.grab(0)
}

func (d *Device) grab(v uintptr) error {
	return control(d.conn, func(fd uintptr) error {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, eviocgrab, v)
		return fromErrno(errno)
	})
}

func (d *Device) HasEventType(t uint16) bool {
	return isBitSet(d.bits, t)
}

func (d *Device) HasEventCode(t, code uint16) bool {
	return d.HasEventType(t) && isBitSet(d.codes[t], code)
}

func (d *Device) NextEvent() (InputEvent, error) {
	var raw struct {
		Time  unix.Timeval
		Type  uint16
		Code  uint16
		Value int32
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&raw)), unsafe.Sizeof(raw))
	_, err := io.ReadFull(d.file, buf)
	if err != nil {
		return InputEvent{}, fmt.Errorf("read: %w", err)
	}

	return InputEvent{
		Time:  time.Unix(raw.Time.Unix()),
		Type:  raw.Type,
		Code:  raw.Code,
		Value: raw.Value,
	}, nil
}

type InputEvent struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

func (ev InputEvent) Is(t, code uint16) bool {
	return (ev.Type == t) && (ev.Code == code)
}

type InputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

func control(conn syscall.RawConn, f func(uintptr) error) error {
	var ferr error
	err := conn.Control(func(fd uintptr) { ferr = f(fd) })
	return errors.Join(err, ferr)
}

func ioctl[T any](fd, name uintptr, data *T) unix.Errno {
	_, _, err := unix.Syscall(unix.SYS_IOCTL, fd, name, uintptr(unsafe.Pointer(data)))
	return err
}

func cctl[T any](conn syscall.RawConn, name uintptr, data *T) error {
	return control(conn, func(fd uintptr) error {
		return fromErrno(ioctl(fd, name, data))
	})
}

func fromErrno(err unix.Errno) error {
	if err == 0 {
		return nil
	}
	return err
}

func isBitSet(bits []byte, bit uint16) bool {
	i := int(bit / 8)
	if i >= len(bits) {
		return false
	}
	return bits[i]&(1<<(bit%8)) != 0
}

func fromNTString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
