// Package xdo wraps the parts of libxdo needed to replay pointer input
// into the X server.
package xdo

/*
#cgo pkg-config: libxdo

#include <xdo.h>
*/
import "C"
import (
	"runtime"
)

type Xdo struct {
	p *C.xdo_t
}

func New() (*Xdo, bool) {
	p := C.xdo_new(nil)
	if p == nil {
		return nil, false
	}

	xdo := Xdo{p: p}
	runtime.SetFinalizer(&xdo, (*Xdo).free)
	return &xdo, true
}

func (xdo *Xdo) free() {
	if xdo.p != nil {
		C.xdo_free(xdo.p)
		xdo.p = nil
	}
}

// Close releases the connection to the X server.
func (xdo *Xdo) Close() {
	runtime.SetFinalizer(xdo, nil)
	xdo.free()
}

func (xdo *Xdo) MouseDown(w Window, button int) bool {
	return C.xdo_mouse_down(xdo.p, C.Window(w), C.int(button)) == 0
}

func (xdo *Xdo) MouseUp(w Window, button int) bool {
	return C.xdo_mouse_up(xdo.p, C.Window(w), C.int(button)) == 0
}

func (xdo *Xdo) Click(w Window, button int) bool {
	return C.xdo_click_window(xdo.p, C.Window(w), C.int(button)) == 0
}

func (xdo *Xdo) MoveRelative(dx, dy int) bool {
	return C.xdo_move_mouse_relative(xdo.p, C.int(dx), C.int(dy)) == 0
}

type Window uint32

const CurrentWindow Window = C.CURRENTWINDOW
