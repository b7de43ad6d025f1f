package evdev_test

import (
	"math"
	"testing"

	"deedles.dev/circscroll/internal/evdev"
)

func rel(code uint16, v int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EvRel, Code: code, Value: v}
}

func syn(code uint16) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EvSyn, Code: code}
}

func TestReport(t *testing.T) {
	if (evdev.Report{DX: 1}).HasWheel() || !(evdev.Report{DX: 1}).HasMotion() {
		t.Error("motion report misclassified")
	}
	if (evdev.Report{HWheel: -1}).HasMotion() || !(evdev.Report{HWheel: -1}).HasWheel() {
		t.Error("wheel report misclassified")
	}
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name   string
		events []evdev.InputEvent
		want   []evdev.Report
	}{
		{
			name:   "single",
			events: []evdev.InputEvent{rel(evdev.RelX, 3), rel(evdev.RelY, -4), syn(evdev.SynReport)},
			want:   []evdev.Report{{DX: 3, DY: -4}},
		},
		{
			name: "accumulate",
			events: []evdev.InputEvent{
				rel(evdev.RelX, 3), rel(evdev.RelX, 4), syn(evdev.SynReport),
				rel(evdev.RelY, 1), syn(evdev.SynReport),
			},
			want: []evdev.Report{{DX: 7}, {DY: 1}},
		},
		{
			name: "empty reports",
			events: []evdev.InputEvent{
				syn(evdev.SynReport),
				rel(0x09, 1), syn(evdev.SynReport),
				{Type: evdev.EvKey, Code: evdev.BtnLeft, Value: 1}, syn(evdev.SynReport),
			},
			want: nil,
		},
		{
			name: "wheel",
			events: []evdev.InputEvent{
				rel(evdev.RelWheel, -1), syn(evdev.SynReport),
				rel(evdev.RelX, 2), rel(evdev.RelHWheel, 1), rel(evdev.RelHWheel, 1), syn(evdev.SynReport),
			},
			want: []evdev.Report{{Wheel: -1}, {DX: 2, HWheel: 2}},
		},
		{
			name: "dropped",
			events: []evdev.InputEvent{
				rel(evdev.RelX, 3), syn(evdev.SynDropped),
				rel(evdev.RelX, 100), syn(evdev.SynReport),
				rel(evdev.RelX, 5), syn(evdev.SynReport),
			},
			want: []evdev.Report{{DX: 5}},
		},
		{
			name: "clamp",
			events: []evdev.InputEvent{
				rel(evdev.RelX, math.MaxInt32), rel(evdev.RelX, 10),
				rel(evdev.RelY, math.MinInt16-1), syn(evdev.SynReport),
			},
			want: []evdev.Report{{DX: math.MaxInt16, DY: math.MinInt16}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var f evdev.Frame
			var got []evdev.Report
			for _, ev := range test.events {
				if f.Add(ev) {
					got = append(got, f.Take())
				}
			}

			if len(got) != len(test.want) {
				t.Fatalf("got %v, want %v", got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Fatalf("got %v, want %v", got, test.want)
				}
			}
		})
	}
}
