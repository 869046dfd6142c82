package exposure

import (
	"fmt"
	"math"
)

type rat64 [2]int64

func (r rat64) Float64() float64 { return float64(r[0]) / float64(r[1]) }

// An ExposureValue details how a photograph was exposed. The only value
// used downstream is EV, which ranks the layers of a bracket from
// darkest to brightest.
type ExposureValue struct {
	ISO          int64 // 100, 800, etc.
	ApertureX10  int64 // f/5.6 is the integer 56.
	ShutterSpeed rat64 // 1/500, 1/1000, etc.

	// EV normalized to ISO 100 - https://en.wikipedia.org/wiki/Exposure_value
	// A higher EV lets less light reach the sensor, so gives a darker image.
	EV float64
}

func (ev ExposureValue) String() string {
	s := fmt.Sprintf("f/%.1f", float64(ev.ApertureX10)/10.0)
	if ev.ShutterSpeed[1] != 1 {
		s += fmt.Sprintf(", %d/%d", ev.ShutterSpeed[0], ev.ShutterSpeed[1])
	} else {
		s += fmt.Sprintf(", %ds", ev.ShutterSpeed[0])
	}
	s += fmt.Sprintf(", ISO%d", ev.ISO)
	return s + fmt.Sprintf(", EV %.2f", ev.EV)
}

// Validate sanity checks the values pulled from EXIF and computes EV.
func (ev *ExposureValue) Validate() error {
	if ev.ISO <= 0 {
		return fmt.Errorf("(%s) has bad ISO", ev)
	}
	if ev.ApertureX10 <= 0 {
		return fmt.Errorf("(%s) has bad aperture", ev)
	}
	if ev.ShutterSpeed[0] <= 0 || ev.ShutterSpeed[1] <= 0 {
		return fmt.Errorf("(%s) has bad shutter speed", ev)
	}

	n := float64(ev.ApertureX10) / 10.0
	t := ev.ShutterSpeed.Float64()
	ev.EV = math.Log2(n*n/t) - math.Log2(float64(ev.ISO)/100.0)

	if ev.EV < -10 || ev.EV > 25 {
		return fmt.Errorf("exposure info looks suspicious, EV=%.2f: %s", ev.EV, ev)
	}
	return nil
}
