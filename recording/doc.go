// Package recording captures the device operations of a fldraw driver.
//
// A Recorder is a fldraw.Backend that stores every call it receives as a
// typed command instead of writing pixels. The resulting Recording can be
// inspected, which is how the drawing core is tested, or played back onto
// another backend.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(320, 200)
//	d := fldraw.NewDriver(rec)
//	c := fldraw.NewScaled(d, 2)
//	c.SetColor(fldraw.Red)
//	c.Rectf(10, 10, 50, 20)
//	r := rec.Finish()
//
//	for _, cmd := range r.Commands() {
//	    fmt.Println(cmd.Type())
//	}
//
// # Playback
//
// Playback replays the commands onto any backend, using its optional
// capabilities where it has them:
//
//	off := fldraw.NewOffscreen(640, 400)
//	r.Playback(off)
//
// Cache entries drawn through DrawFixed are kept in a ResourcePool and
// referenced by ImageRef, so an entry drawn many times is stored once.
//
// The Recorder is not safe for concurrent use.
package recording
