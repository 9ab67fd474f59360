package fldraw

// Option configures a Driver during creation.
//
// Example:
//
//	// Default true-color driver
//	d := fldraw.NewDriver(fldraw.NewOffscreen(800, 600))
//
//	// Paletted device with 16 hardware color slots
//	d := fldraw.NewDriver(backend, fldraw.WithPalette(16))
type Option func(*driverOptions)

type driverOptions struct {
	hwSlots   int
	fonts     FontRegistry
	onError   ErrorHandler
	cache     *ImageCache
	antialias bool
}

func defaultOptions() driverOptions {
	return driverOptions{
		onError: logErrorHandler,
	}
}

// WithPalette makes the driver model a paletted device with n hardware
// color slots. Colors are allocated into the slots as they are used.
func WithPalette(n int) Option {
	return func(o *driverOptions) {
		o.hwSlots = n
	}
}

// WithFontRegistry sets the registry fonts are resolved from. The default
// is DefaultFontRegistry().
func WithFontRegistry(r FontRegistry) Option {
	return func(o *driverOptions) {
		o.fonts = r
	}
}

// WithErrorHandler sets the function non-fatal drawing errors are reported
// to. nil restores the default, which logs them at debug level.
//
// Example:
//
//	var errs []error
//	d := fldraw.NewDriver(b, fldraw.WithErrorHandler(func(err error) {
//	    errs = append(errs, err)
//	}))
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *driverOptions) {
		if h == nil {
			h = logErrorHandler
		}
		o.onError = h
	}
}

// WithImageCache shares an ImageCache between drivers, so its statistics
// cover all of them.
func WithImageCache(c *ImageCache) Option {
	return func(o *driverOptions) {
		o.cache = c
	}
}

// WithAntialias turns antialiased polygon filling on from the start.
func WithAntialias(on bool) Option {
	return func(o *driverOptions) {
		o.antialias = on
	}
}
