package eos

import "log/slog"

// Logger is the package-level logger used wherever this package would
// otherwise call into the source's EOS::Logger (vulkanClasses.cpp's
// warn/error/debug call sites). Defaults to slog.Default(); override with
// SetLogger before calling New if the host application wants its own
// handler/attributes attached.
var Logger = slog.Default()

// SetLogger replaces the package-level logger. Contexts created after this
// call use the new logger; a Context already constructed keeps the logger
// it was given at construction time.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	Logger = l
}
