package profile

// Tag is the build tag that enables profiling, and the name of the profile
// output directory under the cache directory.
const Tag = "pprof"

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported mode disables
	// profiling.
	Mode string
	// Path is the directory profile data is written to.
	Path string
	// Quiet suppresses the profiler's own log messages.
	Quiet bool
}

// Start begins profiling and returns a handle that stops it.
// Both Start and Stop are always safely callable, and are no-ops unless
// built with the pprof tag.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
