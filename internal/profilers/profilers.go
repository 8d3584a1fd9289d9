// Package profilers implement helper functions to set up profiling for the various programs.
//
// If linked, it will install the profiler flags. It only supports debugging.
package profilers

import (
	"flag"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"k8s.io/klog/v2"
)

var (
	flagProfile    = flag.String("profile", "", "Profile to collect: cpu, mem, block, mutex, goroutine or trace. Empty for none.")
	flagProfileDir = flag.String("profile_dir", ".", "Directory where to write the profile selected with -profile.")
)

// modes maps the -profile values to the profile options.
var modes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// Stopper is returned by Setup, and should be stopped before the program exits.
type Stopper interface {
	Stop()
}

type noop struct{}

func (noop) Stop() {}

// Setup starts the profiler configured with -profile, if any.
// You should follow with a deferred call to the returned Stopper.Stop.
func Setup() (Stopper, error) {
	return start(*flagProfile, *flagProfileDir)
}

func start(mode, dir string) (Stopper, error) {
	if mode == "" {
		return noop{}, nil
	}
	option, found := modes[mode]
	if !found {
		return nil, errors.Errorf("unknown -profile=%q", mode)
	}
	klog.Infof("Profiling %s into directory %q", mode, dir)
	return profile.Start(option, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
}
