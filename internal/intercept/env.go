package intercept

import (
	"os"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// The following package-level function variables hold the "real"
// implementation each EnvView method dispatches through. A test can point
// these at fakes the same way the teacher codebase swaps out its
// lookPathFunc/sleepFunc hooks; Install/Uninstall never touch these vars
// themselves, they flip monitorContext.active instead, which is what lets
// EnvView remain a thin, always-present facade.
var (
	osGetenv    = os.Getenv
	osLookupEnv = os.LookupEnv
	osSetenv    = os.Setenv
	osUnsetenv  = os.Unsetenv
	osEnviron   = os.Environ
)

// EnvView is the monitored facade over process environment access.
// Construct one with Env() rather than wrapping os functions directly,
// so interception stays opt-in per call site.
type EnvView struct{}

// Env returns the monitored environment facade.
func Env() EnvView { return EnvView{} }

func (EnvView) Getenv(key string) string {
	v := osGetenv(key)
	emit(signal.EnvAccess, signal.Metadata{Variable: key}, 1, cfgEnv())
	return v
}

func (EnvView) LookupEnv(key string) (string, bool) {
	v, ok := osLookupEnv(key)
	emit(signal.EnvAccess, signal.Metadata{Variable: key}, 1, cfgEnv())
	return v, ok
}

func (EnvView) Setenv(key, value string) error {
	err := osSetenv(key, value)
	emit(signal.EnvAccess, signal.Metadata{Variable: key, Operation: "set"}, 1, cfgEnv())
	return err
}

func (EnvView) Unsetenv(key string) error {
	err := osUnsetenv(key)
	emit(signal.EnvAccess, signal.Metadata{Variable: key, Operation: "unset"}, 1, cfgEnv())
	return err
}

// Environ returns a copy of the process environment. Per spec.md §4.3's
// enumeration handling, a single EnvAccess signal with Variable="*" is
// emitted for the bulk read rather than one per variable.
func (EnvView) Environ() []string {
	v := osEnviron()
	emit(signal.EnvAccess, signal.Metadata{Variable: "*", Operation: "enumerate"}, 1, cfgEnv())
	return v
}
