package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sartorproj/trendcast/logging"
)

// Probe brings up an accelerated backend or reports why it cannot.
type Probe func(ctx context.Context) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Probe{}
)

var errNotRegistered = errors.New("no accelerator registered under this name")

// Register makes an accelerator available to Resolve under name. It is
// meant to be called from init and panics on an empty name, a nil probe or a
// duplicate registration.
func Register(name string, probe Probe) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || probe == nil {
		panic("backend: Register requires a name and a probe")
	}
	if isReferenceName(name) {
		panic(fmt.Sprintf("backend: %q is reserved", name))
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("backend: Register called twice for %q", name))
	}
	registry[name] = probe
}

// Accelerators lists the registered accelerator names in sorted order.
func Accelerators() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the backend for the process. It is called once at startup.
//
// An empty name, "none" or "reference" selects Reference. Any other name is
// looked up among the registered accelerators and probed under ctx. When the
// accelerator is missing or its probe fails, the failure is logged as a
// warning and Reference is returned: Resolve never fails.
func Resolve(ctx context.Context, name string, logger *logrus.Logger) Backend {
	if logger == nil {
		logger = logging.Discard()
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if isReferenceName(name) {
		logger.WithField("backend", ReferenceName).Info("using reference backend")
		return Reference()
	}

	b, err := probe(ctx, name)
	if err != nil {
		logger.WithError(err).
			WithFields(logrus.Fields{"accelerator": name, "backend": ReferenceName}).
			Warn("accelerator unavailable, falling back to reference backend")
		return Reference()
	}

	logger.WithFields(logrus.Fields{"accelerator": name, "backend": b.Name()}).Info("accelerated backend selected")
	return b
}

func probe(ctx context.Context, name string) (b Backend, err error) {
	registryMu.RLock()
	p, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnavailableError{Name: name, Err: errNotRegistered}
	}
	if err := ctx.Err(); err != nil {
		return nil, &UnavailableError{Name: name, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, &UnavailableError{Name: name, Err: fmt.Errorf("probe panicked: %v", r)}
		}
	}()

	b, err = p(ctx)
	if err != nil {
		return nil, &UnavailableError{Name: name, Err: err}
	}
	if b == nil {
		return nil, &UnavailableError{Name: name, Err: errors.New("probe returned no backend")}
	}
	return b, nil
}

func isReferenceName(name string) bool {
	return name == "" || name == "none" || name == ReferenceName
}
