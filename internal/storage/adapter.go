package storage

import (
	"fmt"
	"log"
	"sync"
	"time"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/sentry"

	"github.com/pkg/errors"
)

// SchemaVersion is written to the version marker once migrations have run.
const SchemaVersion = "1.0.0"

const DefaultNamespace = "smart_rubbish"

// Collection names, stored under "<namespace>_<name>".
const (
	Users         = "users"
	Reports       = "reports"
	Notifications = "notifications"
	PointLogs     = "point_logs"
	version       = "version"
)

// Adapter guards a KV so that failures never escape: they are logged, reported
// and remembered, and callers only see a sentinel.
type Adapter struct {
	kv        KV
	namespace string
	now       func() time.Time

	once sync.Once

	mu      sync.Mutex
	lastErr *apperrors.Error
}

type Option func(*Adapter)

// WithClock overrides the time source used by migrations.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

func NewAdapter(kv KV, namespace string, opts ...Option) *Adapter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	a := &Adapter{kv: kv, namespace: namespace, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the namespaced key of a collection.
func (a *Adapter) Key(name string) string {
	return a.namespace + "_" + name
}

// Get returns the stored value and whether it was present and readable.
func (a *Adapter) Get(key string) (string, bool) {
	a.Init()
	return a.get(key)
}

// Set reports whether the value was stored.
func (a *Adapter) Set(key, value string) bool {
	a.Init()
	return a.set(key, value)
}

// Remove reports whether the key is gone.
func (a *Adapter) Remove(key string) bool {
	a.Init()
	err := a.kv.Remove(key)
	if err != nil {
		a.fail(apperrors.CodeStorageDelete, fmt.Sprintf("Failed to delete %s", key), err)
		return false
	}
	return true
}

// LastError returns the most recent captured failure, or nil.
func (a *Adapter) LastError() *apperrors.Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Init runs the version check, pending migrations and collection bootstrap once.
func (a *Adapter) Init() {
	a.once.Do(a.bootstrap)
}

// Version returns the stored schema marker.
func (a *Adapter) Version() string {
	v, _ := a.Get(a.Key(version))
	return v
}

func (a *Adapter) bootstrap() {
	current, _ := a.get(a.Key(version))
	if current != SchemaVersion {
		from := current
		if from == "" {
			from = "initial"
		}
		log.Printf("[Migration] storage %s -> %s", from, SchemaVersion)
		if err := a.migrate(current); err != nil {
			a.fail(apperrors.CodeMigration, "Failed to migrate data", err)
		}
		a.set(a.Key(version), SchemaVersion)
	}

	for _, name := range []string{Users, Reports, Notifications, PointLogs} {
		if _, ok := a.get(a.Key(name)); !ok {
			a.set(a.Key(name), "[]")
		}
	}
}

func (a *Adapter) get(key string) (string, bool) {
	v, err := a.kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return "", false
	}
	if err != nil {
		a.fail(apperrors.CodeStorageRead, fmt.Sprintf("Failed to read %s", key), err)
		return "", false
	}
	return v, true
}

func (a *Adapter) set(key, value string) bool {
	err := a.kv.Set(key, value)
	if errors.Is(err, ErrQuotaExceeded) {
		a.fail(apperrors.CodeQuotaExceeded, "Storage quota exceeded", err)
		return false
	}
	if err != nil {
		a.fail(apperrors.CodeStorageWrite, fmt.Sprintf("Failed to write %s", key), err)
		return false
	}
	return true
}

func (a *Adapter) fail(code, message string, cause error) {
	e := apperrors.New(code, message)
	log.Printf("[Storage Error %s]: %s (%v)", code, message, cause)
	sentry.CaptureError(cause, code)

	a.mu.Lock()
	a.lastErr = e
	a.mu.Unlock()
}
