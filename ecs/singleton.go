package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("cannot add nil singleton")
	}

	v := reflect.New(typ)
	v.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   v,
		dataPtr: v.UnsafePointer(),
	}
	s.singletonGen++
}

// RemoveSingleton drops the singleton of type T. Returns false if none existed.
func RemoveSingleton[T any](s *Storage) bool {
	typ := reflect.TypeFor[T]()
	if _, ok := s.singletons[typ]; !ok {
		return false
	}
	delete(s.singletons, typ)
	s.singletonGen++
	return true
}

// ReadSingleton points *target at the stored singleton. target must be a **T.
// Returns false and leaves *target nil when no singleton of type T exists.
func (s *Storage) ReadSingleton(target any) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	out := ptr.Elem()
	entry := s.singletons[out.Type().Elem()]
	if entry == nil {
		out.Set(reflect.Zero(out.Type()))
		return false
	}
	out.Set(entry.value)
	return true
}

// SingletonTypes returns the type names of all stored singletons, sorted.
func (s *Storage) SingletonTypes() []string {
	names := make([]string, 0, len(s.singletons))
	for typ := range s.singletons {
		names = append(names, typ.String())
	}
	sort.Strings(names)
	return names
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// Singleton provides access to a single component instance that is not attached to any
// entity. Use it for global game state, configuration, or other world-wide data.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
	generation   uint64
}

// NewSingleton returns an accessor for T, storing initializer (or the zero value) if
// no singleton of that type exists yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	typ := reflect.TypeFor[T]()
	if storage.getSingletonEntry(typ) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{storage: storage}
	s.updateCache()
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton fields of systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.updateCache()
}

// Get returns a pointer to the singleton, or nil if it is not in storage.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	if s.generation != s.storage.singletonGen {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether the singleton is currently in storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	s.generation = s.storage.singletonGen
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
