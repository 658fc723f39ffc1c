// Package registry abstracts the host OS device registry behind owned,
// explicitly released handles. Every Iterator, Record and PropertyRef wraps a
// native resource; the only legal operations are reading through the
// interface and Release. Callers must release each handle exactly once on
// every control-flow path that acquired it.
package registry

// Filter is an opaque matching criterion produced by Match and consumed by
// Services. Implementations attach whatever native state they need.
type Filter interface {
	Class() string
}

// Registry enumerates native device records for a device class.
type Registry interface {
	// Match builds a matching filter for the given device class name.
	// A non-nil error means the filter could not be constructed.
	Match(class string) (Filter, error)

	// Services looks up an iterator over records matching the filter.
	// A non-zero status is the registry's verbatim failure code; the
	// iterator is nil in that case and nothing was acquired.
	Services(f Filter) (Iterator, int32)
}

// Iterator walks matching records in registry order.
type Iterator interface {
	// Next draws the next record, or nil once the iterator is exhausted.
	// Each returned record is an owned handle the caller must release.
	Next() Record

	// Release frees the iterator's native resource. Records already
	// drawn from it remain valid until individually released.
	Release()
}

// Record is one opaque device record.
type Record interface {
	// Name resolves the record's display name.
	Name() (string, error)

	// Property acquires a scoped reference to a named property, or
	// reports false when the property is absent.
	Property(key string) (PropertyRef, bool)

	// ID renders the record's native identity as text.
	ID() string

	// Release frees the record's native resource.
	Release()
}

// PropertyRef is a scoped reference to one property value.
type PropertyRef interface {
	// Int64 coerces the value to an integer, reporting false on type
	// mismatch.
	Int64() (int64, bool)

	// Text coerces the value to a string, reporting false on type
	// mismatch. An empty string is a valid result here; callers decide
	// whether empty means absent.
	Text() (string, bool)

	// Release frees the property reference.
	Release()
}
