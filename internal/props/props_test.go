package props_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkade/usbscout/internal/props"
	"github.com/mkade/usbscout/internal/registry"
)

type stubProp struct {
	num      *int64
	text     *string
	released int
}

func (p *stubProp) Int64() (int64, bool) {
	if p.num == nil {
		return 0, false
	}
	return *p.num, true
}

func (p *stubProp) Text() (string, bool) {
	if p.text == nil {
		return "", false
	}
	return *p.text, true
}

func (p *stubProp) Release() { p.released++ }

type stubRecord struct {
	props map[string]*stubProp
}

func (r *stubRecord) Name() (string, error) { return "", nil }
func (r *stubRecord) ID() string            { return "" }
func (r *stubRecord) Release()              {}

func (r *stubRecord) Property(key string) (registry.PropertyRef, bool) {
	p, ok := r.props[key]
	if !ok {
		return nil, false
	}
	return p, true
}

func i64(v int64) *int64   { return &v }
func str(s string) *string { return &s }

func TestReadU16(t *testing.T) {
	tests := []struct {
		name   string
		prop   *stubProp
		want   uint16
		wantOK bool
	}{
		{name: "present", prop: &stubProp{num: i64(0x1234)}, want: 0x1234, wantOK: true},
		{name: "zero", prop: &stubProp{num: i64(0)}, want: 0, wantOK: true},
		{name: "max", prop: &stubProp{num: i64(0xffff)}, want: 0xffff, wantOK: true},
		{name: "type mismatch", prop: &stubProp{text: str("1234")}},
		{name: "negative", prop: &stubProp{num: i64(-1)}},
		{name: "out of range", prop: &stubProp{num: i64(0x10000)}},
		{name: "absent", prop: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &stubRecord{props: map[string]*stubProp{}}
			if tt.prop != nil {
				rec.props["idVendor"] = tt.prop
			}
			got, ok := props.ReadU16(rec, "idVendor")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if tt.prop != nil {
				assert.Equal(t, 1, tt.prop.released, "property reference must be released")
			}
		})
	}
}

func TestReadString(t *testing.T) {
	tests := []struct {
		name   string
		prop   *stubProp
		want   string
		wantOK bool
	}{
		{name: "present", prop: &stubProp{text: str("ABC123")}, want: "ABC123", wantOK: true},
		{name: "empty means absent", prop: &stubProp{text: str("")}},
		{name: "type mismatch", prop: &stubProp{num: i64(42)}},
		{name: "absent", prop: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &stubRecord{props: map[string]*stubProp{}}
			if tt.prop != nil {
				rec.props["serial"] = tt.prop
			}
			got, ok := props.ReadString(rec, "serial")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if tt.prop != nil {
				assert.Equal(t, 1, tt.prop.released, "property reference must be released")
			}
		})
	}
}
