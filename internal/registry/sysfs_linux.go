//go:build linux

package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// sysfsRegistry reads device records from the sysfs bus tree. Records are
// device directories under <root>/<class>/devices that carry an idVendor
// attribute; entries without one are interface nodes and are skipped.
type sysfsRegistry struct {
	root string
}

// Open returns the registry for the host sysfs tree.
func Open() (Registry, error) {
	return &sysfsRegistry{root: "/sys/bus"}, nil
}

// NewSysfs returns a registry rooted at an alternate bus tree.
func NewSysfs(root string) Registry {
	return &sysfsRegistry{root: root}
}

type sysfsFilter struct {
	class string
	path  string
}

func (f *sysfsFilter) Class() string { return f.class }

func (r *sysfsRegistry) Match(class string) (Filter, error) {
	if class == "" || strings.ContainsAny(class, "/\x00") {
		return nil, fmt.Errorf("invalid device class %q", class)
	}
	return &sysfsFilter{class: class, path: filepath.Join(r.root, class, "devices")}, nil
}

func (r *sysfsRegistry) Services(f Filter) (Iterator, int32) {
	sf, ok := f.(*sysfsFilter)
	if !ok {
		return nil, int32(unix.EINVAL)
	}
	fd, err := unix.Open(sf.path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, statusOf(err)
	}
	dir := os.NewFile(uintptr(fd), sf.path)
	names, err := dir.Readdirnames(-1)
	if err != nil {
		dir.Close()
		return nil, statusOf(err)
	}
	// Readdir order is arbitrary; sort so passes are repeatable.
	sort.Strings(names)
	return &sysfsIterator{dir: dir, names: names}, 0
}

// statusOf surfaces the errno behind a failed registry call verbatim.
func statusOf(err error) int32 {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return int32(errno)
	}
	return -1
}

type sysfsIterator struct {
	dir   *os.File
	names []string
	pos   int
}

func (it *sysfsIterator) Next() Record {
	for it.pos < len(it.names) {
		name := it.names[it.pos]
		it.pos++
		fd, err := unix.Openat(int(it.dir.Fd()), name, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		// Whole devices carry idVendor; interface entries like "1-1:1.0"
		// do not and are not records.
		if unix.Faccessat(fd, "idVendor", unix.F_OK, 0) != nil {
			unix.Close(fd)
			continue
		}
		return &sysfsRecord{fd: fd, name: name}
	}
	return nil
}

func (it *sysfsIterator) Release() {
	if it.dir != nil {
		it.dir.Close()
		it.dir = nil
	}
}

// attrForKey maps conventional registry property names onto sysfs attribute
// files. Unlisted keys are tried as literal attribute names.
var attrForKey = map[string]string{
	"idVendor":          "idVendor",
	"idProduct":         "idProduct",
	"USB Serial Number": "serial",
}

type sysfsRecord struct {
	fd   int
	name string
}

func (rec *sysfsRecord) Property(key string) (PropertyRef, bool) {
	attr, ok := attrForKey[key]
	if !ok {
		attr = key
	}
	fd, err := unix.Openat(rec.fd, attr, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, false
	}
	return &sysfsProperty{fd: fd}, true
}

func (rec *sysfsRecord) Name() (string, error) {
	ref, ok := rec.Property("product")
	if !ok {
		return "", fmt.Errorf("record %s: no product attribute", rec.name)
	}
	defer ref.Release()
	s, ok := ref.Text()
	if !ok || s == "" {
		return "", fmt.Errorf("record %s: empty product attribute", rec.name)
	}
	return s, nil
}

func (rec *sysfsRecord) ID() string { return rec.name }

func (rec *sysfsRecord) Release() {
	if rec.fd >= 0 {
		unix.Close(rec.fd)
		rec.fd = -1
	}
}

type sysfsProperty struct {
	fd int
}

func (p *sysfsProperty) read() (string, bool) {
	buf := make([]byte, 256)
	n, err := unix.Pread(p.fd, buf, 0)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(strings.TrimRight(string(buf[:n]), "\x00")), true
}

func (p *sysfsProperty) Int64() (int64, bool) {
	s, ok := p.read()
	if !ok {
		return 0, false
	}
	// Numeric sysfs attributes are bare hex text, e.g. "1d6b".
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *sysfsProperty) Text() (string, bool) { return p.read() }

func (p *sysfsProperty) Release() {
	if p.fd >= 0 {
		unix.Close(p.fd)
		p.fd = -1
	}
}
