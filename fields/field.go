package fields

// Field is a canonical field name.
type Field int

const (
	// Unknown is the zero Field and never the result of a lookup.
	Unknown Field = iota

	// Process identity
	PID
	PPID
	PGID
	SID
	TPGID

	// Ownership
	User
	RUser
	UID
	RUID
	GID
	RGID

	// Command line
	Command
	Args

	// Scheduling and state
	State
	TTY
	Time
	CPUPercent
	MemPercent
	VSZ
	RSS
	Priority
	Nice
	StartTime
	ElapsedTime
	WChan
	Flags
	CPUUtilization

	// Open files
	FD
	Type
	Device
	SizeOff
	Node
	Name

	fieldCount
)

var fieldNames = [fieldCount]string{
	Unknown:        "unknown",
	PID:            "pid",
	PPID:           "ppid",
	PGID:           "pgid",
	SID:            "sid",
	TPGID:          "tpgid",
	User:           "user",
	RUser:          "ruser",
	UID:            "uid",
	RUID:           "ruid",
	GID:            "gid",
	RGID:           "rgid",
	Command:        "command",
	Args:           "args",
	State:          "state",
	TTY:            "tty",
	Time:           "time",
	CPUPercent:     "cpu_percent",
	MemPercent:     "mem_percent",
	VSZ:            "vsz",
	RSS:            "rss",
	Priority:       "priority",
	Nice:           "nice",
	StartTime:      "start_time",
	ElapsedTime:    "elapsed_time",
	WChan:          "wchan",
	Flags:          "flags",
	CPUUtilization: "cpu_utilization",
	FD:             "fd",
	Type:           "type",
	Device:         "device",
	SizeOff:        "size_off",
	Node:           "node",
	Name:           "name",
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, fieldCount)
	for f := PID; f < fieldCount; f++ {
		m[fieldNames[f]] = f
	}
	return m
}()

// String returns the canonical snake_case name of the field.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fieldNames[Unknown]
	}
	return fieldNames[f]
}

// Valid reports whether f is a known field other than Unknown.
func (f Field) Valid() bool {
	return f > Unknown && f < fieldCount
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Parse returns the field whose canonical name is exactly name.
func Parse(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// All returns every valid field in declaration order.
func All() []Field {
	all := make([]Field, 0, fieldCount-1)
	for f := PID; f < fieldCount; f++ {
		all = append(all, f)
	}
	return all
}
